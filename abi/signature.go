package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Signature is an ordered parameter-type list plus an optional result
// type. It is immutable once constructed; Params/Result return copies
// of the backing slice/pointer contents where relevant.
type Signature struct {
	params []ParamType
	result *ParamType
}

// NewSignature builds a Signature with no declared result type (the
// "void" case — mirrors the original's Signature::new_void).
func NewSignature(params []ParamType) Signature {
	return Signature{params: append([]ParamType(nil), params...)}
}

// NewSignatureWithResult builds a Signature that declares a result
// type.
func NewSignatureWithResult(params []ParamType, result ParamType) Signature {
	r := result
	return Signature{params: append([]ParamType(nil), params...), result: &r}
}

// Params returns a copy of the parameter type list.
func (s Signature) Params() []ParamType {
	return append([]ParamType(nil), s.params...)
}

// Result returns the declared result type and true, or the zero value
// and false if this signature declares no result.
func (s Signature) Result() (ParamType, bool) {
	if s.result == nil {
		return ParamType{}, false
	}
	return *s.result, true
}

// EncodeInvoke encodes an argument list against this signature's
// params. Every value's variant must match the corresponding ParamType.
func (s Signature) EncodeInvoke(values []ValueType) ([]byte, error) {
	return Encode(s.params, values)
}

// DecodeInvoke decodes a call body against this signature's params.
func (s Signature) DecodeInvoke(data []byte) ([]ValueType, error) {
	return Decode(s.params, data)
}

// EncodeResult encodes an optional single return value. A nil result
// with no declared result type yields the empty byte string; supplying
// a value when none is declared, or omitting one when it is declared,
// is an error.
func (s Signature) EncodeResult(value *ValueType) ([]byte, error) {
	if s.result == nil {
		if value != nil {
			return nil, newEncodeError("result", ErrUnexpectedResult)
		}
		return []byte{}, nil
	}
	if value == nil {
		return nil, newEncodeError("result", ErrMissingResult)
	}
	return Encode([]ParamType{*s.result}, []ValueType{*value})
}

// DecodeResult is the inverse of EncodeResult: empty input with no
// declared result type yields (nil, nil).
func (s Signature) DecodeResult(data []byte) (*ValueType, error) {
	if s.result == nil {
		return nil, nil
	}
	values, err := Decode([]ParamType{*s.result}, data)
	if err != nil {
		return nil, err
	}
	return &values[0], nil
}

// HashSignature pairs a pre-computed 4-byte selector with its
// Signature. Tables store HashSignature entries so dispatch never
// recomputes a keccak hash per call.
type HashSignature struct {
	Selector  uint32
	Signature Signature
}

// NamedSignature pairs a method name with its Signature; its selector
// is derived on demand via Selector/HashSignature.
type NamedSignature struct {
	Name      string
	Signature Signature
}

// CanonicalString builds the selector-hash input: name(type1,type2,...)
// using the member-string table of §4.5.
func (n NamedSignature) CanonicalString() string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteByte('(')
	params := n.Signature.params
	for i, p := range params {
		b.WriteString(p.member())
		if i != len(params)-1 {
			b.WriteByte(',')
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Selector derives the 4-byte selector: the big-endian uint32 formed
// from the first 4 bytes of keccak256(CanonicalString()).
func (n NamedSignature) Selector() uint32 {
	hash := crypto.Keccak256([]byte(n.CanonicalString()))
	return uint32(hash[0])<<24 | uint32(hash[1])<<16 | uint32(hash[2])<<8 | uint32(hash[3])
}

// HashSignature converts this NamedSignature into a HashSignature by
// computing its selector once.
func (n NamedSignature) HashSignature() HashSignature {
	return HashSignature{Selector: n.Selector(), Signature: n.Signature}
}
