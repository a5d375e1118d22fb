// Package abi implements a deterministic codec for the legacy (Ethereum)
// 32-byte-word ABI wire format, plus a selector-indexed dispatch table
// for routing decoded calls to handlers and encoding their replies.
//
// The type set is intentionally narrow: U32, I32, U64, I64, U256, H256,
// Address, Bool, Bytes, String, and homogeneous Array of any of those
// (including nested arrays). Fixed-width uintN/intN for arbitrary N,
// fixed/ufixed, tuples, fixed-size arrays, events and errors are not
// supported.
package abi

import "strings"

// MaxTypeDepth bounds how deeply an Array type may nest. Recursive
// decode/encode walks would otherwise have no structural limit on
// attacker-controlled type declarations.
const MaxTypeDepth = 32

// Kind tags the variant of a ParamType.
type Kind int

const (
	KindU32 Kind = iota
	KindI32
	KindU64
	KindI64
	KindU256
	KindH256
	KindAddress
	KindBool
	KindBytes
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindU32:
		return "U32"
	case KindI32:
		return "I32"
	case KindU64:
		return "U64"
	case KindI64:
		return "I64"
	case KindU256:
		return "U256"
	case KindH256:
		return "H256"
	case KindAddress:
		return "Address"
	case KindBool:
		return "Bool"
	case KindBytes:
		return "Bytes"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// ParamType is the declared wire type of one parameter or array element.
// It is a value type: the zero value has kind KindU32 (the zero Kind)
// and so acts as U32, and ParamType values may be freely copied.
type ParamType struct {
	kind Kind
	elem *ParamType // non-nil only when kind == KindArray
}

func U32() ParamType     { return ParamType{kind: KindU32} }
func I32() ParamType     { return ParamType{kind: KindI32} }
func U64() ParamType     { return ParamType{kind: KindU64} }
func I64() ParamType     { return ParamType{kind: KindI64} }
func U256() ParamType    { return ParamType{kind: KindU256} }
func H256() ParamType    { return ParamType{kind: KindH256} }
func Address() ParamType { return ParamType{kind: KindAddress} }
func Bool() ParamType    { return ParamType{kind: KindBool} }
func Bytes() ParamType   { return ParamType{kind: KindBytes} }
func String() ParamType  { return ParamType{kind: KindString} }

// Array builds an Array(elem) ParamType. The element type is copied.
func Array(elem ParamType) ParamType {
	e := elem
	return ParamType{kind: KindArray, elem: &e}
}

// Kind reports the variant of this ParamType.
func (p ParamType) Kind() Kind { return p.kind }

// Elem returns the element ParamType of an Array and true, or the zero
// value and false for any other kind.
func (p ParamType) Elem() (ParamType, bool) {
	if p.kind != KindArray || p.elem == nil {
		return ParamType{}, false
	}
	return *p.elem, true
}

// IsDynamic reports whether this type occupies a tail record in the
// head/tail wire layout (Bytes, String, Array) as opposed to a single
// head word (every other kind).
func (p ParamType) IsDynamic() bool {
	switch p.kind {
	case KindBytes, KindString, KindArray:
		return true
	default:
		return false
	}
}

// depth returns the nesting depth of Array(Array(...)) chains; scalars
// are depth 1.
func (p ParamType) depth() int {
	d := 1
	for cur := p; cur.kind == KindArray; {
		e, ok := cur.Elem()
		if !ok {
			break
		}
		d++
		cur = e
	}
	return d
}

// member returns the canonical member string used when building a
// signature string for selector derivation (§4.5 of the member-string
// table: H256 maps to "uint256", matching U256 — this is a deliberate,
// documented divergence from common Ethereum bytes32 convention, not a
// defect).
func (p ParamType) member() string {
	switch p.kind {
	case KindU32:
		return "uint32"
	case KindI32:
		return "int32"
	case KindU64:
		return "uint64"
	case KindI64:
		return "int64"
	case KindU256, KindH256:
		return "uint256"
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindArray:
		e, _ := p.Elem()
		var b strings.Builder
		b.WriteString(e.member())
		b.WriteString("[]")
		return b.String()
	default:
		return "<invalid>"
	}
}

// Member exposes the canonical member string publicly, for callers that
// build their own signature strings (e.g. a YAML-loaded contract spec
// rendering a human-readable method signature).
func (p ParamType) Member() string { return p.member() }
