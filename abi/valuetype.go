package abi

// ValueType is a decoded/constructed runtime value. Its Kind always
// matches the ParamType it was decoded against or will be encoded
// under; callers that build ValueType values by hand are responsible
// for keeping that invariant (EncodeInvoke/EncodeResult validate it).
type ValueType struct {
	kind    Kind
	u32     uint32
	i32     int32
	u64     uint64
	i64     int64
	word    [32]byte // U256, H256
	addr    [20]byte
	boolean bool
	bytes   []byte
	str     string
	array   []ValueType
}

func NewU32(v uint32) ValueType  { return ValueType{kind: KindU32, u32: v} }
func NewI32(v int32) ValueType   { return ValueType{kind: KindI32, i32: v} }
func NewU64(v uint64) ValueType  { return ValueType{kind: KindU64, u64: v} }
func NewI64(v int64) ValueType   { return ValueType{kind: KindI64, i64: v} }
func NewBool(v bool) ValueType   { return ValueType{kind: KindBool, boolean: v} }
func NewString(v string) ValueType { return ValueType{kind: KindString, str: v} }

// NewBytes copies v so the ValueType does not alias caller-owned memory.
func NewBytes(v []byte) ValueType {
	cp := make([]byte, len(v))
	copy(cp, v)
	return ValueType{kind: KindBytes, bytes: cp}
}

// NewU256 copies the 32-byte big-endian word.
func NewU256(v [32]byte) ValueType { return ValueType{kind: KindU256, word: v} }

// NewH256 copies the 32-byte big-endian word.
func NewH256(v [32]byte) ValueType { return ValueType{kind: KindH256, word: v} }

// NewAddress copies the 20-byte address.
func NewAddress(v [20]byte) ValueType { return ValueType{kind: KindAddress, addr: v} }

// NewArray builds an Array value from an ordered, already-homogeneous
// element slice. Callers that need to validate homogeneity against a
// ParamType should use MatchesParamType.
func NewArray(elems []ValueType) ValueType {
	cp := make([]ValueType, len(elems))
	copy(cp, elems)
	return ValueType{kind: KindArray, array: cp}
}

func (v ValueType) Kind() Kind { return v.kind }

func (v ValueType) AsU32() (uint32, bool)  { return v.u32, v.kind == KindU32 }
func (v ValueType) AsI32() (int32, bool)   { return v.i32, v.kind == KindI32 }
func (v ValueType) AsU64() (uint64, bool)  { return v.u64, v.kind == KindU64 }
func (v ValueType) AsI64() (int64, bool)   { return v.i64, v.kind == KindI64 }
func (v ValueType) AsBool() (bool, bool)   { return v.boolean, v.kind == KindBool }
func (v ValueType) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v ValueType) AsU256() ([32]byte, bool) { return v.word, v.kind == KindU256 }
func (v ValueType) AsH256() ([32]byte, bool) { return v.word, v.kind == KindH256 }
func (v ValueType) AsAddress() ([20]byte, bool) { return v.addr, v.kind == KindAddress }

// AsBytes returns a copy of the underlying bytes so callers cannot
// mutate the ValueType through the returned slice.
func (v ValueType) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	cp := make([]byte, len(v.bytes))
	copy(cp, v.bytes)
	return cp, true
}

// AsArray returns a copy of the element slice.
func (v ValueType) AsArray() ([]ValueType, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	cp := make([]ValueType, len(v.array))
	copy(cp, v.array)
	return cp, true
}

// Equal reports deep equality between two ValueTypes, recursing into
// Array elements.
func (v ValueType) Equal(o ValueType) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindU32:
		return v.u32 == o.u32
	case KindI32:
		return v.i32 == o.i32
	case KindU64:
		return v.u64 == o.u64
	case KindI64:
		return v.i64 == o.i64
	case KindU256, KindH256:
		return v.word == o.word
	case KindAddress:
		return v.addr == o.addr
	case KindBool:
		return v.boolean == o.boolean
	case KindString:
		return v.str == o.str
	case KindBytes:
		if len(v.bytes) != len(o.bytes) {
			return false
		}
		for i := range v.bytes {
			if v.bytes[i] != o.bytes[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.array) != len(o.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(o.array[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MatchesParamType reports whether this value's variant (and, for
// Array, every element recursively) matches the declared ParamType.
// This is the runtime check EncodeInvoke/EncodeResult use to reject
// malformed calls rather than silently mis-encoding them.
func (v ValueType) MatchesParamType(p ParamType) bool {
	if v.kind != p.kind {
		return false
	}
	if p.kind != KindArray {
		return true
	}
	elem, ok := p.Elem()
	if !ok {
		return false
	}
	for _, e := range v.array {
		if !e.MatchesParamType(elem) {
			return false
		}
	}
	return true
}
