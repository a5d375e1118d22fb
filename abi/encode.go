package abi

import "strconv"

// Encode is the inverse of Decode: it lays out values against params in
// the head/tail format of §4.3, computing and patching tail offsets for
// every dynamic parameter. Every value's variant must match its
// declared ParamType (recursively, for Array) or encoding fails.
//
// Every dynamic offset word written anywhere in the result — including
// inside a nested Array's own head — is an absolute byte position from
// the start of this returned buffer, matching how Decode always
// resolves an offset word against the single top-level word slice
// regardless of recursion depth (§4.1/§4.2; see decode.go's KindArray
// case, which never re-bases its cursor per nesting level).
func Encode(params []ParamType, values []ValueType) ([]byte, error) {
	for i, p := range params {
		if p.depth()-1 > MaxTypeDepth {
			return nil, newEncodeError("param at index "+strconv.Itoa(i), ErrTypeTooDeep)
		}
	}
	return encodeRegion(params, values, 0)
}

// encodeRegion lays out params/values as one head/tail region whose
// head begins at absolute byte position base within the final output
// buffer. base lets a nested Array's element region compute offset
// words that point at the right place in the outermost buffer rather
// than relative to its own head.
func encodeRegion(params []ParamType, values []ValueType, base int) ([]byte, error) {
	if len(params) != len(values) {
		return nil, newEncodeError("arity", ErrValueTypeMismatch)
	}

	headBytes := len(params) * wordSize
	head := make([][wordSize]byte, len(params))
	var tail []byte

	for i, p := range params {
		v := values[i]
		if !v.MatchesParamType(p) {
			return nil, newEncodeError("value at index "+strconv.Itoa(i), ErrValueTypeMismatch)
		}

		if p.IsDynamic() {
			absPos := base + headBytes + len(tail)
			rec, err := encodeTailRecord(p, v, absPos)
			if err != nil {
				return nil, err
			}
			head[i] = encodeU32Word(uint32(absPos))
			tail = append(tail, rec...)
			continue
		}

		w, err := encodeStaticWord(p, v)
		if err != nil {
			return nil, err
		}
		head[i] = w
	}

	out := make([]byte, 0, headBytes+len(tail))
	for _, w := range head {
		out = append(out, w[:]...)
	}
	out = append(out, tail...)
	return out, nil
}

func encodeStaticWord(p ParamType, v ValueType) ([wordSize]byte, error) {
	switch p.Kind() {
	case KindU32:
		val, _ := v.AsU32()
		return encodeU32Word(val), nil
	case KindI32:
		val, _ := v.AsI32()
		return encodeI32Word(val), nil
	case KindU64:
		val, _ := v.AsU64()
		return encodeU64Word(val), nil
	case KindI64:
		val, _ := v.AsI64()
		return encodeI64Word(val), nil
	case KindU256:
		val, _ := v.AsU256()
		return val, nil
	case KindH256:
		val, _ := v.AsH256()
		return val, nil
	case KindAddress:
		addr, _ := v.AsAddress()
		var w [wordSize]byte
		copy(w[12:], addr[:])
		return w, nil
	case KindBool:
		b, _ := v.AsBool()
		var w [wordSize]byte
		if b {
			w[31] = 1
		}
		return w, nil
	default:
		return [wordSize]byte{}, newEncodeError("static word", ErrValueTypeMismatch)
	}
}

// encodeTailRecord produces the tail-region bytes for one dynamic
// value: a length word followed by the (possibly recursive) payload.
// absPos is this record's own absolute byte position in the final
// output, needed so an Array's element region can base its own offset
// words off the right place (absPos+32, the word right after len).
func encodeTailRecord(p ParamType, v ValueType, absPos int) ([]byte, error) {
	switch p.Kind() {
	case KindBytes:
		b, _ := v.AsBytes()
		return append(encodeU32Word(uint32(len(b)))[:], padRight(b)...), nil

	case KindString:
		s, _ := v.AsString()
		b := []byte(s)
		return append(encodeU32Word(uint32(len(b)))[:], padRight(b)...), nil

	case KindArray:
		elemType, ok := p.Elem()
		if !ok {
			return nil, newEncodeError("array element type", ErrValueTypeMismatch)
		}
		elems, _ := v.AsArray()
		elemParams := make([]ParamType, len(elems))
		for i := range elemParams {
			elemParams[i] = elemType
		}

		lenWord := encodeU32Word(uint32(len(elems)))
		body, err := encodeRegion(elemParams, elems, absPos+wordSize)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, wordSize+len(body))
		out = append(out, lenWord[:]...)
		out = append(out, body...)
		return out, nil

	default:
		return nil, newEncodeError("tail record", ErrValueTypeMismatch)
	}
}

func encodeU32Word(v uint32) [wordSize]byte {
	var w [wordSize]byte
	w[28] = byte(v >> 24)
	w[29] = byte(v >> 16)
	w[30] = byte(v >> 8)
	w[31] = byte(v)
	return w
}

// encodeI32Word sign-extends a two's-complement int32 into the full
// 32-byte word using 0xFF for negatives, per §4.1.
func encodeI32Word(v int32) [wordSize]byte {
	var w [wordSize]byte
	if v < 0 {
		for i := range w {
			w[i] = 0xff
		}
	}
	u := uint32(v)
	w[28] = byte(u >> 24)
	w[29] = byte(u >> 16)
	w[30] = byte(u >> 8)
	w[31] = byte(u)
	return w
}

func encodeU64Word(v uint64) [wordSize]byte {
	var w [wordSize]byte
	for i := 0; i < 8; i++ {
		w[31-i] = byte(v >> (8 * i))
	}
	return w
}

func encodeI64Word(v int64) [wordSize]byte {
	var w [wordSize]byte
	if v < 0 {
		for i := range w {
			w[i] = 0xff
		}
	}
	u := uint64(v)
	for i := 0; i < 8; i++ {
		w[31-i] = byte(u >> (8 * i))
	}
	return w
}

// padRight right-pads b with zero bytes to the next multiple of 32.
func padRight(b []byte) []byte {
	rem := len(b) % wordSize
	if rem == 0 {
		return append([]byte(nil), b...)
	}
	out := make([]byte, len(b)+(wordSize-rem))
	copy(out, b)
	return out
}
