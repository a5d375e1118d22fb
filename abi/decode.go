package abi

import (
	"strconv"
	"unicode/utf8"
)

const wordSize = 32

// Decode consumes data (whose length must be a multiple of 32) against
// the ordered param list and returns one ValueType per parameter,
// following the head/tail layout described in §4.1/§4.2.
func Decode(params []ParamType, data []byte) ([]ValueType, error) {
	words, err := sliceData(data)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 && len(data) != 0 {
		return nil, newDecodeError("params", ErrEmptyParamsNonEmptyInput)
	}

	values := make([]ValueType, 0, len(params))
	offset := 0
	for i, p := range params {
		if p.depth()-1 > MaxTypeDepth {
			return nil, newDecodeError("param at index "+strconv.Itoa(i), ErrTypeTooDeep)
		}
		v, newOffset, err := decodeParam(p, words, offset, 0)
		if err != nil {
			return nil, newDecodeError("param "+p.member()+" at index "+strconv.Itoa(i), err)
		}
		offset = newOffset
		values = append(values, v)
	}
	return values, nil
}

// sliceData splits data into 32-byte words, rejecting misaligned input.
func sliceData(data []byte) ([][wordSize]byte, error) {
	if len(data)%wordSize != 0 {
		return nil, newDecodeError("length", ErrMisalignedLength)
	}
	n := len(data) / wordSize
	words := make([][wordSize]byte, n)
	for i := 0; i < n; i++ {
		copy(words[i][:], data[i*wordSize:(i+1)*wordSize])
	}
	return words, nil
}

func peek(words [][wordSize]byte, position int) (*[wordSize]byte, error) {
	if position < 0 || position >= len(words) {
		return nil, ErrOutOfRange
	}
	return &words[position], nil
}

func asU32(word *[wordSize]byte) (uint32, error) {
	for _, b := range word[:28] {
		if b != 0 {
			return 0, ErrMalformedScalar
		}
	}
	return uint32(word[28])<<24 | uint32(word[29])<<16 | uint32(word[30])<<8 | uint32(word[31]), nil
}

// asI32 reads the low 4 bytes as a plain two's-complement int32 once
// the high bytes are confirmed to be the correct sign-extension pattern
// (all 0x00 for non-negative, all 0xFF for negative), per §4.1.
func asI32(word *[wordSize]byte) (int32, error) {
	negative := word[28]&0x80 != 0
	sign := byte(0x00)
	if negative {
		sign = 0xff
	}
	for _, b := range word[:28] {
		if b != sign {
			return 0, ErrMalformedScalar
		}
	}
	raw := uint32(word[28])<<24 | uint32(word[29])<<16 | uint32(word[30])<<8 | uint32(word[31])
	return int32(raw), nil
}

func asU64(word *[wordSize]byte) (uint64, error) {
	for _, b := range word[:24] {
		if b != 0 {
			return 0, ErrMalformedScalar
		}
	}
	var v uint64
	for _, b := range word[24:] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

func asI64(word *[wordSize]byte) (int64, error) {
	negative := word[24]&0x80 != 0
	sign := byte(0x00)
	if negative {
		sign = 0xff
	}
	for _, b := range word[:24] {
		if b != sign {
			return 0, ErrMalformedScalar
		}
	}
	var raw uint64
	for _, b := range word[24:] {
		raw = raw<<8 | uint64(b)
	}
	return int64(raw), nil
}

func asBool(word *[wordSize]byte) (bool, error) {
	for _, b := range word[:31] {
		if b != 0 {
			return false, ErrMalformedBool
		}
	}
	switch word[31] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrMalformedBool
	}
}

// takeBytes reads len bytes starting at word index position, spanning
// ceil(len/32) words, and returns the payload plus the word offset just
// past the consumed words.
func takeBytes(words [][wordSize]byte, position, length int) ([]byte, int, error) {
	sliceCount := (length + wordSize - 1) / wordSize
	out := make([]byte, 0, sliceCount*wordSize)
	for i := 0; i < sliceCount; i++ {
		w, err := peek(words, position+i)
		if err != nil {
			return nil, 0, ErrTruncatedInput
		}
		out = append(out, w[:]...)
	}
	if len(out) > length {
		out = out[:length]
	}
	return out, position + sliceCount, nil
}

func decodeParam(param ParamType, words [][wordSize]byte, offset, depth int) (ValueType, int, error) {
	if depth > MaxTypeDepth {
		return ValueType{}, 0, ErrTypeTooDeep
	}

	switch param.Kind() {
	case KindAddress:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		var addr [20]byte
		copy(addr[:], w[12:])
		return NewAddress(addr), offset + 1, nil

	case KindU32:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		v, err := asU32(w)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewU32(v), offset + 1, nil

	case KindI32:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		v, err := asI32(w)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewI32(v), offset + 1, nil

	case KindU64:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		v, err := asU64(w)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewU64(v), offset + 1, nil

	case KindI64:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		v, err := asI64(w)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewI64(v), offset + 1, nil

	case KindU256:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewU256(*w), offset + 1, nil

	case KindH256:
		// Fixed per SPEC_FULL.md/§9: emits ValueType kind H256, not the
		// original's U256.
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewH256(*w), offset + 1, nil

	case KindBool:
		w, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		b, err := asBool(w)
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewBool(b), offset + 1, nil

	case KindBytes:
		offsetWord, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		tailWordOff, err := asU32(offsetWord)
		if err != nil {
			return ValueType{}, 0, err
		}
		tailOffset := int(tailWordOff) / wordSize
		lenWord, err := peek(words, tailOffset)
		if err != nil {
			return ValueType{}, 0, err
		}
		length, err := asU32(lenWord)
		if err != nil {
			return ValueType{}, 0, err
		}
		payload, _, err := takeBytes(words, tailOffset+1, int(length))
		if err != nil {
			return ValueType{}, 0, err
		}
		return NewBytes(payload), offset + 1, nil

	case KindString:
		offsetWord, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		tailWordOff, err := asU32(offsetWord)
		if err != nil {
			return ValueType{}, 0, err
		}
		tailOffset := int(tailWordOff) / wordSize
		lenWord, err := peek(words, tailOffset)
		if err != nil {
			return ValueType{}, 0, err
		}
		length, err := asU32(lenWord)
		if err != nil {
			return ValueType{}, 0, err
		}
		payload, _, err := takeBytes(words, tailOffset+1, int(length))
		if err != nil {
			return ValueType{}, 0, err
		}
		if !utf8.Valid(payload) {
			return ValueType{}, 0, ErrInvalidUTF8
		}
		return NewString(string(payload)), offset + 1, nil

	case KindArray:
		elem, ok := param.Elem()
		if !ok {
			return ValueType{}, 0, ErrValueTypeMismatch
		}
		offsetWord, err := peek(words, offset)
		if err != nil {
			return ValueType{}, 0, err
		}
		tailWordOff, err := asU32(offsetWord)
		if err != nil {
			return ValueType{}, 0, err
		}
		tailOffset := int(tailWordOff) / wordSize
		lenWord, err := peek(words, tailOffset)
		if err != nil {
			return ValueType{}, 0, err
		}
		length, err := asU32(lenWord)
		if err != nil {
			return ValueType{}, 0, err
		}

		elems := make([]ValueType, 0, length)
		cursor := tailOffset + 1
		for i := 0; i < int(length); i++ {
			v, newCursor, err := decodeParam(elem, words, cursor, depth+1)
			if err != nil {
				return ValueType{}, 0, err
			}
			cursor = newCursor
			elems = append(elems, v)
		}
		return NewArray(elems), offset + 1, nil

	default:
		return ValueType{}, 0, ErrValueTypeMismatch
	}
}
