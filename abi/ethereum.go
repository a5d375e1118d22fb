// Bridges between this package's ValueType and go-ethereum's own
// common.Address/*big.Int, for callers already working against
// go-ethereum elsewhere in a process (e.g. a transport layer that
// signs transactions) who would rather not juggle raw byte arrays at
// the boundary. The byte layout mirrors the teacher's
// padAddress/padUint256 helpers in internal/clob/eip712.go, just in the
// opposite (decode) direction as well as encode.
package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AddressFromValueType converts an Address-kind ValueType to a
// go-ethereum common.Address.
func AddressFromValueType(v ValueType) (common.Address, bool) {
	raw, ok := v.AsAddress()
	if !ok {
		return common.Address{}, false
	}
	return common.BytesToAddress(raw[:]), true
}

// ValueTypeFromAddress builds an Address-kind ValueType from a
// go-ethereum common.Address.
func ValueTypeFromAddress(addr common.Address) ValueType {
	var raw [20]byte
	copy(raw[:], addr[:])
	return NewAddress(raw)
}

// BigIntFromValueType converts a U256- or H256-kind ValueType to a
// *big.Int, matching go-ethereum's own big-endian unsigned convention.
func BigIntFromValueType(v ValueType) (*big.Int, bool) {
	if word, ok := v.AsU256(); ok {
		return new(big.Int).SetBytes(word[:]), true
	}
	if word, ok := v.AsH256(); ok {
		return new(big.Int).SetBytes(word[:]), true
	}
	return nil, false
}

// ValueTypeFromBigInt builds a U256-kind ValueType from a *big.Int,
// right-aligning it in 32 bytes — the same padding convention as the
// teacher's padUint256.
func ValueTypeFromBigInt(n *big.Int) ValueType {
	var word [32]byte
	if n != nil {
		b := n.Bytes()
		copy(word[32-len(b):], b)
	}
	return NewU256(word)
}
