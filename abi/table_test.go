package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bazSignature() NamedSignature {
	return NamedSignature{Name: "baz", Signature: NewSignature([]ParamType{U32(), Bool()})}
}

func samSignature() NamedSignature {
	return NamedSignature{Name: "sam", Signature: NewSignature([]ParamType{Bytes(), Bool(), Array(U256())})}
}

func TestDispatchBaz_S3(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.PushNamed(bazSignature()))

	payload := concat(
		[]byte{0xcd, 0xcd, 0x77, 0xc0},
		wordU32(0x45),
		wordU32(1),
	)

	var gotSelector uint32
	var gotArgs []ValueType
	_, err := table.Dispatch(payload, func(selector uint32, args []ValueType) (*ValueType, error) {
		gotSelector = selector
		gotArgs = args
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(0xcdcd77c0), gotSelector)
	require.Len(t, gotArgs, 2)

	u, ok := gotArgs[0].AsU32()
	require.True(t, ok)
	assert.Equal(t, uint32(0x45), u)

	b, ok := gotArgs[1].AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestDispatchSam_S4(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.PushNamed(samSignature()))

	payload := []byte{
		0xa5, 0x64, 0x3b, 0xf2,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x60,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xa0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x04,
		0x64, 0x61, 0x76, 0x65, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x03,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x03,
	}

	var gotArgs []ValueType
	_, err := table.Dispatch(payload, func(_ uint32, args []ValueType) (*ValueType, error) {
		gotArgs = args
		return nil, nil
	})
	require.NoError(t, err)
	require.Len(t, gotArgs, 3)

	b, _ := gotArgs[0].AsBytes()
	assert.Equal(t, []byte{0x64, 0x61, 0x76, 0x65}, b)

	boolVal, _ := gotArgs[1].AsBool()
	assert.True(t, boolVal)

	elems, _ := gotArgs[2].AsArray()
	require.Len(t, elems, 3)
	for i, want := range []uint64{1, 2, 3} {
		w, _ := elems[i].AsU256()
		assert.Equal(t, byte(want), w[31])
	}
}

func TestDispatchRejectsShortPayload(t *testing.T) {
	table := NewTable()
	_, err := table.Dispatch([]byte{0x01, 0x02}, func(uint32, []ValueType) (*ValueType, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNoLengthForSignature)
}

func TestDispatchRejectsUnknownSelector(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.PushNamed(bazSignature()))
	_, err := table.Dispatch([]byte{0x00, 0x00, 0x00, 0x00}, func(uint32, []ValueType) (*ValueType, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrUnknownSignature)
}

func TestFallbackDispatchRequiresRegisteredFallback(t *testing.T) {
	table := NewTable()
	err := table.FallbackDispatch([]byte{}, func([]ValueType) error { return nil })
	assert.ErrorIs(t, err, ErrNoFallback)
}

func TestFallbackDispatchDecodesCtorArgs(t *testing.T) {
	fallback := NewSignature([]ParamType{U256()})
	table := NewTableWithFallback(fallback)

	var word [32]byte
	shifted := new(big.Int).Lsh(big.NewInt(1), 248)
	b := shifted.Bytes()
	copy(word[32-len(b):], b)

	var gotArgs []ValueType
	err := table.FallbackDispatch(word[:], func(args []ValueType) error {
		gotArgs = args
		return nil
	})
	require.NoError(t, err)
	require.Len(t, gotArgs, 1)
	u, _ := gotArgs[0].AsU256()
	assert.Equal(t, byte(0x01), u[0])
}

func TestPushRejectsDuplicateSelector(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.PushNamed(bazSignature()))
	err := table.PushNamed(bazSignature())
	assert.ErrorIs(t, err, ErrDuplicateSelector)
}

func TestTableCallRoundTrip(t *testing.T) {
	named := NamedSignature{Name: "balanceOf", Signature: NewSignatureWithResult([]ParamType{Address()}, U256())}
	table := NewTable()
	require.NoError(t, table.PushNamed(named))

	var capturedPayload []byte
	transport := func(payload []byte) (*[32]byte, error) {
		capturedPayload = payload
		var reply [32]byte
		reply[31] = 0x2a
		return &reply, nil
	}

	addr := addrFrom(0x01)
	result, err := table.Call(named.Selector(), []ValueType{addr}, transport)
	require.NoError(t, err)
	require.NotNil(t, result)

	w, ok := result.AsU256()
	require.True(t, ok)
	assert.Equal(t, byte(0x2a), w[31])

	require.Len(t, capturedPayload, 4+32)
	assert.Equal(t, named.Selector(), bigEndianU32(capturedPayload[:4]))
}

func bigEndianU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
