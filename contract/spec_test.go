package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gipsh/ethabi-dispatch/abi"
)

func TestParseTypeStringScalars(t *testing.T) {
	cases := map[string]abi.ParamType{
		"uint32":  abi.U32(),
		"int32":   abi.I32(),
		"uint64":  abi.U64(),
		"int64":   abi.I64(),
		"uint256": abi.U256(),
		"address": abi.Address(),
		"bool":    abi.Bool(),
		"bytes":   abi.Bytes(),
		"string":  abi.String(),
	}
	for in, want := range cases {
		got, err := parseTypeString(in)
		require.NoError(t, err)
		assert.Equal(t, want.Kind(), got.Kind())
	}
}

func TestParseTypeStringArray(t *testing.T) {
	got, err := parseTypeString("uint256[]")
	require.NoError(t, err)
	assert.Equal(t, abi.KindArray, got.Kind())
	elem, ok := got.Elem()
	require.True(t, ok)
	assert.Equal(t, abi.KindU256, elem.Kind())
}

func TestParseTypeStringRejectsUnknown(t *testing.T) {
	_, err := parseTypeString("fixed128x18")
	assert.Error(t, err)
}

func TestLoadContractSpecFromYAML(t *testing.T) {
	doc := []byte(`
name: TokenContract
methods:
  - name: ctor
    ctor: true
    params: [uint256]
  - name: balanceOf
    params: [address]
    result: uint256
  - name: transfer
    params: [address, uint256]
    result: bool
  - name: totalSupply
    params: []
    result: uint256
`)

	spec, err := LoadContractSpec(doc)
	require.NoError(t, err)
	assert.Equal(t, "TokenContract", spec.Name)

	ctor, ok := spec.Ctor()
	require.True(t, ok)
	assert.Equal(t, "ctor", ctor.Name)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, abi.KindU256, ctor.Params[0].Kind())

	nonCtor := spec.NonCtorMethods()
	require.Len(t, nonCtor, 3)
	assert.Equal(t, "balanceOf", nonCtor[0].Name)
	require.NotNil(t, nonCtor[0].Result)
	assert.Equal(t, abi.KindU256, nonCtor[0].Result.Kind())
}
