package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValueKindAcceptsKnownBytes(t *testing.T) {
	for b, want := range map[byte]ValueKind{
		0x7F: KindI32,
		0x7E: KindI64,
		0x7D: KindF32,
		0x7C: KindF64,
		0x70: KindFuncRef,
		0x6F: KindExternRef,
	} {
		got, err := DecodeValueKind(b)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDecodeValueKindRejectsUnknownByte(t *testing.T) {
	_, err := DecodeValueKind(0x00)
	require.Error(t, err)
	var malformed *MalformedModuleError
	require.ErrorAs(t, err, &malformed)
}

func TestValueKindString(t *testing.T) {
	require.Equal(t, "i32", KindI32.String())
	require.Contains(t, ValueKind(0x01).String(), "valuekind")
}

func TestFuncTypeEqual(t *testing.T) {
	a := &FuncType{Params: []ValueKind{KindI32, KindI64}, Results: []ValueKind{KindI32}}
	b := &FuncType{Params: []ValueKind{KindI32, KindI64}, Results: []ValueKind{KindI32}}
	c := &FuncType{Params: []ValueKind{KindI64, KindI32}, Results: []ValueKind{KindI32}}

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestMemoryLimitsEffectiveMax(t *testing.T) {
	require.Equal(t, MemoryMaxSentinel, MemoryLimits{Min: 1}.EffectiveMax())
	require.Equal(t, uint32(10), MemoryLimits{Min: 1, Max: 10, MaxPresent: true}.EffectiveMax())
}

func TestExternTypeNullProbe(t *testing.T) {
	funcExtern := &ExternType{Kind: ExportFunc, Func: &FuncType{}}
	require.NotNil(t, funcExtern.FuncTypeOrNil())
	require.Nil(t, funcExtern.GlobalOrNil())
	require.Nil(t, funcExtern.MemoryOrNil())
}
