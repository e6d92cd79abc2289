package leb128

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spidir/wasmssa/internal/reader"
)

func TestDecodeInt32(t *testing.T) {
	for _, c := range []struct {
		input    []byte
		expected int32
	}{
		{input: []byte{0x80, 0x80, 0x80, 0xb1, 0x7f}, expected: -165675008},
		{input: []byte{0x9b, 0xf1, 0x59}, expected: -624485},
		{input: []byte{0x80, 0x81, 0x7f}, expected: -16256},
		{input: []byte{0x7c}, expected: -4},
		{input: []byte{0x7f}, expected: -1},
		{input: []byte{0x00}, expected: 0},
		{input: []byte{0x01}, expected: 1},
		{input: []byte{0x04}, expected: 4},
		{input: []byte{0x80, 0xff, 0x0}, expected: 16256},
		{input: []byte{0xe5, 0x8e, 0x26}, expected: 624485},
		{input: []byte{0xff, 0xff, 0xff, 0xff, 0x7}, expected: math.MaxInt32},
	} {
		r := reader.New(c.input)
		got, err := DecodeInt32(r)
		require.NoError(t, err)
		require.Equal(t, c.expected, got)
		require.Equal(t, 0, r.Len(), "must consume the whole encoding")
	}
}

func TestDecodeInt64(t *testing.T) {
	for _, c := range []struct {
		input    []byte
		expected int64
	}{
		{input: []byte{0x81, 0x80, 0x80, 0x80, 0x78}, expected: -math.MaxInt32},
		{input: []byte{0xff, 0xff, 0xff, 0xff, 0x7}, expected: math.MaxInt32},
		{input: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x0}, expected: math.MaxInt64},
	} {
		r := reader.New(c.input)
		got, err := DecodeInt64(r)
		require.NoError(t, err)
		require.Equal(t, c.expected, got)
	}
}

func TestDecodeUint32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 1 << 20, math.MaxUint32} {
		r := reader.New(encodeUint(uint64(v)))
		got, err := DecodeUint32(r)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestDecodeTruncated(t *testing.T) {
	r := reader.New([]byte{0x80, 0x80})
	_, err := DecodeUint32(r)
	require.ErrorIs(t, err, reader.ErrTruncated)
}

// encodeUint is a minimal unsigned LEB128 encoder used only to build test
// fixtures; the production code only ever decodes (this core never emits
// Wasm binaries).
func encodeUint(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}
