package reader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPullByte(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	b, err := r.PullByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b)
	require.Equal(t, 1, r.Len())
}

func TestPullTruncated(t *testing.T) {
	r := New([]byte{0x01})
	_, err := r.Pull(2)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestPullU32(t *testing.T) {
	r := New([]byte{0x00, 0x61, 0x73, 0x6d})
	v, err := r.PullU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x6d736100), v)
}

func TestSubBoundsSection(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04})
	sub, err := r.Sub(2)
	require.NoError(t, err)
	require.Equal(t, 2, sub.Len())
	require.Equal(t, 2, r.Len())

	// The sub-reader cannot read past its own bound even though the parent
	// has more bytes.
	_, err = sub.Pull(3)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestPeekByteDoesNotAdvance(t *testing.T) {
	r := New([]byte{0x2a})
	b, err := r.PeekByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x2a), b)
	require.Equal(t, 1, r.Len())
}
