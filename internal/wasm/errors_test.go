package wasm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spidir/wasmssa/internal/reader"
)

func TestWrapTruncatedWrapsReaderError(t *testing.T) {
	r := reader.New(nil)
	_, rerr := r.PullByte()
	require.ErrorIs(t, rerr, reader.ErrTruncated)

	wrapped := WrapTruncated("opcode", rerr)
	var te *TruncatedInputError
	require.ErrorAs(t, wrapped, &te)
	require.Equal(t, "opcode", te.Context)
	require.ErrorIs(t, wrapped, reader.ErrTruncated)
}

func TestWrapTruncatedPassesThroughOtherErrors(t *testing.T) {
	other := errors.New("not a truncation")
	require.Same(t, other, WrapTruncated("whatever", other))
}

func TestWrapTruncatedNilIsNil(t *testing.T) {
	require.NoError(t, WrapTruncated("whatever", nil))
}

func TestErrorTaxonomyMessages(t *testing.T) {
	require.Contains(t, (&MalformedModuleError{Reason: "bad magic"}).Error(), "bad magic")
	require.Contains(t, (&UnsupportedFeatureError{Feature: "tables"}).Error(), "tables")
	require.Contains(t, (&ResourceExhaustedError{Resource: "functions"}).Error(), "functions")
}
