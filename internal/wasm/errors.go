package wasm

import (
	"errors"
	"fmt"

	"github.com/spidir/wasmssa/internal/reader"
)

// The abstract error kinds of spec.md §7. Each is a distinct type so a
// caller can errors.As against the taxonomy rather than string-matching;
// this mirrors the typed-error convention tetratelabs/wazero uses for its
// own public error surface (sys.ExitError).

// TruncatedInputError wraps reader.ErrTruncated with the section or
// construct that was being parsed when the buffer ran out.
type TruncatedInputError struct {
	Context string
	Err     error
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("wasm: truncated input while reading %s: %v", e.Context, e.Err)
}

func (e *TruncatedInputError) Unwrap() error { return e.Err }

// WrapTruncated wraps err as a TruncatedInputError tagged with context if
// err is (or wraps) reader.ErrTruncated, else returns err unchanged.
// Exported so internal/frontend can report truncation using the same
// taxonomy as the module loader.
func WrapTruncated(context string, err error) error { return truncated(context, err) }

func truncated(context string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, reader.ErrTruncated) {
		return &TruncatedInputError{Context: context, Err: err}
	}
	return err
}

// MalformedModuleError is spec.md §7's "Malformed-module": bytes present but
// violating the expected grammar (wrong magic, unknown section id, missing
// 0x60 in a functype, wrong `end` marker, and so on).
type MalformedModuleError struct {
	Reason string
}

func (e *MalformedModuleError) Error() string {
	return "wasm: malformed module: " + e.Reason
}

// UnsupportedFeatureError is spec.md §7's "Unsupported-feature": a
// syntactically valid construct this core does not implement (multi-value,
// floats, tables, if/else, br_table, call_indirect, non-trivial block
// types, non-trivial constant expressions).
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "wasm: unsupported feature: " + e.Feature
}

// ResourceExhaustedError is spec.md §7's "Resource-exhausted": an allocation
// failure surfaced from the host allocator. Go's runtime allocator panics on
// true OOM rather than returning an error, so this is reserved for
// self-imposed resource limits (e.g. a bound on module size or function
// count) that an embedder may configure in the future; none are enforced
// today, so this type exists to complete the taxonomy and is not yet
// constructed anywhere.
type ResourceExhaustedError struct {
	Resource string
}

func (e *ResourceExhaustedError) Error() string {
	return "wasm: resource exhausted: " + e.Resource
}
