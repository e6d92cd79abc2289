// Package reader implements the stateful binary cursor described in
// spec.md §4.1: bounded pulls of raw bytes and fixed-width integers over an
// in-memory byte slice. LEB128 decoding over this cursor is provided by
// internal/leb128. It never allocates
// beyond the slices it returns, and it never reads past the end of its
// buffer.
package reader

import "errors"

// ErrTruncated is returned (possibly wrapped) whenever a pull runs past the
// end of the underlying buffer. See spec.md §7, "Truncated-input".
var ErrTruncated = errors.New("reader: truncated input")

// Reader is a cursor over a byte slice: a pointer plus a remaining length.
// The zero value is not usable; construct with New.
type Reader struct {
	buf []byte
	pos int
}

// New returns a Reader positioned at the start of buf.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Pos returns the current offset from the start of the buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Pull advances the cursor by n bytes and returns the skipped-over slice.
// The returned slice aliases the Reader's backing array; callers must copy
// it if they need to retain it past further mutation of the source buffer.
func (r *Reader) Pull(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// PullByte reads and returns a single byte.
func (r *Reader) PullByte() (byte, error) {
	if r.Len() < 1 {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing the cursor.
func (r *Reader) PeekByte() (byte, error) {
	if r.Len() < 1 {
		return 0, ErrTruncated
	}
	return r.buf[r.pos], nil
}

// PullU32 reads a fixed-width, little-endian 32-bit unsigned integer (used
// for the module header's magic and version fields, which are not
// LEB128-encoded).
func (r *Reader) PullU32() (uint32, error) {
	b, err := r.Pull(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// Sub carves off the next n bytes as an independent Reader over the same
// backing array, advancing this Reader past them. Used to bound section
// parsing to its declared size (spec.md §4.3, step 2).
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.Pull(n)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}
