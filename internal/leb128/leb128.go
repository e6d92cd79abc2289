// Package leb128 decodes the little-endian base-128 variable-length integer
// encoding used throughout the Wasm binary format (spec.md §4.1, GLOSSARY).
//
// Decoding reads 7-bit groups from a *reader.Reader until a group's
// continuation bit (0x80) is clear. Per spec.md §4.1, there is no length cap
// beyond the target width: once enough bits have been read to fill the
// target type, further bits are simply shifted out (silent truncation),
// matching the Wasm spec's allowance for over-long encodings of a value that
// still fits once truncated to the declared width.
package leb128

// pull is the subset of *reader.Reader this package depends on.
type pull interface {
	PullByte() (byte, error)
}

// DecodeUint32 reads a LEB128-encoded unsigned integer and truncates it to
// 32 bits.
func DecodeUint32(r pull) (uint32, error) {
	v, err := decodeUnsigned(r, 32)
	return uint32(v), err
}

// DecodeUint64 reads a LEB128-encoded unsigned integer and truncates it to
// 64 bits.
func DecodeUint64(r pull) (uint64, error) {
	return decodeUnsigned(r, 64)
}

// DecodeInt32 reads a LEB128-encoded signed integer, sign-extended from the
// final group's bit 6, and truncates it to 32 bits.
func DecodeInt32(r pull) (int32, error) {
	v, err := decodeSigned(r, 32)
	return int32(v), err
}

// DecodeInt64 reads a LEB128-encoded signed integer, sign-extended from the
// final group's bit 6, and truncates it to 64 bits.
func DecodeInt64(r pull) (int64, error) {
	return decodeSigned(r, 64)
}

func decodeUnsigned(r pull, width uint) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.PullByte()
		if err != nil {
			return 0, err
		}
		if shift < 64 {
			result |= uint64(b&0x7f) << shift
		}
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	return result, nil
}

func decodeSigned(r pull, width uint) (int64, error) {
	var result int64
	var shift uint
	var b byte
	var err error
	for {
		b, err = r.PullByte()
		if err != nil {
			return 0, err
		}
		if shift < 64 {
			result |= int64(b&0x7f) << shift
		}
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	// Sign-extend from bit 6 of the final group, if the shift stopped
	// short of the target width.
	if shift < width && shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, nil
}
