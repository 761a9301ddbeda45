// Package varint implements the variable-length unsigned integer scheme
// shared by both wire formats (spec §3, §4.1) and the compact
// member-identifier encoding layered on top of it (spec §3, §4.4).
package varint

import (
	"encoding/binary"
	"errors"

	"github.com/wiretag/wiretag/tag"
)

// ErrOverflow is returned by DecodeUint when the tag it is given is not one
// of the unsigned-integer tags (the direct range or U8..U128).
var ErrOverflow = errors.New("varint: value overflows target width")

// EncodeUint appends the smallest encoding of v to dst and returns the
// result, per the table in spec §4.1:
//
//	0..=127                -> direct byte (Zero-tag + v)
//	128..=383              -> U8 tag, then (v-128) as one byte
//	384..=65535            -> U16 tag, then little-endian 2 bytes
//	65536..=2^32-1         -> U32 tag, then little-endian 4 bytes
//	2^32..=2^64-1          -> U64 tag, then little-endian 8 bytes
//	2^64..=2^128-1         -> U128 tag, then little-endian 16 bytes
//
// lo64 is the low 64 bits; hi64 is the high 64 bits, nonzero only when the
// value exceeds 2^64-1. Callers encoding plain uint64 pass hi64=0.
func EncodeUint(dst []byte, lo64, hi64 uint64) []byte {
	if hi64 == 0 && lo64 <= 127 {
		return append(dst, byte(tag.Zero)+byte(lo64))
	}
	if hi64 == 0 && lo64 <= 383 {
		return append(dst, byte(tag.U8), byte(lo64-128))
	}
	if hi64 == 0 && lo64 <= 65535 {
		dst = append(dst, byte(tag.U16))
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(lo64))
		return append(dst, b[:]...)
	}
	if hi64 == 0 && lo64 <= 0xFFFFFFFF {
		dst = append(dst, byte(tag.U32))
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(lo64))
		return append(dst, b[:]...)
	}
	if hi64 == 0 {
		dst = append(dst, byte(tag.U64))
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], lo64)
		return append(dst, b[:]...)
	}
	dst = append(dst, byte(tag.U128))
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], lo64)
	binary.LittleEndian.PutUint64(b[8:16], hi64)
	return append(dst, b[:]...)
}

// EncodeUint64 is the common case of EncodeUint for values known to fit in
// 64 bits.
func EncodeUint64(dst []byte, v uint64) []byte {
	return EncodeUint(dst, v, 0)
}

// ByteReader is the minimal cursor surface the decoders in this package
// need; wire.Reader satisfies it.
type ByteReader interface {
	ReadByte() (byte, error)
	ReadN(n int) ([]byte, error)
}

// DecodeUint reads one variable-length unsigned integer, already having
// consumed the leading tag byte t, and returns it split into low/high 64-bit
// halves (hi is nonzero only for the U128 form).
func DecodeUint(r ByteReader, t tag.Tag) (lo, hi uint64, err error) {
	if v, ok := tag.DirectInt(t); ok {
		return v, 0, nil
	}
	switch t {
	case tag.U8:
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		return uint64(b) + 128, 0, nil
	case tag.U16:
		b, err := r.ReadN(2)
		if err != nil {
			return 0, 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), 0, nil
	case tag.U32:
		b, err := r.ReadN(4)
		if err != nil {
			return 0, 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b)), 0, nil
	case tag.U64:
		b, err := r.ReadN(8)
		if err != nil {
			return 0, 0, err
		}
		return binary.LittleEndian.Uint64(b), 0, nil
	case tag.U128:
		b, err := r.ReadN(16)
		if err != nil {
			return 0, 0, err
		}
		return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16]), nil
	default:
		return 0, 0, ErrOverflow
	}
}

// FixedWidth returns the number of payload bytes that follow an extended
// integer width tag (0 for the direct range and for tags that are not
// integer tags at all).
func FixedWidth(t tag.Tag) (int, bool) {
	switch t {
	case tag.U8:
		return 1, true
	case tag.U16:
		return 2, true
	case tag.U32:
		return 4, true
	case tag.U64:
		return 8, true
	case tag.U128:
		return 16, true
	default:
		if _, ok := tag.DirectInt(t); ok {
			return 0, true
		}
		return 0, false
	}
}
