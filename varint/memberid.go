package varint

import (
	"encoding/binary"
	"errors"
)

// ErrZeroIdentifier is returned when a caller tries to encode identifier 0,
// which is reserved as the end-of-members terminator.
var ErrZeroIdentifier = errors.New("varint: member identifier 0 is reserved")

// EncodeMemberID appends the compact member-identifier encoding of id to
// dst (spec §3, §6): 1 byte for id in [1,250]; 0xFF + 8 little-endian bytes
// for id >= 251. id == 0 is rejected with ErrZeroIdentifier.
func EncodeMemberID(dst []byte, id uint64) ([]byte, error) {
	if id == 0 {
		return dst, ErrZeroIdentifier
	}
	if id <= 250 {
		return append(dst, byte(id)), nil
	}
	dst = append(dst, 0xFF)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], id)
	return append(dst, b[:]...), nil
}

// DecodeMemberID reads one member-identifier byte sequence, having already
// read the first byte b. It returns (0, true, nil) when b is the
// end-of-members terminator.
func DecodeMemberID(r ByteReader, b byte) (id uint64, terminator bool, err error) {
	if b == 0x00 {
		return 0, true, nil
	}
	if b != 0xFF {
		return uint64(b), false, nil
	}
	rest, err := r.ReadN(8)
	if err != nil {
		return 0, false, err
	}
	return binary.LittleEndian.Uint64(rest), false, nil
}
