// Package packfmt implements the pack-format aggregate framing (spec
// §4.3): positional members, a structural fingerprint guarding named
// aggregates against accidental type mismatches, and no terminator byte
// anywhere (every length is either fixed by the layout or counted up
// front). Unlike encfmt, pack format is NOT schema-evolving: members are
// positional and an older/newer member set will misalign.
package packfmt

import (
	"encoding/binary"

	"github.com/wiretag/wiretag/fingerprint"
	"github.com/wiretag/wiretag/varint"
	"github.com/wiretag/wiretag/wire"
)

// EncodeUnitStruct writes nothing; a packed unit struct occupies zero
// bytes (spec §4.3).
func EncodeUnitStruct(w wire.Writer) {}

// DecodeUnitStruct consumes nothing. It exists only so generated code has
// a symmetric call to make alongside EncodeUnitStruct.
func DecodeUnitStruct(r wire.Reader) error { return nil }

// EncodeNamedStruct writes the 64-bit little-endian structural fingerprint
// then each member's packed value in declaration order, by invoking each
// element of members in turn. There is no terminator in pack format.
func EncodeNamedStruct(w wire.Writer, fp uint64, members []func(wire.Writer)) {
	writeFingerprint(w, fp)
	for _, m := range members {
		m(w)
	}
}

// DecodeNamedStruct verifies the wire fingerprint against want, then
// invokes decode once per member in declaration order.
func DecodeNamedStruct(r wire.Reader, want uint64, decode []func() error) error {
	got, err := readFingerprint(r)
	if err != nil {
		return err
	}
	if got != want {
		return wire.NewFingerprintMismatchError(want, got)
	}
	for _, d := range decode {
		if err := d(); err != nil {
			return err
		}
	}
	return nil
}

// EncodePositionalStruct writes the variable-length unsigned member count
// then each packed value in declaration order.
func EncodePositionalStruct(w wire.Writer, members []func(wire.Writer)) {
	w.AppendBytes(varint.EncodeUint64(nil, uint64(len(members))))
	for _, m := range members {
		m(w)
	}
}

// DecodePositionalStruct reads the member count and invokes decode once
// per member; a count mismatch against len(decode) is a type-mismatch
// error, since pack format carries no other way to detect it.
func DecodePositionalStruct(r wire.Reader, decode []func() error) error {
	count, err := wire.DecodeUint64(r)
	if err != nil {
		return err
	}
	if int(count) != len(decode) {
		return wire.NewTypeMismatchError("packed positional struct member count does not match target type")
	}
	for _, d := range decode {
		if err := d(); err != nil {
			return err
		}
	}
	return nil
}

func writeFingerprint(w wire.Writer, fp uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], fp)
	w.AppendBytes(b[:])
}

func readFingerprint(r wire.Reader) (uint64, error) {
	b, err := r.ReadN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Fingerprint re-exports fingerprint.Fingerprint so generated code needs
// only import packfmt for both the framing calls and the value they frame.
func Fingerprint(name string, kind fingerprint.AggregateKind, shape fingerprint.MemberShape, members []fingerprint.Member) uint64 {
	return fingerprint.Fingerprint(name, kind, shape, members)
}
