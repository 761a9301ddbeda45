// Package encfmt implements the encode-format aggregate framing (spec
// §4.2): the member-identifier optimization, the terminator convention,
// and the unit/named/positional struct layouts. This is the
// schema-evolving format — callers are (eventually, via the out-of-scope
// code generator) expected to add, remove, reorder, or rename members
// across versions without breaking older wire.
package encfmt

import (
	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/varint"
	"github.com/wiretag/wiretag/wire"
)

// MemberWriter accumulates member-id/value pairs for one named struct or
// named enum variant. Callers obtain one from EncodeNamedStruct or
// EncodeNamedEnumVariant; it is only valid for the duration of that call's
// emit callback.
type MemberWriter struct {
	w wire.Writer
}

// WriteMember writes one member's identifier followed by its encoded
// value. encode is called with the same underlying Writer the member-id
// was just written to. Per spec §4.2, callers decide on the caller's side
// whether to omit a member entirely (optional-none, skip-if-default,
// skip-encode) — by simply not calling WriteMember for it.
func (mw *MemberWriter) WriteMember(id uint64, encode func(wire.Writer)) error {
	dst, err := varint.EncodeMemberID(nil, id)
	if err != nil {
		return err
	}
	mw.w.AppendBytes(dst)
	encode(mw.w)
	return nil
}

// EncodeUnitStruct writes a unit struct: just its tag (spec §4.2).
func EncodeUnitStruct(w wire.Writer) {
	w.AppendByte(byte(tag.UnitStruct))
}

// EncodeNamedStruct writes the named-struct tag, then whatever members
// emit chooses to write via the MemberWriter, then the terminator.
func EncodeNamedStruct(w wire.Writer, emit func(mw *MemberWriter) error) error {
	w.AppendByte(byte(tag.NamedStruct))
	mw := &MemberWriter{w: w}
	if err := emit(mw); err != nil {
		return err
	}
	w.AppendByte(tag.MemberTerminator)
	return nil
}

// EncodePositionalStruct writes the positional-struct tag, the member
// count, then each member's encoded value in declaration order by
// invoking each element of members in turn.
func EncodePositionalStruct(w wire.Writer, members []func(wire.Writer)) {
	w.AppendByte(byte(tag.PositionalStruct))
	w.AppendBytes(varint.EncodeUint64(nil, uint64(len(members))))
	for _, m := range members {
		m(w)
	}
}

// MemberSpec describes one declared member of a named struct/enum variant
// to DecodeNamedMembers: its identifier and how to decode it, plus what to
// do if it is absent at the terminator.
type MemberSpec struct {
	ID   uint64
	Name string

	// Decode reads this member's encoded value from the Reader closed over
	// by the caller. It is invoked only when this member's identifier is
	// present on the wire.
	Decode func() error

	// OnMissing is invoked once, after the terminator, if this member's
	// identifier never appeared. It should apply the member's default
	// (none for optional, the type's zero value for default/skip-if-default,
	// or return a missing-member error for a required member) — spec §4.2's
	// decoding rules.
	OnMissing func() error
}

// DecodeNamedMembers reads member-id/value pairs until the terminator,
// dispatching known identifiers to the matching MemberSpec.Decode and
// skipping everything else via the shared skip driver (spec §4.2's
// decoding rules, §4.5). After the terminator it calls OnMissing for every
// declared member whose identifier never appeared.
func DecodeNamedMembers(r wire.Reader, limits wire.Limits, specs []MemberSpec) error {
	byID := make(map[uint64]*MemberSpec, len(specs))
	seen := make(map[uint64]bool, len(specs))
	for i := range specs {
		byID[specs[i].ID] = &specs[i]
	}

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		id, terminator, err := varint.DecodeMemberID(r, b)
		if err != nil {
			return err
		}
		if terminator {
			break
		}
		if seen[id] {
			return wire.NewDuplicateMemberError(id)
		}
		seen[id] = true

		spec, known := byID[id]
		if !known {
			if err := wire.Skip(r, limits); err != nil {
				return err
			}
			continue
		}
		if err := spec.Decode(); err != nil {
			return err
		}
	}

	for i := range specs {
		if !seen[specs[i].ID] && specs[i].OnMissing != nil {
			if err := specs[i].OnMissing(); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodePositionalMembers reads the positional-struct member count and
// invokes decode once per member in declaration order. The caller supplies
// exactly as many decode funcs as the type declares members; spec.md's
// positional framing has no mechanism to add/remove members without
// breaking compatibility, so a wire count that differs from len(decode) is
// rejected with a type-mismatch error before any member is decoded.
func DecodePositionalMembers(r wire.Reader, limits wire.Limits, decode []func() error) error {
	count, err := wire.DecodeUint64(r)
	if err != nil {
		return err
	}
	n := int(count)
	if n != len(decode) {
		return wire.NewTypeMismatchError("positional struct member count does not match target type")
	}
	for _, d := range decode {
		if err := d(); err != nil {
			return err
		}
	}
	return nil
}
