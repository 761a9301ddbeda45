package encfmt

import (
	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/varint"
	"github.com/wiretag/wiretag/wire"
)

// EncodeUnitEnumVariant writes the enum tag then the variant identifier
// (spec §4.2).
func EncodeUnitEnumVariant(w wire.Writer, variantID uint64) error {
	w.AppendByte(byte(tag.UnitEnum))
	dst, err := varint.EncodeMemberID(nil, variantID)
	if err != nil {
		return err
	}
	w.AppendBytes(dst)
	return nil
}

// EncodeNamedEnumVariant writes the named-enum tag, the variant
// identifier, then the same member-id/value pairs and terminator as
// EncodeNamedStruct.
func EncodeNamedEnumVariant(w wire.Writer, variantID uint64, emit func(mw *MemberWriter) error) error {
	w.AppendByte(byte(tag.NamedEnum))
	dst, err := varint.EncodeMemberID(nil, variantID)
	if err != nil {
		return err
	}
	w.AppendBytes(dst)
	mw := &MemberWriter{w: w}
	if err := emit(mw); err != nil {
		return err
	}
	w.AppendByte(tag.MemberTerminator)
	return nil
}

// EncodePositionalEnumVariant writes the positional-enum tag, the variant
// identifier, the member count, then each member in declaration order.
func EncodePositionalEnumVariant(w wire.Writer, variantID uint64, members []func(wire.Writer)) error {
	w.AppendByte(byte(tag.PositionalEnum))
	dst, err := varint.EncodeMemberID(nil, variantID)
	if err != nil {
		return err
	}
	w.AppendBytes(dst)
	w.AppendBytes(varint.EncodeUint64(nil, uint64(len(members))))
	for _, m := range members {
		m(w)
	}
	return nil
}

// DecodeVariantID reads a variant identifier, the same compact form used
// for member identifiers (spec §3 applies the member-identifier scheme to
// variant identifiers as well, per §4.2).
func DecodeVariantID(r wire.Reader) (uint64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	id, terminator, err := varint.DecodeMemberID(r, b)
	if err != nil {
		return 0, err
	}
	if terminator {
		return 0, wire.NewTypeMismatchError("variant identifier byte 0x00 is reserved as a terminator, not a valid id")
	}
	return id, nil
}
