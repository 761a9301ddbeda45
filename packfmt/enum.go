package packfmt

import (
	"github.com/wiretag/wiretag/varint"
	"github.com/wiretag/wiretag/wire"
)

// EncodeVariantID writes a packed variant identifier: the same
// variable-length unsigned form as any other integer (pack format's
// variant identifier carries no terminator-byte ambiguity the way a
// member identifier does, since it is always immediately followed by a
// fixed or counted payload rather than a run of further identifiers).
func EncodeVariantID(w wire.Writer, variantID uint64) {
	w.AppendBytes(varint.EncodeUint64(nil, variantID))
}

// DecodeVariantID reads a packed variant identifier.
func DecodeVariantID(r wire.Reader) (uint64, error) {
	return wire.DecodeUint64(r)
}

// EncodeUnitEnumVariant writes just the variant identifier (spec §4.3).
func EncodeUnitEnumVariant(w wire.Writer, variantID uint64) {
	EncodeVariantID(w, variantID)
}

// EncodeNamedEnumVariant writes the variant identifier, the fingerprint,
// then the packed values in declaration order.
func EncodeNamedEnumVariant(w wire.Writer, variantID, fp uint64, members []func(wire.Writer)) {
	EncodeVariantID(w, variantID)
	EncodeNamedStruct(w, fp, members)
}

// DecodeNamedEnumVariant verifies the fingerprint (the variant identifier
// itself is assumed already consumed by the caller via DecodeVariantID, so
// it can be matched against the declared variant set before this is
// called) then decodes members in declaration order.
func DecodeNamedEnumVariant(r wire.Reader, want uint64, decode []func() error) error {
	return DecodeNamedStruct(r, want, decode)
}

// EncodePositionalEnumVariant writes the variant identifier, the member
// count, then the packed values in declaration order.
func EncodePositionalEnumVariant(w wire.Writer, variantID uint64, members []func(wire.Writer)) {
	EncodeVariantID(w, variantID)
	EncodePositionalStruct(w, members)
}

// DecodePositionalEnumVariant decodes the member count and members,
// assuming the caller already consumed the variant identifier.
func DecodePositionalEnumVariant(r wire.Reader, decode []func() error) error {
	return DecodePositionalStruct(r, decode)
}
