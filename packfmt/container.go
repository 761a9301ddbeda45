package packfmt

import (
	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/wire"
)

// EncodeContainer prepends the 2-byte pack-format magic (spec §4.3, §6).
func EncodeContainer(w wire.Writer, encode func(wire.Writer)) {
	w.AppendBytes(tag.PackMagic[:])
	encode(w)
}

// DecodeContainer verifies and consumes the pack-format magic.
func DecodeContainer(r wire.Reader, decode func(wire.Reader) error) error {
	b, err := r.ReadN(2)
	if err != nil {
		return err
	}
	if b[0] != tag.PackMagic[0] || b[1] != tag.PackMagic[1] {
		return wire.NewTypeMismatchError("missing or mismatched pack-format container magic")
	}
	return decode(r)
}
