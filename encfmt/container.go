package encfmt

import (
	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/wire"
)

// EncodeContainer prepends the 2-byte encode-format magic (spec §4.3, §6)
// before calling encode. Direct primitive codec calls never include this
// magic; only the convenience entry points do.
func EncodeContainer(w wire.Writer, encode func(wire.Writer)) {
	w.AppendBytes(tag.EncodeMagic[:])
	encode(w)
}

// DecodeContainer verifies and consumes the encode-format magic, then
// calls decode with the same Reader positioned just past it.
func DecodeContainer(r wire.Reader, decode func(wire.Reader) error) error {
	b, err := r.ReadN(2)
	if err != nil {
		return err
	}
	if b[0] != tag.EncodeMagic[0] || b[1] != tag.EncodeMagic[1] {
		return wire.NewTypeMismatchError("missing or mismatched encode-format container magic")
	}
	return decode(r)
}
