package encfmt

import (
	"bytes"
	"testing"

	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/wire"
)

func TestUnitEnumVariantRoundTrip(t *testing.T) {
	w := wire.NewSliceWriter(4)
	if err := EncodeUnitEnumVariant(w, 3); err != nil {
		t.Fatalf("EncodeUnitEnumVariant: %v", err)
	}
	want := []byte{byte(tag.UnitEnum), 0x03}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("encoded mismatch: got % X want % X", w.Bytes(), want)
	}

	r := wire.NewSliceReader(w.Bytes()[1:])
	id, err := DecodeVariantID(r)
	if err != nil || id != 3 {
		t.Fatalf("DecodeVariantID: got (%d,%v) want (3,nil)", id, err)
	}
}

func TestNamedEnumVariantRoundTrip(t *testing.T) {
	w := wire.NewSliceWriter(16)
	err := EncodeNamedEnumVariant(w, 1, func(mw *MemberWriter) error {
		return mw.WriteMember(1, func(w wire.Writer) { wire.EncodeUint32(w, 5) })
	})
	if err != nil {
		t.Fatalf("EncodeNamedEnumVariant: %v", err)
	}

	r := wire.NewSliceReader(w.Bytes()[1:])
	id, err := DecodeVariantID(r)
	if err != nil || id != 1 {
		t.Fatalf("DecodeVariantID: got (%d,%v) want (1,nil)", id, err)
	}
	var v uint32
	if err := DecodeNamedMembers(r, wire.DefaultLimits, []MemberSpec{
		{ID: 1, Name: "v", Decode: func() error {
			got, err := wire.DecodeUint32(r)
			v = got
			return err
		}},
	}); err != nil {
		t.Fatalf("DecodeNamedMembers: %v", err)
	}
	if v != 5 {
		t.Fatalf("v: got %d want 5", v)
	}
}

func TestPositionalEnumVariantRoundTrip(t *testing.T) {
	w := wire.NewSliceWriter(16)
	err := EncodePositionalEnumVariant(w, 2, []func(wire.Writer){
		func(w wire.Writer) { wire.EncodeString(w, "x") },
	})
	if err != nil {
		t.Fatalf("EncodePositionalEnumVariant: %v", err)
	}

	r := wire.NewSliceReader(w.Bytes()[1:])
	id, err := DecodeVariantID(r)
	if err != nil || id != 2 {
		t.Fatalf("DecodeVariantID: got (%d,%v) want (2,nil)", id, err)
	}
	var s string
	if err := DecodePositionalMembers(r, wire.DefaultLimits, []func() error{
		func() error { v, err := wire.DecodeString(r); s = v; return err },
	}); err != nil {
		t.Fatalf("DecodePositionalMembers: %v", err)
	}
	if s != "x" {
		t.Fatalf("s: got %q want \"x\"", s)
	}
}
