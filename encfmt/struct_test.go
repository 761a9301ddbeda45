package encfmt

import (
	"bytes"
	"testing"

	"github.com/wiretag/wiretag/wire"
)

func TestNamedStructReferenceVector(t *testing.T) {
	// {a: 42u32, b: "hi"} with member ids 1 and 2 -> B7 01 2D 02 8D 68 69 00
	w := wire.NewSliceWriter(16)
	err := EncodeNamedStruct(w, func(mw *MemberWriter) error {
		if err := mw.WriteMember(1, func(w wire.Writer) { wire.EncodeUint32(w, 42) }); err != nil {
			return err
		}
		return mw.WriteMember(2, func(w wire.Writer) { wire.EncodeString(w, "hi") })
	})
	if err != nil {
		t.Fatalf("EncodeNamedStruct: %v", err)
	}
	want := []byte{0xB7, 0x01, 0x2D, 0x02, 0x8D, 'h', 'i', 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("encoded mismatch:\n got: % X\nwant: % X", w.Bytes(), want)
	}

	var a uint32
	var b string
	r := wire.NewSliceReader(w.Bytes()[1:]) // DecodeNamedMembers starts after the aggregate tag
	if err := DecodeNamedMembers(r, wire.DefaultLimits, []MemberSpec{
		{ID: 1, Name: "a", Decode: func() error {
			v, err := wire.DecodeUint32(r)
			a = v
			return err
		}},
		{ID: 2, Name: "b", Decode: func() error {
			v, err := wire.DecodeString(r)
			b = v
			return err
		}},
	}); err != nil {
		t.Fatalf("DecodeNamedMembers: %v", err)
	}
	if a != 42 || b != "hi" {
		t.Fatalf("decoded mismatch: got a=%d b=%q want a=42 b=\"hi\"", a, b)
	}
}

func TestUnitStruct(t *testing.T) {
	w := wire.NewSliceWriter(1)
	EncodeUnitStruct(w)
	want := []byte{0xB6}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("EncodeUnitStruct: got % X want % X", w.Bytes(), want)
	}
}

func TestNamedStructUnknownMemberSkipped(t *testing.T) {
	w := wire.NewSliceWriter(16)
	err := EncodeNamedStruct(w, func(mw *MemberWriter) error {
		if err := mw.WriteMember(1, func(w wire.Writer) { wire.EncodeUint32(w, 1) }); err != nil {
			return err
		}
		return mw.WriteMember(99, func(w wire.Writer) { wire.EncodeString(w, "future field") })
	})
	if err != nil {
		t.Fatalf("EncodeNamedStruct: %v", err)
	}

	r := wire.NewSliceReader(w.Bytes()[1:])
	var a uint32
	if err := DecodeNamedMembers(r, wire.DefaultLimits, []MemberSpec{
		{ID: 1, Name: "a", Decode: func() error {
			v, err := wire.DecodeUint32(r)
			a = v
			return err
		}},
	}); err != nil {
		t.Fatalf("DecodeNamedMembers with unknown member: %v", err)
	}
	if a != 1 {
		t.Fatalf("a: got %d want 1", a)
	}
}

func TestNamedStructMissingMember(t *testing.T) {
	w := wire.NewSliceWriter(8)
	if err := EncodeNamedStruct(w, func(mw *MemberWriter) error { return nil }); err != nil {
		t.Fatalf("EncodeNamedStruct: %v", err)
	}

	r := wire.NewSliceReader(w.Bytes()[1:])
	called := false
	err := DecodeNamedMembers(r, wire.DefaultLimits, []MemberSpec{
		{ID: 1, Name: "required", OnMissing: func() error {
			called = true
			return wire.NewMissingMemberError("required")
		}},
	})
	if err == nil {
		t.Fatalf("expected missing-member error")
	}
	if !called {
		t.Fatalf("OnMissing was not invoked")
	}
}

func TestNamedStructDuplicateMember(t *testing.T) {
	w := wire.NewSliceWriter(8)
	w.AppendByte(0xB7)
	w.AppendByte(0x01)
	wire.EncodeUint32(w, 1)
	w.AppendByte(0x01)
	wire.EncodeUint32(w, 2)
	w.AppendByte(0x00)

	r := wire.NewSliceReader(w.Bytes()[1:]) // DecodeNamedMembers starts after the aggregate tag
	if err := DecodeNamedMembers(r, wire.DefaultLimits, []MemberSpec{
		{ID: 1, Name: "a", Decode: func() error { _, err := wire.DecodeUint32(r); return err }},
	}); err == nil {
		t.Fatalf("expected duplicate-member error")
	}
}

func TestPositionalStructRoundTrip(t *testing.T) {
	w := wire.NewSliceWriter(8)
	EncodePositionalStruct(w, []func(wire.Writer){
		func(w wire.Writer) { wire.EncodeUint32(w, 7) },
		func(w wire.Writer) { wire.EncodeBool(w, true) },
	})

	var a uint32
	var b bool
	r := wire.NewSliceReader(w.Bytes()[1:]) // skip the PositionalStruct tag
	if err := DecodePositionalMembers(r, wire.DefaultLimits, []func() error{
		func() error { v, err := wire.DecodeUint32(r); a = v; return err },
		func() error { v, err := wire.DecodeBool(r); b = v; return err },
	}); err != nil {
		t.Fatalf("DecodePositionalMembers: %v", err)
	}
	if a != 7 || !b {
		t.Fatalf("decoded mismatch: got a=%d b=%v want a=7 b=true", a, b)
	}
}
