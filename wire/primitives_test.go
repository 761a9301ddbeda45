package wire

import (
	"bytes"
	"math"
	"testing"
)

func roundTripBytes(t *testing.T, encode func(Writer), want []byte) *SliceReader {
	t.Helper()
	w := NewSliceWriter(len(want))
	encode(w)
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("encoded mismatch:\n got: % X\nwant: % X", w.Bytes(), want)
	}
	return NewSliceReader(w.Bytes())
}

func TestBoolWireForm(t *testing.T) {
	roundTripBytes(t, func(w Writer) { EncodeBool(w, true) }, []byte{0x04})
	roundTripBytes(t, func(w Writer) { EncodeBool(w, false) }, []byte{0x03})

	r := NewSliceReader([]byte{0x04})
	v, err := DecodeBool(r)
	if err != nil || v != true {
		t.Fatalf("DecodeBool(true): got (%v,%v) want (true,nil)", v, err)
	}
}

func TestUint32Direct(t *testing.T) {
	r := roundTripBytes(t, func(w Writer) { EncodeUint32(w, 42) }, []byte{0x2D})
	v, err := DecodeUint32(r)
	if err != nil || v != 42 {
		t.Fatalf("DecodeUint32: got (%d,%v) want (42,nil)", v, err)
	}
}

func TestInt32Negative(t *testing.T) {
	// -1i32 -> 88 03, the negate marker followed by the bitwise complement
	// (0), encoded in the smallest unsigned form.
	r := roundTripBytes(t, func(w Writer) { EncodeInt32(w, -1) }, []byte{0x88, 0x03})
	v, err := DecodeInt32(r)
	if err != nil || v != -1 {
		t.Fatalf("DecodeInt32: got (%d,%v) want (-1,nil)", v, err)
	}
}

func TestIntegerWideningUnsignedToSigned(t *testing.T) {
	w := NewSliceWriter(4)
	EncodeUint32(w, 100)
	v, err := DecodeInt32(NewSliceReader(w.Bytes()))
	if err != nil || v != 100 {
		t.Fatalf("unsigned->signed widen: got (%d,%v) want (100,nil)", v, err)
	}
}

func TestIntegerWideningSignedToUnsignedRejectsNegative(t *testing.T) {
	w := NewSliceWriter(4)
	EncodeInt32(w, -5)
	if _, err := DecodeUint32(NewSliceReader(w.Bytes())); err == nil {
		t.Fatalf("expected error decoding negative value into unsigned target")
	}
}

func TestStringShortForm(t *testing.T) {
	r := roundTripBytes(t, func(w Writer) { EncodeString(w, "hi") }, []byte{0x8D, 'h', 'i'})
	v, err := DecodeString(r)
	if err != nil || v != "hi" {
		t.Fatalf("DecodeString: got (%q,%v) want (\"hi\",nil)", v, err)
	}
}

func TestStringLongForm(t *testing.T) {
	s := string(bytes.Repeat([]byte{'a'}, 41))
	w := NewSliceWriter(64)
	EncodeString(w, s)
	got, err := DecodeString(NewSliceReader(w.Bytes()))
	if err != nil || got != s {
		t.Fatalf("DecodeString(long): got (%q,%v) want (%q,nil)", got, err, s)
	}
}

func TestShortListForm(t *testing.T) {
	w := NewSliceWriter(4)
	EncodeListHeader(w, 3)
	for _, v := range []uint64{1, 2, 3} {
		EncodeUint64(w, v)
	}
	want := []byte{0xBF, 0x04, 0x05, 0x06}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("short list encoding: got % X want % X", w.Bytes(), want)
	}

	r := NewSliceReader(w.Bytes())
	n, err := DecodeListHeader(r)
	if err != nil || n != 3 {
		t.Fatalf("DecodeListHeader: got (%d,%v) want (3,nil)", n, err)
	}
	for _, want := range []uint64{1, 2, 3} {
		v, err := DecodeUint64(r)
		if err != nil || v != want {
			t.Fatalf("DecodeUint64 in list: got (%d,%v) want (%d,nil)", v, err, want)
		}
	}
}

func TestFloatNarrowingF64ToF32Allowed(t *testing.T) {
	w := NewSliceWriter(9)
	EncodeF64(w, 3.5)
	v, err := DecodeF32Widen(NewSliceReader(w.Bytes()))
	if err != nil || v != 3.5 {
		t.Fatalf("F64->F32 narrowing: got (%v,%v) want (3.5,nil)", v, err)
	}
}

func TestFloatWideningF32ToF64Rejected(t *testing.T) {
	w := NewSliceWriter(5)
	EncodeF32(w, 3.5)
	if _, err := DecodeF64(NewSliceReader(w.Bytes())); err == nil {
		t.Fatalf("expected error widening f32 into f64 target")
	}
}

func TestOptionalBareValueWidens(t *testing.T) {
	w := NewSliceWriter(1)
	EncodeUint64(w, 5)
	r := NewSliceReader(w.Bytes())
	state, err := PeekOptionalState(r)
	if err != nil || state != OptionalIsBare {
		t.Fatalf("PeekOptionalState: got (%v,%v) want (OptionalIsBare,nil)", state, err)
	}
	v, err := DecodeUint64(r)
	if err != nil || v != 5 {
		t.Fatalf("DecodeUint64 after bare widen: got (%d,%v) want (5,nil)", v, err)
	}
}

func TestOptionalNoneAndSome(t *testing.T) {
	w := NewSliceWriter(1)
	EncodeNone(w)
	state, err := PeekOptionalState(NewSliceReader(w.Bytes()))
	if err != nil || state != OptionalIsNone {
		t.Fatalf("PeekOptionalState(none): got (%v,%v) want (OptionalIsNone,nil)", state, err)
	}

	w = NewSliceWriter(2)
	EncodeSomeHeader(w)
	EncodeUint64(w, 9)
	r := NewSliceReader(w.Bytes())
	state, err = PeekOptionalState(r)
	if err != nil || state != OptionalIsSome {
		t.Fatalf("PeekOptionalState(some): got (%v,%v) want (OptionalIsSome,nil)", state, err)
	}
	v, err := DecodeUint64(r)
	if err != nil || v != 9 {
		t.Fatalf("DecodeUint64 after some: got (%d,%v) want (9,nil)", v, err)
	}
}

func TestInt128RoundTrip(t *testing.T) {
	values := []Int128{
		{Lo: 0, Hi: 0},
		{Lo: 1, Hi: 0},
		{Lo: math.MaxUint64, Hi: 0},
		{Lo: 0, Hi: 1 << 63}, // negative: sign bit set in the high word
	}
	for _, v := range values {
		w := NewSliceWriter(20)
		EncodeInt128(w, v)
		got, err := DecodeInt128(NewSliceReader(w.Bytes()))
		if err != nil {
			t.Fatalf("DecodeInt128(%+v): %v", v, err)
		}
		if got != v {
			t.Fatalf("DecodeInt128(%+v): got %+v", v, got)
		}
	}
}
