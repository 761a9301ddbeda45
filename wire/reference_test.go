package wire

import (
	"bytes"
	"testing"
	"time"
)

// TestReferenceVectors checks five of the six concrete byte sequences the
// wire format is defined against: a bare bool, a direct-range u32, a
// negated i32, a short string, and a short list of direct-range integers.
// The sixth, the named-struct vector, lives in encfmt's own reference test,
// since it needs the aggregate framing this package doesn't provide.
func TestReferenceVectors(t *testing.T) {
	cases := []struct {
		name   string
		encode func(Writer)
		want   []byte
	}{
		{"true", func(w Writer) { EncodeBool(w, true) }, []byte{0x04}},
		{"42u32", func(w Writer) { EncodeUint32(w, 42) }, []byte{0x2D}},
		{"-1i32", func(w Writer) { EncodeInt32(w, -1) }, []byte{0x88, 0x03}},
		{`"hi"`, func(w Writer) { EncodeString(w, "hi") }, []byte{0x8D, 'h', 'i'}},
		{"[1,2,3]", func(w Writer) {
			EncodeListHeader(w, 3)
			EncodeUint64(w, 1)
			EncodeUint64(w, 2)
			EncodeUint64(w, 3)
		}, []byte{0xBF, 0x04, 0x05, 0x06}},
	}
	for _, c := range cases {
		w := NewSliceWriter(len(c.want))
		c.encode(w)
		if !bytes.Equal(w.Bytes(), c.want) {
			t.Errorf("%s: got % X want % X", c.name, w.Bytes(), c.want)
		}
	}
}

func TestCalendarDateTimeRoundTrip(t *testing.T) {
	want := time.Date(2026, 8, 3, 12, 0, 0, 500, time.UTC)
	w := NewSliceWriter(13)
	EncodeCalendarDateTime(w, want)
	got, err := DecodeCalendarDateTime(NewSliceReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeCalendarDateTime: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("DecodeCalendarDateTime: got %v want %v", got, want)
	}
}

func TestIdentifier128RoundTrip(t *testing.T) {
	var want Identifier128
	for i := range want {
		want[i] = byte(i)
	}
	w := NewSliceWriter(17)
	EncodeIdentifier128(w, want)
	got, err := DecodeIdentifier128(NewSliceReader(w.Bytes()))
	if err != nil || got != want {
		t.Fatalf("DecodeIdentifier128: got (%v,%v) want (%v,nil)", got, err, want)
	}
}

func TestJSONValueRoundTrip(t *testing.T) {
	want := JSONValue{
		Kind: JSONKindObject,
		Object: []JSONField{
			{Key: "n", Value: JSONValue{Kind: JSONKindNumber, NumKind: JSONNumberSigned, NumInt: -3}},
			{Key: "list", Value: JSONValue{Kind: JSONKindArray, Array: []JSONValue{
				{Kind: JSONKindBool, Bool: true},
				{Kind: JSONKindNull},
				{Kind: JSONKindString, Str: "x"},
			}}},
		},
	}
	w := NewSliceWriter(32)
	EncodeJSONValue(w, want)
	got, err := DecodeJSONValue(NewSliceReader(w.Bytes()), newDepthGuard(DefaultLimits))
	if err != nil {
		t.Fatalf("DecodeJSONValue: %v", err)
	}
	if !jsonValueEqual(got, want) {
		t.Fatalf("DecodeJSONValue: got %+v want %+v", got, want)
	}
}

func jsonValueEqual(a, b JSONValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case JSONKindBool:
		return a.Bool == b.Bool
	case JSONKindNumber:
		return a.NumKind == b.NumKind && a.NumUint == b.NumUint && a.NumInt == b.NumInt && a.NumFloat == b.NumFloat
	case JSONKindString:
		return a.Str == b.Str
	case JSONKindArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !jsonValueEqual(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case JSONKindObject:
		if len(a.Object) != len(b.Object) {
			return false
		}
		for i := range a.Object {
			if a.Object[i].Key != b.Object[i].Key || !jsonValueEqual(a.Object[i].Value, b.Object[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func TestSkipConsumesMixedValues(t *testing.T) {
	w := NewSliceWriter(64)
	EncodeUint64(w, 300000)
	EncodeString(w, "the quick brown fox jumps over the lazy dog and then some")
	EncodeBytes(w, []byte{1, 2, 3})
	EncodeListHeader(w, 2)
	EncodeBool(w, true)
	EncodeBool(w, false)

	r := NewSliceReader(w.Bytes())
	for i := 0; i < 4; i++ {
		if err := Skip(r, DefaultLimits); err != nil {
			t.Fatalf("Skip value %d: %v", i, err)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Skip left %d unread bytes, want 0", r.Len())
	}
}

func TestDepthGuardRejectsExcessiveNesting(t *testing.T) {
	w := NewSliceWriter(256)
	depth := 200
	for i := 0; i < depth; i++ {
		EncodeSomeHeader(w)
	}
	EncodeNone(w)

	limits := Limits{MaxDepth: 10, MaxElements: DefaultLimits.MaxElements}
	if err := Skip(NewSliceReader(w.Bytes()), limits); err == nil {
		t.Fatalf("expected depth-exceeded error")
	}
}
