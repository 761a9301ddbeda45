package packfmt

import (
	"time"

	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/wire"
)

// EncodeU8 writes a packed u8 as a single raw byte with no tag (spec §4.3:
// "u8 carries no range ambiguity and the savings are worthwhile in dense
// records").
func EncodeU8(w wire.Writer, v uint8) { w.AppendByte(v) }

// DecodeU8 reads a packed u8.
func DecodeU8(r wire.Reader) (uint8, error) { return r.ReadByte() }

// Every other primitive (bool, u16..u128, i8..i128, char, string, bytes,
// list/map/tuple headers) reuses wire's encode-format rules unchanged, per
// spec §4.3 — generated pack code calls wire.EncodeUint16, wire.DecodeBool,
// etc. directly. Only u8 and the zero-compressed types below get a
// pack-specific wrapper.

// EncodeF32 compresses the zero value to the single none-tag (spec §4.3).
func EncodeF32(w wire.Writer, v float32) {
	if v == 0 {
		w.AppendByte(byte(tag.None))
		return
	}
	wire.EncodeF32(w, v)
}

func DecodeF32(r wire.Reader) (float32, error) {
	t, err := wire.PeekTag(r)
	if err != nil {
		return 0, err
	}
	if t == tag.None {
		_, _ = r.ReadByte()
		return 0, nil
	}
	return wire.DecodeF32(r)
}

// EncodeF64 compresses the zero value to the single none-tag.
func EncodeF64(w wire.Writer, v float64) {
	if v == 0 {
		w.AppendByte(byte(tag.None))
		return
	}
	wire.EncodeF64(w, v)
}

func DecodeF64(r wire.Reader) (float64, error) {
	t, err := wire.PeekTag(r)
	if err != nil {
		return 0, err
	}
	if t == tag.None {
		_, _ = r.ReadByte()
		return 0, nil
	}
	return wire.DecodeF64(r)
}

// zeroInstant is the zero value used for the calendar date-time
// zero-compression: the Unix epoch instant, matching a zero-initialized
// (seconds=0, nanos=0) timestamp.
var zeroInstant = time.Unix(0, 0).UTC()

func isZeroInstant(t time.Time) bool { return t.Unix() == 0 && t.Nanosecond() == 0 }

// EncodeCalendarDateTime compresses the zero-value timestamp (the Unix
// epoch instant) to the single none-tag (spec §4.3).
func EncodeCalendarDateTime(w wire.Writer, t time.Time) {
	if isZeroInstant(t) {
		w.AppendByte(byte(tag.None))
		return
	}
	wire.EncodeCalendarDateTime(w, t)
}

func DecodeCalendarDateTime(r wire.Reader) (time.Time, error) {
	t, err := wire.PeekTag(r)
	if err != nil {
		return time.Time{}, err
	}
	if t == tag.None {
		_, _ = r.ReadByte()
		return zeroInstant, nil
	}
	return wire.DecodeCalendarDateTime(r)
}

// EncodeNaiveCalendarDateTime compresses the zero-value naive timestamp.
func EncodeNaiveCalendarDateTime(w wire.Writer, t time.Time) {
	if isZeroInstant(t) {
		w.AppendByte(byte(tag.None))
		return
	}
	wire.EncodeNaiveCalendarDateTime(w, t)
}

func DecodeNaiveCalendarDateTime(r wire.Reader) (time.Time, error) {
	t, err := wire.PeekTag(r)
	if err != nil {
		return time.Time{}, err
	}
	if t == tag.None {
		_, _ = r.ReadByte()
		return zeroInstant, nil
	}
	return wire.DecodeNaiveCalendarDateTime(r)
}

// EncodeIdentifier128 compresses the all-zero identifier (the nil uuid/ulid
// value) to the single none-tag.
func EncodeIdentifier128(w wire.Writer, id wire.Identifier128) {
	if id == (wire.Identifier128{}) {
		w.AppendByte(byte(tag.None))
		return
	}
	wire.EncodeIdentifier128(w, id)
}

func DecodeIdentifier128(r wire.Reader) (wire.Identifier128, error) {
	t, err := wire.PeekTag(r)
	if err != nil {
		return wire.Identifier128{}, err
	}
	if t == tag.None {
		_, _ = r.ReadByte()
		return wire.Identifier128{}, nil
	}
	return wire.DecodeIdentifier128(r)
}
