package wire

import (
	"encoding/binary"
	"time"

	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/varint"
)

// Identifier128 is the core's own 16-byte representation of the domain
// type shared by uuid and ulid (spec §4.1: "128-bit identifier shared by
// uuid/ulid"). Binding a specific uuid or ulid package's type to this
// representation is the out-of-scope adapter layer named in spec.md §1;
// the core only owns the wire shape.
type Identifier128 [16]byte

// Decimal128 is the core's own fixed-precision decimal representation:
// a 128-bit mantissa and a 32-bit scale (spec §4.1). Binding a specific
// decimal package's type is likewise out of scope for the core.
type Decimal128 struct {
	Mantissa Int128
	Scale    uint32
}

// CalendarDate is the core's representation of a calendar date: signed
// days since 1970-01-01 (spec §4.1).
type CalendarDate struct {
	Days int64
}

// CalendarTime is the core's representation of a time-of-day: seconds
// since midnight plus nanoseconds (spec §4.1).
type CalendarTime struct {
	Seconds uint32
	Nanos   uint32
}

// EncodeIdentifier128 writes the Identifier128 tag followed by the 16 raw
// bytes, already little-endian per spec §4.1.
func EncodeIdentifier128(w Writer, id Identifier128) {
	w.AppendByte(byte(tag.Identifier128))
	w.AppendBytes(id[:])
}

func DecodeIdentifier128(r Reader) (Identifier128, error) {
	t, err := ReadTag(r)
	if err != nil {
		return Identifier128{}, err
	}
	if t != tag.Identifier128 {
		return Identifier128{}, errTypeMismatch("expected 128-bit identifier tag")
	}
	b, err := r.ReadN(16)
	if err != nil {
		return Identifier128{}, err
	}
	var id Identifier128
	copy(id[:], b)
	return id, nil
}

// EncodeDecimal writes the Decimal tag, the signed 128-bit mantissa, then
// the 32-bit scale.
func EncodeDecimal(w Writer, d Decimal128) {
	w.AppendByte(byte(tag.Decimal))
	writeI128Raw(w, d.Mantissa)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], d.Scale)
	w.AppendBytes(b[:])
}

func DecodeDecimal(r Reader) (Decimal128, error) {
	t, err := ReadTag(r)
	if err != nil {
		return Decimal128{}, err
	}
	if t != tag.Decimal {
		return Decimal128{}, errTypeMismatch("expected decimal tag")
	}
	mant, err := readI128Raw(r)
	if err != nil {
		return Decimal128{}, err
	}
	b, err := r.ReadN(4)
	if err != nil {
		return Decimal128{}, err
	}
	return Decimal128{Mantissa: mant, Scale: binary.LittleEndian.Uint32(b)}, nil
}

func writeI128Raw(w Writer, v Int128) {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], v.Lo)
	binary.LittleEndian.PutUint64(b[8:16], v.Hi)
	w.AppendBytes(b[:])
}

func readI128Raw(r Reader) (Int128, error) {
	b, err := r.ReadN(16)
	if err != nil {
		return Int128{}, err
	}
	return Int128{Lo: binary.LittleEndian.Uint64(b[0:8]), Hi: binary.LittleEndian.Uint64(b[8:16])}, nil
}

// EncodeCalendarDateTime writes the CalendarDateTime tag, then signed
// 64-bit seconds since epoch and 32-bit nanoseconds.
func EncodeCalendarDateTime(w Writer, t time.Time) {
	w.AppendByte(byte(tag.CalendarDateTime))
	writeSecondsNanos(w, t.Unix(), int32(t.Nanosecond()))
}

func DecodeCalendarDateTime(r Reader) (time.Time, error) {
	t, err := ReadTag(r)
	if err != nil {
		return time.Time{}, err
	}
	if t != tag.CalendarDateTime {
		return time.Time{}, errTypeMismatch("expected calendar date-time tag")
	}
	sec, nanos, err := readSecondsNanos(r)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, int64(nanos)).UTC(), nil
}

// EncodeNaiveCalendarDateTime writes the same payload under the
// naive-date-time tag (spec §6 tag 208), used for timestamps with no
// associated timezone.
func EncodeNaiveCalendarDateTime(w Writer, t time.Time) {
	w.AppendByte(byte(tag.NaiveCalendarDateTime))
	writeSecondsNanos(w, t.Unix(), int32(t.Nanosecond()))
}

func DecodeNaiveCalendarDateTime(r Reader) (time.Time, error) {
	t, err := ReadTag(r)
	if err != nil {
		return time.Time{}, err
	}
	if t != tag.NaiveCalendarDateTime {
		return time.Time{}, errTypeMismatch("expected naive calendar date-time tag")
	}
	sec, nanos, err := readSecondsNanos(r)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, int64(nanos)).UTC(), nil
}

func writeSecondsNanos(w Writer, sec int64, nanos int32) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(sec))
	w.AppendBytes(b[:])
	var nb [4]byte
	binary.LittleEndian.PutUint32(nb[:], uint32(nanos))
	w.AppendBytes(nb[:])
}

func readSecondsNanos(r Reader) (int64, int32, error) {
	b, err := r.ReadN(8)
	if err != nil {
		return 0, 0, err
	}
	sec := int64(binary.LittleEndian.Uint64(b))
	nb, err := r.ReadN(4)
	if err != nil {
		return 0, 0, err
	}
	nanos := int32(binary.LittleEndian.Uint32(nb))
	return sec, nanos, nil
}

// EncodeCalendarDate writes the CalendarDate tag then signed 64-bit days
// since 1970-01-01.
func EncodeCalendarDate(w Writer, d CalendarDate) {
	w.AppendByte(byte(tag.CalendarDate))
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(d.Days))
	w.AppendBytes(b[:])
}

func DecodeCalendarDate(r Reader) (CalendarDate, error) {
	t, err := ReadTag(r)
	if err != nil {
		return CalendarDate{}, err
	}
	if t != tag.CalendarDate {
		return CalendarDate{}, errTypeMismatch("expected calendar date tag")
	}
	b, err := r.ReadN(8)
	if err != nil {
		return CalendarDate{}, err
	}
	return CalendarDate{Days: int64(binary.LittleEndian.Uint64(b))}, nil
}

// EncodeCalendarTime writes the CalendarTime tag then 32-bit seconds since
// midnight and 32-bit nanoseconds.
func EncodeCalendarTime(w Writer, t CalendarTime) {
	w.AppendByte(byte(tag.CalendarTime))
	var sb [4]byte
	binary.LittleEndian.PutUint32(sb[:], t.Seconds)
	w.AppendBytes(sb[:])
	var nb [4]byte
	binary.LittleEndian.PutUint32(nb[:], t.Nanos)
	w.AppendBytes(nb[:])
}

func DecodeCalendarTime(r Reader) (CalendarTime, error) {
	t, err := ReadTag(r)
	if err != nil {
		return CalendarTime{}, err
	}
	if t != tag.CalendarTime {
		return CalendarTime{}, errTypeMismatch("expected calendar time tag")
	}
	sb, err := r.ReadN(4)
	if err != nil {
		return CalendarTime{}, err
	}
	nb, err := r.ReadN(4)
	if err != nil {
		return CalendarTime{}, err
	}
	return CalendarTime{
		Seconds: binary.LittleEndian.Uint32(sb),
		Nanos:   binary.LittleEndian.Uint32(nb),
	}, nil
}

// ---- Dynamic JSON ----

// JSONNumberKind discriminates the wire representation of a JSON number
// (spec §4.1: "the number tag carries a one-byte discriminator").
type JSONNumberKind byte

const (
	JSONNumberUnsigned JSONNumberKind = 0
	JSONNumberSigned   JSONNumberKind = 1
	JSONNumberFloat    JSONNumberKind = 2
)

// JSONKind discriminates which of the six dynamic-JSON tags a JSONValue
// carries.
type JSONKind int

const (
	JSONKindNull JSONKind = iota
	JSONKindBool
	JSONKindNumber
	JSONKindString
	JSONKindArray
	JSONKindObject
)

// JSONField is one key/value pair of a dynamic JSON object. Object member
// order is writer-defined and preserved on the wire; this core does not
// sort or deduplicate keys.
type JSONField struct {
	Key   string
	Value JSONValue
}

// JSONValue is the core's own recursive dynamic-JSON value tree — the wire
// shape defined by spec §4.1's six JSON tags. Binding this to
// encoding/json's map[string]any or json.RawMessage is the out-of-scope
// adapter layer; the core only needs this much structure to encode/decode
// the tags.
type JSONValue struct {
	Kind JSONKind

	Bool bool

	NumKind  JSONNumberKind
	NumUint  uint64
	NumInt   int64
	NumFloat float64

	Str string

	Array  []JSONValue
	Object []JSONField
}

func EncodeJSONValue(w Writer, v JSONValue) {
	switch v.Kind {
	case JSONKindNull:
		w.AppendByte(byte(tag.JSONNull))
	case JSONKindBool:
		w.AppendByte(byte(tag.JSONBool))
		b := byte(0)
		if v.Bool {
			b = 1
		}
		w.AppendByte(b)
	case JSONKindNumber:
		w.AppendByte(byte(tag.JSONNumber))
		// Canonicalize to the narrowest admitting discriminator: a signed
		// value that happens to be non-negative goes out as unsigned, since
		// unsigned is what an equivalent JSON-number literal would produce.
		kind, uval := v.NumKind, v.NumUint
		if kind == JSONNumberSigned && v.NumInt >= 0 {
			kind, uval = JSONNumberUnsigned, uint64(v.NumInt)
		}
		w.AppendByte(byte(kind))
		switch kind {
		case JSONNumberUnsigned:
			EncodeUint64(w, uval)
		case JSONNumberSigned:
			EncodeInt64(w, v.NumInt)
		case JSONNumberFloat:
			EncodeF64(w, v.NumFloat)
		}
	case JSONKindString:
		w.AppendByte(byte(tag.JSONString))
		EncodeString(w, v.Str)
	case JSONKindArray:
		w.AppendByte(byte(tag.JSONArray))
		w.AppendBytes(varint.EncodeUint64(nil, uint64(len(v.Array))))
		for _, e := range v.Array {
			EncodeJSONValue(w, e)
		}
	case JSONKindObject:
		w.AppendByte(byte(tag.JSONObject))
		w.AppendBytes(varint.EncodeUint64(nil, uint64(len(v.Object))))
		for _, f := range v.Object {
			EncodeString(w, f.Key)
			EncodeJSONValue(w, f.Value)
		}
	}
}

func DecodeJSONValue(r Reader, g *depthGuard) (JSONValue, error) {
	if err := g.enter(); err != nil {
		return JSONValue{}, err
	}
	defer g.exit()

	t, err := ReadTag(r)
	if err != nil {
		return JSONValue{}, err
	}
	switch t {
	case tag.JSONNull:
		return JSONValue{Kind: JSONKindNull}, nil
	case tag.JSONBool:
		b, err := r.ReadByte()
		if err != nil {
			return JSONValue{}, err
		}
		return JSONValue{Kind: JSONKindBool, Bool: b != 0}, nil
	case tag.JSONNumber:
		kb, err := r.ReadByte()
		if err != nil {
			return JSONValue{}, err
		}
		switch JSONNumberKind(kb) {
		case JSONNumberUnsigned:
			u, err := DecodeUint64(r)
			if err != nil {
				return JSONValue{}, err
			}
			return JSONValue{Kind: JSONKindNumber, NumKind: JSONNumberUnsigned, NumUint: u}, nil
		case JSONNumberSigned:
			i, err := DecodeInt64(r)
			if err != nil {
				return JSONValue{}, err
			}
			return JSONValue{Kind: JSONKindNumber, NumKind: JSONNumberSigned, NumInt: i}, nil
		case JSONNumberFloat:
			f, err := DecodeF64(r)
			if err != nil {
				return JSONValue{}, err
			}
			return JSONValue{Kind: JSONKindNumber, NumKind: JSONNumberFloat, NumFloat: f}, nil
		default:
			return JSONValue{}, errTypeMismatch("unknown JSON number discriminator")
		}
	case tag.JSONString:
		s, err := DecodeString(r)
		if err != nil {
			return JSONValue{}, err
		}
		return JSONValue{Kind: JSONKindString, Str: s}, nil
	case tag.JSONArray:
		n, err := decodeCountVarint(r, g)
		if err != nil {
			return JSONValue{}, err
		}
		arr := make([]JSONValue, 0, n)
		for i := 0; i < n; i++ {
			e, err := DecodeJSONValue(r, g)
			if err != nil {
				return JSONValue{}, err
			}
			arr = append(arr, e)
		}
		return JSONValue{Kind: JSONKindArray, Array: arr}, nil
	case tag.JSONObject:
		n, err := decodeCountVarint(r, g)
		if err != nil {
			return JSONValue{}, err
		}
		obj := make([]JSONField, 0, n)
		for i := 0; i < n; i++ {
			k, err := DecodeString(r)
			if err != nil {
				return JSONValue{}, err
			}
			v, err := DecodeJSONValue(r, g)
			if err != nil {
				return JSONValue{}, err
			}
			obj = append(obj, JSONField{Key: k, Value: v})
		}
		return JSONValue{Kind: JSONKindObject, Object: obj}, nil
	default:
		return JSONValue{}, errTypeMismatch("expected a dynamic JSON tag")
	}
}

func decodeCountVarint(r Reader, g *depthGuard) (int, error) {
	lenTag, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > uint64(^uint(0)>>1) {
		return 0, errOverflow("count does not fit")
	}
	if err := g.checkCount(int(lo)); err != nil {
		return 0, err
	}
	return int(lo), nil
}
