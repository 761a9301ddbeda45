package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/varint"
)

// Uint128 and Int128 represent 128-bit wire integers as two 64-bit words,
// little-endian in the sense that Lo holds bits 0..63 and Hi holds bits
// 64..127. Int128's bit pattern is two's complement.
type Uint128 struct{ Lo, Hi uint64 }
type Int128 struct{ Lo, Hi uint64 }

// ReadTag reads the next byte as a Tag.
func ReadTag(r Reader) (tag.Tag, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	return tag.Tag(b), nil
}

// PeekTag peeks the next byte as a Tag without consuming it.
func PeekTag(r Reader) (tag.Tag, error) {
	b, err := r.PeekByte()
	if err != nil {
		return 0, err
	}
	return tag.Tag(b), nil
}

func isIntegerTag(t tag.Tag) bool {
	if _, ok := tag.DirectInt(t); ok {
		return true
	}
	switch t {
	case tag.U8, tag.U16, tag.U32, tag.U64, tag.U128:
		return true
	default:
		return false
	}
}

// ---- Booleans ----

// EncodeBool writes false as the zero-tag and true as the one-tag (spec §4.1).
func EncodeBool(w Writer, v bool) {
	if v {
		w.AppendByte(byte(tag.One))
	} else {
		w.AppendByte(byte(tag.Zero))
	}
}

// DecodeBool accepts any encoding that yields integer 0 or 1; other
// integers, and the negate marker, are errors.
func DecodeBool(r Reader) (bool, error) {
	t, err := ReadTag(r)
	if err != nil {
		return false, err
	}
	if t == tag.Negate {
		return false, errSignMismatch()
	}
	if !isIntegerTag(t) {
		return false, errTypeMismatch("expected bool-compatible integer tag")
	}
	lo, hi, err := varint.DecodeUint(r, t)
	if err != nil {
		return false, err
	}
	if hi != 0 || lo > 1 {
		return false, errOverflow("bool: integer value is not 0 or 1")
	}
	return lo == 1, nil
}

// ---- Unsigned integers ----

func decodeUnsignedRaw(r Reader) (lo, hi uint64, err error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, 0, err
	}
	if t == tag.Negate {
		return 0, 0, errSignMismatch()
	}
	if !isIntegerTag(t) {
		return 0, 0, errTypeMismatch("expected an integer tag")
	}
	return varint.DecodeUint(r, t)
}

func EncodeUint8(w Writer, v uint8)   { w.AppendBytes(varint.EncodeUint64(nil, uint64(v))) }
func EncodeUint16(w Writer, v uint16) { w.AppendBytes(varint.EncodeUint64(nil, uint64(v))) }
func EncodeUint32(w Writer, v uint32) { w.AppendBytes(varint.EncodeUint64(nil, uint64(v))) }
func EncodeUint64(w Writer, v uint64) { w.AppendBytes(varint.EncodeUint64(nil, v)) }
func EncodeUint128(w Writer, v Uint128) {
	w.AppendBytes(varint.EncodeUint(nil, v.Lo, v.Hi))
}

func DecodeUint8(r Reader) (uint8, error) {
	lo, hi, err := decodeUnsignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > math.MaxUint8 {
		return 0, errOverflow("value does not fit u8")
	}
	return uint8(lo), nil
}

func DecodeUint16(r Reader) (uint16, error) {
	lo, hi, err := decodeUnsignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > math.MaxUint16 {
		return 0, errOverflow("value does not fit u16")
	}
	return uint16(lo), nil
}

func DecodeUint32(r Reader) (uint32, error) {
	lo, hi, err := decodeUnsignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > math.MaxUint32 {
		return 0, errOverflow("value does not fit u32")
	}
	return uint32(lo), nil
}

func DecodeUint64(r Reader) (uint64, error) {
	lo, hi, err := decodeUnsignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, errOverflow("value does not fit u64")
	}
	return lo, nil
}

func DecodeUint128(r Reader) (Uint128, error) {
	lo, hi, err := decodeUnsignedRaw(r)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{Lo: lo, Hi: hi}, nil
}

// ---- Signed integers ----

// decodeSignedRaw reads one signed value's wire representation and returns
// whether it was negative along with the unsigned magnitude-or-complement
// split into 64-bit words, per the negate-marker rule in spec §4.1.
func decodeSignedRaw(r Reader) (negative bool, lo, hi uint64, err error) {
	t, err := ReadTag(r)
	if err != nil {
		return false, 0, 0, err
	}
	if t == tag.Negate {
		t2, err := ReadTag(r)
		if err != nil {
			return false, 0, 0, err
		}
		if !isIntegerTag(t2) {
			return false, 0, 0, errTypeMismatch("negate marker not followed by an integer tag")
		}
		lo, hi, err = varint.DecodeUint(r, t2)
		return true, lo, hi, err
	}
	if !isIntegerTag(t) {
		return false, 0, 0, errTypeMismatch("expected an integer tag")
	}
	lo, hi, err = varint.DecodeUint(r, t)
	return false, lo, hi, err
}

func signedValue64(negative bool, lo uint64) int64 {
	if negative {
		return ^int64(lo)
	}
	return int64(lo)
}

func EncodeInt8(w Writer, v int8)   { encodeSigned64(w, int64(v)) }
func EncodeInt16(w Writer, v int16) { encodeSigned64(w, int64(v)) }
func EncodeInt32(w Writer, v int32) { encodeSigned64(w, int64(v)) }
func EncodeInt64(w Writer, v int64) { encodeSigned64(w, v) }

func encodeSigned64(w Writer, v int64) {
	if v >= 0 {
		w.AppendBytes(varint.EncodeUint64(nil, uint64(v)))
		return
	}
	w.AppendByte(byte(tag.Negate))
	comp := uint64(^v)
	w.AppendBytes(varint.EncodeUint64(nil, comp))
}

func EncodeInt128(w Writer, v Int128) {
	// Non-negative iff the sign bit of the high word is clear.
	if v.Hi>>63 == 0 {
		w.AppendBytes(varint.EncodeUint(nil, v.Lo, v.Hi))
		return
	}
	w.AppendByte(byte(tag.Negate))
	w.AppendBytes(varint.EncodeUint(nil, ^v.Lo, ^v.Hi))
}

func DecodeInt8(r Reader) (int8, error) {
	neg, lo, hi, err := decodeSignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, errOverflow("value does not fit i8")
	}
	v := signedValue64(neg, lo)
	if v < math.MinInt8 || v > math.MaxInt8 {
		return 0, errOverflow("value does not fit i8")
	}
	return int8(v), nil
}

func DecodeInt16(r Reader) (int16, error) {
	neg, lo, hi, err := decodeSignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, errOverflow("value does not fit i16")
	}
	v := signedValue64(neg, lo)
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, errOverflow("value does not fit i16")
	}
	return int16(v), nil
}

func DecodeInt32(r Reader) (int32, error) {
	neg, lo, hi, err := decodeSignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, errOverflow("value does not fit i32")
	}
	v := signedValue64(neg, lo)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errOverflow("value does not fit i32")
	}
	return int32(v), nil
}

func DecodeInt64(r Reader) (int64, error) {
	neg, lo, hi, err := decodeSignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, errOverflow("value does not fit i64")
	}
	return signedValue64(neg, lo), nil
}

func DecodeInt128(r Reader) (Int128, error) {
	neg, lo, hi, err := decodeSignedRaw(r)
	if err != nil {
		return Int128{}, err
	}
	if neg {
		return Int128{Lo: ^lo, Hi: ^hi}, nil
	}
	return Int128{Lo: lo, Hi: hi}, nil
}

// ---- Floating point ----

// EncodeF32 writes the F32 tag followed by the IEEE-754 little-endian bytes.
func EncodeF32(w Writer, v float32) {
	w.AppendByte(byte(tag.F32))
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.AppendBytes(b[:])
}

func EncodeF64(w Writer, v float64) {
	w.AppendByte(byte(tag.F64))
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.AppendBytes(b[:])
}

// DecodeF32 accepts only an F32-tagged value; an F64-tagged value is
// rejected with a type-mismatch error. DecodeF32Widen is the variant that
// also accepts the permitted F64 -> f32 narrowing.
func DecodeF32(r Reader) (float32, error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	if t != tag.F32 {
		return 0, errTypeMismatch("expected f32 tag; f64 -> f32 narrowing on decode is not supported")
	}
	b, err := r.ReadN(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// DecodeF64 accepts only an F64-tagged value. An F32-tagged value into a
// float64 target is a disallowed substitution and is rejected with a
// type-mismatch error.
func DecodeF64(r Reader) (float64, error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	if t != tag.F64 {
		return 0, errTypeMismatch("expected f64 tag")
	}
	b, err := r.ReadN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// DecodeF32Widen implements the one allowed cross-width float substitution:
// an F64-encoded value narrowed into a float32 target.
func DecodeF32Widen(r Reader) (float32, error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	switch t {
	case tag.F32:
		b, err := r.ReadN(4)
		if err != nil {
			return 0, err
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	case tag.F64:
		b, err := r.ReadN(8)
		if err != nil {
			return 0, err
		}
		return float32(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	default:
		return 0, errTypeMismatch("expected f32 or f64 tag")
	}
}

// ---- Characters ----

// EncodeChar writes a Unicode scalar as its code point via the
// variable-length unsigned form.
func EncodeChar(w Writer, r rune) {
	w.AppendBytes(varint.EncodeUint64(nil, uint64(r)))
}

// DecodeChar rejects values that are not valid Unicode scalars.
func DecodeChar(r Reader) (rune, error) {
	lo, hi, err := decodeUnsignedRaw(r)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > utf8.MaxRune {
		return 0, errTypeMismatch("character value out of Unicode scalar range")
	}
	cp := rune(lo)
	if !utf8.ValidRune(cp) {
		return 0, errTypeMismatch("character value is not a valid Unicode scalar")
	}
	return cp, nil
}

// ---- Strings ----

// EncodeString writes the short-string form for L<=40, else the long-string
// form.
func EncodeString(w Writer, s string) {
	l := len(s)
	if l <= 40 {
		w.AppendByte(byte(tag.ShortStringBase) + byte(l))
	} else {
		w.AppendByte(byte(tag.LongString))
		w.AppendBytes(varint.EncodeUint64(nil, uint64(l)))
	}
	w.AppendBytes([]byte(s))
}

func DecodeString(r Reader) (string, error) {
	t, err := ReadTag(r)
	if err != nil {
		return "", err
	}
	var l int
	if t == tag.LongString {
		lenTag, err := ReadTag(r)
		if err != nil {
			return "", err
		}
		lo, hi, err := varint.DecodeUint(r, lenTag)
		if err != nil {
			return "", err
		}
		if hi != 0 || lo > math.MaxInt32 {
			return "", errOverflow("string length does not fit")
		}
		l = int(lo)
	} else {
		n, ok := tag.ShortStringLen(t)
		if !ok {
			return "", errTypeMismatch("expected a string tag")
		}
		l = n
	}
	b, err := r.ReadN(l)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errInvalidUTF8()
	}
	return string(b), nil
}

// ---- Byte blobs ----

func EncodeBytes(w Writer, b []byte) {
	w.AppendByte(byte(tag.Binary))
	w.AppendBytes(varint.EncodeUint64(nil, uint64(len(b))))
	w.AppendBytes(b)
}

func DecodeBytes(r Reader) ([]byte, error) {
	t, err := ReadTag(r)
	if err != nil {
		return nil, err
	}
	if t != tag.Binary {
		return nil, errTypeMismatch("expected binary blob tag")
	}
	lenTag, err := ReadTag(r)
	if err != nil {
		return nil, err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return nil, err
	}
	if hi != 0 {
		return nil, errOverflow("binary blob length does not fit")
	}
	return r.ReadN(int(lo))
}

// ---- List/set/array length framing ----
//
// Lists, sets, and fixed-size arrays share one tag family (spec §4.1): a
// short form for length 0..=5 and a long form otherwise. Element encoding
// is left to the caller (the aggregate-framing or code-generator layer),
// so this package only frames the count.

// EncodeListHeader writes the tag for a list/set/array of length l.
func EncodeListHeader(w Writer, l int) {
	if l <= 5 {
		w.AppendByte(byte(tag.ShortListBase) + byte(l))
		return
	}
	w.AppendByte(byte(tag.LongList))
	w.AppendBytes(varint.EncodeUint64(nil, uint64(l)))
}

// DecodeListHeader reads a list/set/array length header and returns the
// element count.
func DecodeListHeader(r Reader) (int, error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	if n, ok := tag.ShortListLen(t); ok {
		return n, nil
	}
	if t != tag.LongList {
		return 0, errTypeMismatch("expected a list tag")
	}
	lenTag, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > math.MaxInt32 {
		return 0, errOverflow("list length does not fit")
	}
	return int(lo), nil
}

// ---- Tuples ----

func EncodeTupleHeader(w Writer, arity int) {
	w.AppendByte(byte(tag.Tuple))
	w.AppendBytes(varint.EncodeUint64(nil, uint64(arity)))
}

func DecodeTupleHeader(r Reader) (int, error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	if t != tag.Tuple {
		return 0, errTypeMismatch("expected tuple tag")
	}
	lenTag, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > math.MaxInt32 {
		return 0, errOverflow("tuple arity does not fit")
	}
	return int(lo), nil
}

// ---- Maps ----

func EncodeMapHeader(w Writer, count int) {
	w.AppendByte(byte(tag.Map))
	w.AppendBytes(varint.EncodeUint64(nil, uint64(count)))
}

func DecodeMapHeader(r Reader) (int, error) {
	t, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	if t != tag.Map {
		return 0, errTypeMismatch("expected map tag")
	}
	lenTag, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return 0, err
	}
	if hi != 0 || lo > math.MaxInt32 {
		return 0, errOverflow("map count does not fit")
	}
	return int(lo), nil
}

// ---- Optionals ----

// EncodeNone writes the none-tag.
func EncodeNone(w Writer) { w.AppendByte(byte(tag.None)) }

// EncodeSomeHeader writes the some-tag; the caller encodes the inner value
// immediately afterward.
func EncodeSomeHeader(w Writer) { w.AppendByte(byte(tag.Some)) }

// OptionalState reports what the next value's optional framing is, without
// consuming more than the leading tag when it is None or Some.
type OptionalState int

const (
	OptionalIsNone OptionalState = iota
	OptionalIsSome
	OptionalIsBare // widening: a bare T decoded where an optional T was expected
)

// PeekOptionalState inspects, without mutating anything beyond the cursor
// position needed to decide, whether the next value is none, an explicit
// some-wrapper, or a bare inner value being widened into an optional
// target. On OptionalIsNone it consumes the none-tag; on OptionalIsSome it
// consumes the some-tag so the caller can decode the inner value
// immediately; on OptionalIsBare it leaves the cursor at the start of the
// bare value.
func PeekOptionalState(r Reader) (OptionalState, error) {
	t, err := PeekTag(r)
	if err != nil {
		return 0, err
	}
	switch t {
	case tag.None:
		_, _ = r.ReadByte()
		return OptionalIsNone, nil
	case tag.Some:
		_, _ = r.ReadByte()
		return OptionalIsSome, nil
	default:
		return OptionalIsBare, nil
	}
}
