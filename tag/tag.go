// Package tag defines the closed set of wire tags shared by both the
// encode and pack formats. A tag is the leading byte of any encoded value;
// everything else in this module dispatches on it.
package tag

// Tag is the leading byte of an encoded value.
type Tag byte

// Sentinels and the small-integer direct range.
const (
	None  Tag = 1
	Some  Tag = 2
	Zero  Tag = 3 // integer 0 / false
	One   Tag = 4 // integer 1 / true
	Two   Tag = 5 // start of the direct small-integer range (2..=127)
	Max127 Tag = 130
)

// Extended integer widths and the negate marker.
const (
	U8     Tag = 131 // payload byte holds (value - 128)
	U16    Tag = 132
	U32    Tag = 133
	U64    Tag = 134
	U128   Tag = 135
	Negate Tag = 136
)

// Floating point.
const (
	F32 Tag = 137
	F64 Tag = 138
)

// Strings.
const (
	ShortStringBase Tag = 139 // + length, 0..=40
	ShortStringMax  Tag = 179
	LongString      Tag = 180
)

// Binary blob.
const Binary Tag = 181

// Struct flavors.
const (
	UnitStruct       Tag = 182
	NamedStruct      Tag = 183
	PositionalStruct Tag = 184
)

// Enum flavors.
const (
	UnitEnum       Tag = 185
	NamedEnum      Tag = 186
	PositionalEnum Tag = 187
)

// Lists, tuples, maps.
const (
	ShortListBase Tag = 188 // + length, 0..=5
	ShortListMax  Tag = 193
	LongList      Tag = 194
	Tuple         Tag = 195
	Map           Tag = 196
)

// Domain types.
const (
	CalendarDateTime Tag = 197
	CalendarDate     Tag = 198
	CalendarTime     Tag = 199
	Decimal          Tag = 200
	Identifier128    Tag = 201

	JSONNull   Tag = 202
	JSONBool   Tag = 203
	JSONNumber Tag = 204
	JSONString Tag = 205
	JSONArray  Tag = 206
	JSONObject Tag = 207

	NaiveCalendarDateTime Tag = 208
)

// Terminator byte for named-member aggregates (not a Tag value; it shares
// the member-identifier byte stream, not the value-tag byte stream).
const MemberTerminator byte = 0x00

// Container magic, prepended only by the convenience entry points.
var (
	EncodeMagic = [2]byte{0x5A, 0xA5}
	PackMagic   = [2]byte{0xDA, 0xDA}
)

// ShortStringLen returns the encoded length for a short-string tag and
// whether t is in fact a short-string tag.
func ShortStringLen(t Tag) (int, bool) {
	if t >= ShortStringBase && t <= ShortStringMax {
		return int(t - ShortStringBase), true
	}
	return 0, false
}

// ShortListLen returns the encoded length for a short-list tag and whether
// t is in fact a short-list tag.
func ShortListLen(t Tag) (int, bool) {
	if t >= ShortListBase && t <= ShortListMax {
		return int(t - ShortListBase), true
	}
	return 0, false
}

// DirectInt returns the direct-range integer value for a tag and whether t
// is in fact in the direct range (Zero..=Max127, i.e. integers 0..=127).
func DirectInt(t Tag) (uint64, bool) {
	if t >= Zero && t <= Max127 {
		return uint64(t - Zero), true
	}
	return 0, false
}
