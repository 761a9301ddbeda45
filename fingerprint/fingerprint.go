package fingerprint

import "strings"

// MemberID derives the default 64-bit member/variant identifier for name,
// per spec §4.4: CRC-64/ECMA of the UTF-8 bytes, reduced to a nonzero
// value (if the hash is exactly zero it is replaced by 1, since identifier
// 0 is reserved as the end-of-members terminator). A `rename` attribute at
// the call site simply changes which string is passed in here; an explicit
// `id = N` attribute bypasses this function entirely.
func MemberID(name string) uint64 {
	h := Sum64([]byte(name))
	if h == 0 {
		return 1
	}
	return h
}

// AggregateKind names the two aggregate kinds (struct or enum) — the second
// segment of a structural fingerprint's canonical description string.
type AggregateKind string

const (
	KindStruct AggregateKind = "struct"
	KindEnum   AggregateKind = "enum"
)

// MemberShape names whether an aggregate's members are unit (none),
// named, or positional (unnamed) — the third segment of the canonical
// description string.
type MemberShape string

const (
	ShapeUnit      MemberShape = "unit"
	ShapeNamed     MemberShape = "named"
	ShapePositional MemberShape = "unnamed"
)

// Member is one entry of an aggregate's structural description: its
// declared name and the name of its type, used only for the pack-format
// fingerprint (spec §4.4). Positional members still carry a name here —
// callers conventionally use the field's declared name even though it is
// never written to the positional wire form.
type Member struct {
	Name     string
	TypeName string
}

// Fingerprint computes the pack-format structural fingerprint for an
// aggregate: CRC-64/ECMA of the canonical description string
// "type:<Name>|<struct|enum>|<named|unnamed|unit>|<member1-name>:<member1-type-name>|..."
// (spec §3, §4.4).
func Fingerprint(name string, kind AggregateKind, shape MemberShape, members []Member) uint64 {
	var b strings.Builder
	b.WriteString("type:")
	b.WriteString(name)
	b.WriteByte('|')
	b.WriteString(string(kind))
	b.WriteByte('|')
	b.WriteString(string(shape))
	for _, m := range members {
		b.WriteByte('|')
		b.WriteString(m.Name)
		b.WriteByte(':')
		b.WriteString(m.TypeName)
	}
	return Sum64([]byte(b.String()))
}
