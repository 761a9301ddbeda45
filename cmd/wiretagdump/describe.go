package main

import (
	"fmt"
	"strings"

	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/varint"
	"github.com/wiretag/wiretag/wire"
)

// describer walks an encoded value tag-by-tag and renders a human-readable
// tree, the same way the skip driver walks it to discard bytes. It exists
// only for wiretagdump's -info output and makes no claim to recover field
// names: without a schema, members print by position or by raw identifier.
type describer struct {
	r      wire.Reader
	g      *depthGuard
	indent int
}

// depthGuard is a local, error-free recursion counter. wire's own depthGuard
// is unexported, and wiretagdump has no Limits it needs to enforce beyond
// not looping forever on malformed input.
type depthGuard struct {
	depth, max int
}

func (g *depthGuard) enter() error {
	if g.depth >= g.max {
		return fmt.Errorf("dump: nesting exceeds %d levels, probably not valid wiretag data", g.max)
	}
	g.depth++
	return nil
}

func (g *depthGuard) exit() { g.depth-- }

func newDescriber(r wire.Reader) *describer {
	return &describer{r: r, g: &depthGuard{max: 256}}
}

func (d *describer) line(s string) string {
	return strings.Repeat("  ", d.indent) + s
}

// describeValue reads one tagged value and returns its rendered form.
func (d *describer) describeValue() (string, error) {
	if err := d.g.enter(); err != nil {
		return "", err
	}
	defer d.g.exit()

	t, err := wire.ReadTag(d.r)
	if err != nil {
		return "", err
	}
	return d.describeTagged(t)
}

func (d *describer) describeTagged(t tag.Tag) (string, error) {
	if v, ok := tag.DirectInt(t); ok {
		return fmt.Sprintf("uint(%d)", v), nil
	}

	switch t {
	case tag.Zero:
		return "bool(false)", nil
	case tag.One:
		return "bool(true)", nil
	case tag.None:
		return "none", nil
	case tag.Some:
		inner, err := d.describeValue()
		if err != nil {
			return "", err
		}
		return "some(" + inner + ")", nil

	case tag.U8, tag.U16, tag.U32, tag.U64, tag.U128:
		lo, hi, err := varint.DecodeUint(d.r, t)
		if err != nil {
			return "", err
		}
		if hi != 0 {
			return fmt.Sprintf("uint128(hi=%d,lo=%d)", hi, lo), nil
		}
		return fmt.Sprintf("uint(%d)", lo), nil

	case tag.Negate:
		t2, err := wire.ReadTag(d.r)
		if err != nil {
			return "", err
		}
		inner, err := d.describeTagged(t2)
		if err != nil {
			return "", err
		}
		return "negate(" + inner + ")", nil

	case tag.F32:
		v, err := wire.DecodeF32Widen(d.r)
		_ = v
		if err != nil {
			return "", err
		}
		return "f32", nil
	case tag.F64:
		v, err := wire.DecodeF64(d.r)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("f64(%v)", v), nil

	case tag.LongString:
		s, err := d.readLenPrefixedString()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("string(%q)", s), nil

	case tag.Binary:
		n, err := d.readCounted()
		if err != nil {
			return "", err
		}
		if err := d.r.Advance(n); err != nil {
			return "", err
		}
		return fmt.Sprintf("bytes(len=%d)", n), nil

	case tag.LongList:
		return d.describeSequence("list")

	case tag.Tuple:
		return d.describeSequence("tuple")

	case tag.Map:
		n, err := d.readCounted()
		if err != nil {
			return "", err
		}
		d.indent++
		var parts []string
		for i := 0; i < n; i++ {
			k, err := d.describeValue()
			if err != nil {
				return "", err
			}
			v, err := d.describeValue()
			if err != nil {
				return "", err
			}
			parts = append(parts, d.line(k+" => "+v))
		}
		d.indent--
		return "map[" + fmt.Sprint(n) + "]{\n" + strings.Join(parts, "\n") + "\n" + d.line("}"), nil

	case tag.UnitStruct:
		return "unit-struct", nil
	case tag.NamedStruct:
		return d.describeNamedMembers("named-struct")
	case tag.PositionalStruct:
		return d.describeSequence("positional-struct")

	case tag.UnitEnum:
		id, err := d.readMemberID()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("unit-enum(variant=%d)", id), nil
	case tag.NamedEnum:
		id, err := d.readMemberID()
		if err != nil {
			return "", err
		}
		body, err := d.describeNamedMembers("named-enum")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("named-enum(variant=%d) %s", id, body), nil
	case tag.PositionalEnum:
		id, err := d.readMemberID()
		if err != nil {
			return "", err
		}
		body, err := d.describeSequence("positional-enum")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("positional-enum(variant=%d) %s", id, body), nil

	case tag.CalendarDateTime:
		t, err := wire.DecodeCalendarDateTime(prependTag(d.r, tag.CalendarDateTime))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("calendar-date-time(%s)", t.Format("2006-01-02T15:04:05.999999999Z")), nil
	case tag.NaiveCalendarDateTime:
		t, err := wire.DecodeNaiveCalendarDateTime(prependTag(d.r, tag.NaiveCalendarDateTime))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("naive-date-time(%s)", t.Format("2006-01-02T15:04:05.999999999")), nil
	case tag.CalendarDate:
		if err := d.r.Advance(8); err != nil {
			return "", err
		}
		return "calendar-date", nil
	case tag.CalendarTime:
		if err := d.r.Advance(8); err != nil {
			return "", err
		}
		return "calendar-time", nil
	case tag.Decimal:
		if err := d.r.Advance(20); err != nil {
			return "", err
		}
		return "decimal", nil
	case tag.Identifier128:
		if err := d.r.Advance(16); err != nil {
			return "", err
		}
		return "identifier128", nil

	case tag.JSONNull:
		return "json(null)", nil
	case tag.JSONBool:
		b, err := d.r.ReadByte()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("json(bool=%v)", b != 0), nil
	case tag.JSONNumber:
		kb, err := d.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch wire.JSONNumberKind(kb) {
		case wire.JSONNumberFloat:
			if _, err := wire.DecodeF64(d.r); err != nil {
				return "", err
			}
			return "json(number,float)", nil
		default:
			t2, err := wire.ReadTag(d.r)
			if err != nil {
				return "", err
			}
			return d.describeTagged(t2)
		}
	case tag.JSONString:
		s, err := wire.DecodeString(d.r)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("json(string=%q)", s), nil
	case tag.JSONArray:
		return d.describeSequence("json-array")
	case tag.JSONObject:
		n, err := d.readCounted()
		if err != nil {
			return "", err
		}
		d.indent++
		var parts []string
		for i := 0; i < n; i++ {
			k, err := wire.DecodeString(d.r)
			if err != nil {
				return "", err
			}
			v, err := d.describeValue()
			if err != nil {
				return "", err
			}
			parts = append(parts, d.line(fmt.Sprintf("%q: %s", k, v)))
		}
		d.indent--
		return "json-object{\n" + strings.Join(parts, "\n") + "\n" + d.line("}"), nil
	}

	if n, ok := tag.ShortStringLen(t); ok {
		b, err := d.r.ReadN(n)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("string(%q)", string(b)), nil
	}
	if n, ok := tag.ShortListLen(t); ok {
		return d.describeKnownLengthSequence("list", n)
	}
	return "", fmt.Errorf("dump: unrecognized tag 0x%02x", byte(t))
}

func (d *describer) describeSequence(label string) (string, error) {
	n, err := d.readCounted()
	if err != nil {
		return "", err
	}
	return d.describeKnownLengthSequence(label, n)
}

func (d *describer) describeKnownLengthSequence(label string, n int) (string, error) {
	d.indent++
	var parts []string
	for i := 0; i < n; i++ {
		v, err := d.describeValue()
		if err != nil {
			return "", err
		}
		parts = append(parts, d.line(v))
	}
	d.indent--
	if n == 0 {
		return fmt.Sprintf("%s[0]{}", label), nil
	}
	return fmt.Sprintf("%s[%d]{\n%s\n%s}", label, n, strings.Join(parts, "\n"), d.line("")), nil
}

func (d *describer) describeNamedMembers(label string) (string, error) {
	d.indent++
	var parts []string
	for {
		id, done, err := d.readMemberIDOrTerminator()
		if err != nil {
			return "", err
		}
		if done {
			break
		}
		v, err := d.describeValue()
		if err != nil {
			return "", err
		}
		parts = append(parts, d.line(fmt.Sprintf("#%d: %s", id, v)))
	}
	d.indent--
	if len(parts) == 0 {
		return fmt.Sprintf("%s{}", label), nil
	}
	return fmt.Sprintf("%s{\n%s\n%s}", label, strings.Join(parts, "\n"), d.line("")), nil
}

func (d *describer) readMemberID() (uint64, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return uint64(b), nil
	}
	raw, err := d.r.ReadN(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v, nil
}

func (d *describer) readMemberIDOrTerminator() (uint64, bool, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, false, err
	}
	if b == tag.MemberTerminator {
		return 0, true, nil
	}
	if b != 0xFF {
		return uint64(b), false, nil
	}
	raw, err := d.r.ReadN(8)
	if err != nil {
		return 0, false, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v, false, nil
}

func (d *describer) readLenPrefixedString() (string, error) {
	n, err := d.readCounted()
	if err != nil {
		return "", err
	}
	b, err := d.r.ReadN(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *describer) readCounted() (int, error) {
	lenTag, err := wire.ReadTag(d.r)
	if err != nil {
		return 0, err
	}
	lo, hi, err := varint.DecodeUint(d.r, lenTag)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, fmt.Errorf("dump: length does not fit")
	}
	return int(lo), nil
}

// prependTag lets a few tag-prefixed domain decoders (which expect to read
// their own tag byte) be called after describeTagged has already consumed
// that byte.
func prependTag(r wire.Reader, t tag.Tag) wire.Reader {
	return &tagPrefixedReader{inner: r, pending: byte(t), have: true}
}

type tagPrefixedReader struct {
	inner   wire.Reader
	pending byte
	have    bool
}

func (p *tagPrefixedReader) ReadByte() (byte, error) {
	if p.have {
		p.have = false
		return p.pending, nil
	}
	return p.inner.ReadByte()
}

func (p *tagPrefixedReader) PeekByte() (byte, error) {
	if p.have {
		return p.pending, nil
	}
	return p.inner.PeekByte()
}

func (p *tagPrefixedReader) ReadN(n int) ([]byte, error) {
	if !p.have {
		return p.inner.ReadN(n)
	}
	if n == 0 {
		return nil, nil
	}
	p.have = false
	rest, err := p.inner.ReadN(n - 1)
	if err != nil {
		return nil, err
	}
	return append([]byte{p.pending}, rest...), nil
}

func (p *tagPrefixedReader) Advance(n int) error {
	if !p.have || n == 0 {
		return p.inner.Advance(n)
	}
	p.have = false
	return p.inner.Advance(n - 1)
}

func (p *tagPrefixedReader) Len() int {
	if p.have {
		return p.inner.Len() + 1
	}
	return p.inner.Len()
}
