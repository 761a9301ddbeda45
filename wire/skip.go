package wire

import (
	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/varint"
)

// Skip consumes one entire encoded value starting at the next byte without
// knowing its schema (spec §4.5). encfmt's DecodeNamedMembers calls it to
// consume members whose identifier the target does not declare.
func Skip(r Reader, limits Limits) error {
	g := newDepthGuard(limits)
	return skip(r, g)
}

func skip(r Reader, g *depthGuard) error {
	if err := g.enter(); err != nil {
		return err
	}
	defer g.exit()

	t, err := ReadTag(r)
	if err != nil {
		return err
	}
	return skipTagged(r, g, t)
}

func skipTagged(r Reader, g *depthGuard, t tag.Tag) error {
	if _, ok := tag.DirectInt(t); ok {
		return nil
	}

	switch t {
	case tag.None:
		return nil
	case tag.Some:
		return skip(r, g)

	case tag.U8, tag.U16, tag.U32, tag.U64, tag.U128:
		n, _ := varint.FixedWidth(t)
		return r.Advance(n)

	case tag.Negate:
		return skip(r, g)

	case tag.F32:
		return r.Advance(4)
	case tag.F64:
		return r.Advance(8)

	case tag.LongString:
		return skipLenPrefixed(r, g)

	case tag.Binary:
		return skipLenPrefixed(r, g)

	case tag.LongList:
		return skipCountedValues(r, g)

	case tag.Tuple:
		return skipCountedValues(r, g)

	case tag.Map:
		n, err := readCountChecked(r, g)
		if err != nil {
			return err
		}
		for i := 0; i < 2*n; i++ {
			if err := skip(r, g); err != nil {
				return err
			}
		}
		return nil

	case tag.UnitStruct:
		return nil

	case tag.NamedStruct:
		return skipNamedMembers(r, g)

	case tag.PositionalStruct:
		return skipCountedValues(r, g)

	case tag.UnitEnum:
		return skipMemberID(r)

	case tag.NamedEnum:
		if err := skipMemberID(r); err != nil {
			return err
		}
		return skipNamedMembers(r, g)

	case tag.PositionalEnum:
		if err := skipMemberID(r); err != nil {
			return err
		}
		return skipCountedValues(r, g)

	case tag.CalendarDateTime, tag.NaiveCalendarDateTime:
		return r.Advance(12)
	case tag.CalendarDate:
		return r.Advance(8)
	case tag.CalendarTime:
		return r.Advance(8)
	case tag.Decimal:
		return r.Advance(20)
	case tag.Identifier128:
		return r.Advance(16)

	case tag.JSONNull:
		return nil
	case tag.JSONBool:
		return r.Advance(1)
	case tag.JSONNumber:
		kb, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch JSONNumberKind(kb) {
		case JSONNumberUnsigned, JSONNumberSigned, JSONNumberFloat:
			return skip(r, g)
		default:
			return errTypeMismatch("unknown JSON number discriminator while skipping")
		}
	case tag.JSONString:
		return skip(r, g)
	case tag.JSONArray:
		return skipCountedValues(r, g)
	case tag.JSONObject:
		n, err := readCountChecked(r, g)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := skip(r, g); err != nil { // key string
				return err
			}
			if err := skip(r, g); err != nil { // value
				return err
			}
		}
		return nil
	}

	if n, ok := tag.ShortStringLen(t); ok {
		return r.Advance(n)
	}
	if n, ok := tag.ShortListLen(t); ok {
		for i := 0; i < n; i++ {
			if err := skip(r, g); err != nil {
				return err
			}
		}
		return nil
	}
	return errInvalidTag("skip", byte(t))
}

// skipLenPrefixed skips a value whose payload is [len varint][len bytes],
// reached after the value's own type tag has already been consumed
// (LongString and Binary).
func skipLenPrefixed(r Reader, g *depthGuard) error {
	lenTag, err := ReadTag(r)
	if err != nil {
		return err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return err
	}
	if hi != 0 {
		return errOverflow("length does not fit while skipping")
	}
	if err := g.checkCount(int(lo)); err != nil {
		return err
	}
	return r.Advance(int(lo))
}

func readCountChecked(r Reader, g *depthGuard) (int, error) {
	lenTag, err := ReadTag(r)
	if err != nil {
		return 0, err
	}
	lo, hi, err := varint.DecodeUint(r, lenTag)
	if err != nil {
		return 0, err
	}
	if hi != 0 {
		return 0, errOverflow("count does not fit while skipping")
	}
	if err := g.checkCount(int(lo)); err != nil {
		return 0, err
	}
	return int(lo), nil
}

func skipCountedValues(r Reader, g *depthGuard) error {
	n, err := readCountChecked(r, g)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := skip(r, g); err != nil {
			return err
		}
	}
	return nil
}

func skipMemberID(r Reader) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	if b == 0xFF {
		return r.Advance(8)
	}
	return nil
}

// skipNamedMembers skips the member-id/value pairs of a named struct or
// named enum variant up to and including the 0x00 terminator.
func skipNamedMembers(r Reader, g *depthGuard) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b == tag.MemberTerminator {
			return nil
		}
		if b == 0xFF {
			if err := r.Advance(8); err != nil {
				return err
			}
		}
		if err := skip(r, g); err != nil {
			return err
		}
	}
}
