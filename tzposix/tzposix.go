// Package tzposix parses POSIX TZ descriptor strings such as
// "EST5EDT,M3.2.0,M11.1.0" into the rule model of the tzrule package.
//
// The grammar is the expanded form of the TZ environment variable from
// the "Base Definitions" volume of POSIX:
//
//	std offset [dst [offset] [, rule]]
//	rule = date[/time] , date[/time]
//	date = Jn | n | Mm.w.d
//
// plus the TZ string extensions of RFC 8536 Section 3.3.1 that TZif
// version 3 files may use: <...> quoted alphanumeric designations and
// transition times in the range -167 to 167 hours.
//
// This package is a producer for the tzrule core: it either hands over a
// value already satisfying the model's invariants or reports a parse
// error, and the core never re-validates.
package tzposix

import (
	"fmt"
	"strings"

	"github.com/grodin/jiff/tzrule"
)

// ParseError describes where and why a descriptor failed to parse.
type ParseError struct {
	// Input is the full descriptor string.
	Input string
	// Pos is the byte offset at which parsing failed.
	Pos int
	// Msg describes the expectation that was not met.
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: at offset %d: %s", e.Input, e.Pos, e.Msg)
}

// Parse parses a POSIX TZ descriptor.
//
// The returned offsets follow the tzrule convention of signed seconds
// east of UTC; the raw descriptor fields, which count positive as west,
// are negated on the way in. "EST5" therefore yields -18000.
//
// When a DST designation is given without an explicit offset, the offset
// defaults to one hour ahead of standard time. When it is given without a
// rule, the rule defaults to the common US one, M3.2.0,M11.1.0, which is
// what zoneinfo readers conventionally assume.
func Parse(s string) (*tzrule.PosixTimeZone, error) {
	p := &parser{input: s}

	stdAbbr, err := p.abbreviation()
	if err != nil {
		return nil, err
	}
	stdOffset, err := p.offset(false)
	if err != nil {
		return nil, err
	}
	tz := &tzrule.PosixTimeZone{StdAbbr: stdAbbr, StdOffset: stdOffset}
	if p.done() {
		return tz, nil
	}

	if p.peek() != ',' {
		dstAbbr, err := p.abbreviation()
		if err != nil {
			return nil, err
		}
		dstOffset := stdOffset + 3600
		if !p.done() && p.peek() != ',' {
			dstOffset, err = p.offset(false)
			if err != nil {
				return nil, err
			}
		}
		tz.Dst = &tzrule.PosixDst{Abbr: dstAbbr, Offset: dstOffset, Rule: usRule}
	}
	if p.done() {
		return tz, nil
	}
	if tz.Dst == nil {
		return nil, p.errorf("transition rule without dst designation")
	}

	if err := p.expect(','); err != nil {
		return nil, err
	}
	start, err := p.dayTime()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	end, err := p.dayTime()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.errorf("trailing data")
	}
	tz.Dst.Rule = tzrule.PosixRule{Start: start, End: end}
	return tz, nil
}

// usRule is the rule assumed when a descriptor names a DST designation
// but no rule: second Sunday in March to first Sunday in November, both
// at 02:00.
var usRule = tzrule.PosixRule{
	Start: tzrule.PosixDayTime{
		Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 3, Week: 2, Weekday: 0},
		Second: 2 * 3600,
	},
	End: tzrule.PosixDayTime{
		Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 11, Week: 1, Weekday: 0},
		Second: 2 * 3600,
	},
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.done() || p.peek() != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

// abbreviation parses a designation: either at least three alphabetic
// characters, or an alphanumeric string (optionally signed) in angle
// brackets per the V3 extension.
func (p *parser) abbreviation() (tzrule.Designation, error) {
	if !p.done() && p.peek() == '<' {
		return p.quotedAbbreviation()
	}
	start := p.pos
	for !p.done() && isAlpha(p.peek()) {
		p.pos++
	}
	s := p.input[start:p.pos]
	if len(s) < 3 {
		p.pos = start
		return tzrule.Designation{}, p.errorf("designation must have at least three characters")
	}
	d, ok := tzrule.NewDesignation(s)
	if !ok {
		p.pos = start
		return tzrule.Designation{}, p.errorf("designation %q exceeds %d bytes", s, tzrule.DesignationCap)
	}
	return d, nil
}

func (p *parser) quotedAbbreviation() (tzrule.Designation, error) {
	start := p.pos
	p.pos++ // consume '<'
	for !p.done() && p.peek() != '>' {
		if c := p.peek(); !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' {
			return tzrule.Designation{}, p.errorf("invalid character %q in quoted designation", string(c))
		}
		p.pos++
	}
	if p.done() {
		p.pos = start
		return tzrule.Designation{}, p.errorf("unterminated quoted designation")
	}
	s := p.input[start+1 : p.pos]
	p.pos++ // consume '>'
	if len(s) < 3 {
		return tzrule.Designation{}, p.errorf("designation must have at least three characters")
	}
	d, ok := tzrule.NewDesignation(s)
	if !ok {
		return tzrule.Designation{}, p.errorf("designation %q exceeds %d bytes", s, tzrule.DesignationCap)
	}
	return d, nil
}

// offset parses "[+|-]hh[:mm[:ss]]" and returns signed seconds east of
// UTC, negating the raw west-positive value. With extended set, hours up
// to 167 are allowed, for transition times; otherwise 24.
func (p *parser) offset(extended bool) (int32, error) {
	sign := int32(1)
	if !p.done() && (p.peek() == '+' || p.peek() == '-') {
		if p.peek() == '-' {
			sign = -1
		}
		p.pos++
	}
	maxHours := 24
	if extended {
		maxHours = 167
	}
	hours, err := p.number(maxHours)
	if err != nil {
		return 0, err
	}
	minutes, seconds := 0, 0
	if !p.done() && p.peek() == ':' {
		p.pos++
		if minutes, err = p.number(59); err != nil {
			return 0, err
		}
		if !p.done() && p.peek() == ':' {
			p.pos++
			if seconds, err = p.number(59); err != nil {
				return 0, err
			}
		}
	}
	total := sign * int32(hours*3600+minutes*60+seconds)
	if extended {
		// Transition times are not offsets; keep the descriptor's sign.
		return total, nil
	}
	return -total, nil
}

// dayTime parses "date[/time]". The time defaults to 02:00 local.
func (p *parser) dayTime() (tzrule.PosixDayTime, error) {
	date, err := p.day()
	if err != nil {
		return tzrule.PosixDayTime{}, err
	}
	second := 2 * 3600
	if !p.done() && p.peek() == '/' {
		p.pos++
		t, err := p.offset(true)
		if err != nil {
			return tzrule.PosixDayTime{}, err
		}
		second = int(t)
	}
	return tzrule.PosixDayTime{Date: date, Second: second}, nil
}

func (p *parser) day() (tzrule.PosixDay, error) {
	if p.done() {
		return tzrule.PosixDay{}, p.errorf("expected transition date")
	}
	switch p.peek() {
	case 'J':
		p.pos++
		n, err := p.number(365)
		if err != nil {
			return tzrule.PosixDay{}, err
		}
		if n < 1 {
			return tzrule.PosixDay{}, p.errorf("Julian day must be in range 1..365")
		}
		return tzrule.PosixDay{Form: tzrule.PosixJulianOne, Num: n}, nil
	case 'M':
		p.pos++
		month, err := p.number(12)
		if err != nil {
			return tzrule.PosixDay{}, err
		}
		if month < 1 {
			return tzrule.PosixDay{}, p.errorf("month must be in range 1..12")
		}
		if err := p.expect('.'); err != nil {
			return tzrule.PosixDay{}, err
		}
		week, err := p.number(5)
		if err != nil {
			return tzrule.PosixDay{}, err
		}
		if week < 1 {
			return tzrule.PosixDay{}, p.errorf("week must be in range 1..5")
		}
		if err := p.expect('.'); err != nil {
			return tzrule.PosixDay{}, err
		}
		weekday, err := p.number(6)
		if err != nil {
			return tzrule.PosixDay{}, err
		}
		return tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: month, Week: week, Weekday: weekday}, nil
	default:
		n, err := p.number(365)
		if err != nil {
			return tzrule.PosixDay{}, err
		}
		return tzrule.PosixDay{Form: tzrule.PosixJulianZero, Num: n}, nil
	}
}

// number parses an unsigned decimal in the range 0..max.
func (p *parser) number(max int) (int, error) {
	start := p.pos
	n := 0
	for !p.done() && isDigit(p.peek()) {
		n = n*10 + int(p.peek()-'0')
		if n > max {
			return 0, p.errorf("number exceeds %d", max)
		}
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected number")
	}
	return n, nil
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// String renders a PosixTimeZone back into descriptor form. It is the
// inverse of Parse up to defaulted fields, which are always written out.
func String(tz *tzrule.PosixTimeZone) string {
	var b strings.Builder
	writeAbbr(&b, tz.StdAbbr.String())
	writeOffset(&b, tz.StdOffset)
	if tz.Dst == nil {
		return b.String()
	}
	writeAbbr(&b, tz.Dst.Abbr.String())
	writeOffset(&b, tz.Dst.Offset)
	b.WriteByte(',')
	writeDayTime(&b, tz.Dst.Rule.Start)
	b.WriteByte(',')
	writeDayTime(&b, tz.Dst.Rule.End)
	return b.String()
}

func writeAbbr(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) {
			fmt.Fprintf(b, "<%s>", s)
			return
		}
	}
	b.WriteString(s)
}

func writeOffset(b *strings.Builder, east int32) {
	west := -east
	if west < 0 {
		b.WriteByte('-')
		west = -west
	}
	h, m, s := west/3600, west/60%60, west%60
	fmt.Fprintf(b, "%d", h)
	if m != 0 || s != 0 {
		fmt.Fprintf(b, ":%02d", m)
	}
	if s != 0 {
		fmt.Fprintf(b, ":%02d", s)
	}
}

func writeDayTime(b *strings.Builder, dt tzrule.PosixDayTime) {
	switch dt.Date.Form {
	case tzrule.PosixJulianOne:
		fmt.Fprintf(b, "J%d", dt.Date.Num)
	case tzrule.PosixJulianZero:
		fmt.Fprintf(b, "%d", dt.Date.Num)
	case tzrule.PosixWeekdayOfMonth:
		fmt.Fprintf(b, "M%d.%d.%d", dt.Date.Month, dt.Date.Week, dt.Date.Weekday)
	}
	if dt.Second != 2*3600 {
		sec := dt.Second
		if sec < 0 {
			b.WriteByte('/')
			b.WriteByte('-')
			sec = -sec
		} else {
			b.WriteByte('/')
		}
		h, m, s := sec/3600, sec/60%60, sec%60
		fmt.Fprintf(b, "%d", h)
		if m != 0 || s != 0 {
			fmt.Fprintf(b, ":%02d", m)
		}
		if s != 0 {
			fmt.Fprintf(b, ":%02d", s)
		}
	}
}
