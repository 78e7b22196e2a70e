package tzrule

import (
	"fmt"
	"sort"

	"github.com/grodin/jiff/internal/datemath"
	"github.com/grodin/jiff/internal/unixtime"
)

// PosixDayForm selects the calendar rule form of a PosixDay.
type PosixDayForm uint8

const (
	// PosixJulianOne is the "Jn" form: day n of the year counting
	// 1 = January 1, with February 29 never counted. Day 60 is always
	// March 1, leap year or not. Valid range 1..365.
	PosixJulianOne PosixDayForm = iota
	// PosixJulianZero is the "n" form: day n of the year counting
	// 0 = January 1, with the leap day counted normally. Valid range
	// 0..365.
	PosixJulianZero
	// PosixWeekdayOfMonth is the "Mm.w.d" form: the w-th occurrence of
	// weekday d in month m. A week of 5 means the last occurrence, even
	// when the month only has four.
	PosixWeekdayOfMonth
)

// PosixDay is the calendar half of a recurring rule boundary: a day of
// the year, expressed in one of the three POSIX forms.
type PosixDay struct {
	Form PosixDayForm
	// Num is the day of year for the Julian forms.
	Num int
	// Month (1..12), Week (1..5) and Weekday (0..6, 0 = Sunday) apply to
	// the PosixWeekdayOfMonth form.
	Month   int
	Week    int
	Weekday int
}

// Resolve computes the concrete calendar date this rule names in the
// given year.
func (d PosixDay) Resolve(year int) (month, day int) {
	switch d.Form {
	case PosixJulianOne:
		return datemath.JulianOneToDate(year, d.Num)
	case PosixJulianZero:
		return datemath.YearDayToDate(year, d.Num)
	case PosixWeekdayOfMonth:
		if d.Week == 5 {
			return d.Month, datemath.LastWeekdayOfMonth(year, d.Month, d.Weekday)
		}
		return d.Month, datemath.NthWeekdayOfMonth(year, d.Month, d.Week, d.Weekday)
	}
	panic(fmt.Sprintf("tzrule: invalid PosixDayForm: %d", d.Form))
}

// PosixDayTime is one boundary of a recurring rule: a calendar rule plus
// the transition time as seconds past local midnight. The seconds may be
// negative or exceed 24 hours; TZ string extensions permit -167h..167h.
type PosixDayTime struct {
	Date PosixDay
	// Second is the transition time in seconds past 00:00 local time,
	// interpreted in the offset that is in effect just before the
	// transition.
	Second int
}

// Civil evaluates the boundary for a year and returns the local instant,
// in local seconds, at which the transition occurs.
func (dt PosixDayTime) Civil(year int) int64 {
	month, day := dt.Date.Resolve(year)
	return unixtime.FromDateTime(year, month, day, 0, 0, dt.Second)
}

// PosixRule is a recurring annual DST rule: the boundary where daylight
// saving starts and the boundary where it ends. "Start" and "end" name
// the DST interval, not chronological order; southern hemisphere zones
// start DST late in the year and end it early in the next.
type PosixRule struct {
	Start PosixDayTime
	End   PosixDayTime
}

// PosixDst is the daylight saving half of a POSIX time zone.
type PosixDst struct {
	Abbr Designation
	// Offset is the DST offset in signed seconds east of UTC.
	Offset int32
	Rule   PosixRule
}

// PosixTimeZone is a compact recurring description of a zone: a standard
// offset and, optionally, a DST offset with the annual rule switching
// between the two. It extrapolates a transition table past its last
// entry, and is the sole source of offsets for zones without a table.
//
// Offsets are stored in signed seconds east of UTC. Parsers of the raw
// descriptor grammar, where positive means west, negate the field on the
// way in; see the tzposix package.
type PosixTimeZone struct {
	StdAbbr Designation
	// StdOffset is the standard offset in signed seconds east of UTC.
	StdOffset int32
	// Dst is nil when the zone never observes daylight saving time.
	Dst *PosixDst
}

// posixTransition is one concrete evaluated transition of a recurring
// rule: an instant plus the types on either side of it.
type posixTransition struct {
	utc        int64
	prev, next Resolved
}

func (tz *PosixTimeZone) std() Resolved {
	return Resolved{Offset: tz.StdOffset, DST: false, Abbr: tz.StdAbbr.String()}
}

func (tz *PosixTimeZone) dst() Resolved {
	return Resolved{Offset: tz.Dst.Offset, DST: true, Abbr: tz.Dst.Abbr.String()}
}

// transitions evaluates the recurring rule for every year in [from, to]
// and returns the concrete transitions in chronological order. The rule's
// start boundary is interpreted in standard time and its end boundary in
// DST, per POSIX: each boundary's time field is wall clock time under the
// offset in effect just before the transition.
func (tz *PosixTimeZone) transitions(from, to int) []posixTransition {
	std, dst := tz.std(), tz.dst()
	var trs []posixTransition
	for y := from; y <= to; y++ {
		trs = append(trs,
			posixTransition{
				utc:  tz.Dst.Rule.Start.Civil(y) - int64(tz.StdOffset),
				prev: std,
				next: dst,
			},
			posixTransition{
				utc:  tz.Dst.Rule.End.Civil(y) - int64(tz.Dst.Offset),
				prev: dst,
				next: std,
			},
		)
	}
	// Evaluated instants are ordered by actual chronology, not by the
	// start/end field order, so that rules spanning the year boundary
	// resolve correctly.
	sort.Slice(trs, func(i, j int) bool {
		return trs[i].utc < trs[j].utc
	})
	return trs
}

// Lookup resolves the offset in effect at the given Unix second.
func (tz *PosixTimeZone) Lookup(utc int64) Resolved {
	if tz.Dst == nil {
		return tz.std()
	}
	year, _, _, _, _, _ := unixtime.ToDateTime(utc)
	trs := tz.transitions(year-1, year+1)
	ret := trs[0].prev
	for _, tr := range trs {
		if tr.utc > utc {
			break
		}
		ret = tr.next
	}
	return ret
}

// LookupCivil resolves a civil instant, given in local seconds, against
// the recurring rule. Inside a gap window it returns zero candidates,
// inside a fold window two, otherwise one.
func (tz *PosixTimeZone) LookupCivil(local int64) Civil {
	if tz.Dst == nil {
		return Civil{Kind: Unambiguous, First: tz.std()}
	}
	year, _, _, _, _, _ := unixtime.ToDateTime(local)
	trs := tz.transitions(year-1, year+1)
	ret := Civil{Kind: Unambiguous, First: trs[0].prev}
	for _, tr := range trs {
		kind, start, end := Classify(tr.prev.Offset, tr.next.Offset, tr.utc)
		if local < start {
			break
		}
		if kind != Unambiguous && local < end {
			return Civil{Kind: kind, First: tr.prev, Second: tr.next}
		}
		ret = Civil{Kind: Unambiguous, First: tr.next}
	}
	return ret
}
