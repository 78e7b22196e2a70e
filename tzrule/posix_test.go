package tzrule

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/grodin/jiff/internal/unixtime"
)

func TestPosixDayResolve(t *testing.T) {
	cases := []struct {
		name       string
		day        PosixDay
		year       int
		month, dom int
	}{
		{"J60 non-leap", PosixDay{Form: PosixJulianOne, Num: 60}, 2021, 3, 1},
		{"J60 leap", PosixDay{Form: PosixJulianOne, Num: 60}, 2020, 3, 1},
		{"zero-based 59 leap", PosixDay{Form: PosixJulianZero, Num: 59}, 2020, 2, 29},
		{"zero-based 59 non-leap", PosixDay{Form: PosixJulianZero, Num: 59}, 2021, 3, 1},
		{"second Sunday of March", PosixDay{Form: PosixWeekdayOfMonth, Month: 3, Week: 2, Weekday: 0}, 2015, 3, 8},
		{"first Sunday of November", PosixDay{Form: PosixWeekdayOfMonth, Month: 11, Week: 1, Weekday: 0}, 2015, 11, 1},
		{"week five means last, four Sundays", PosixDay{Form: PosixWeekdayOfMonth, Month: 3, Week: 5, Weekday: 0}, 2021, 3, 28},
		{"week five means last, five Sundays", PosixDay{Form: PosixWeekdayOfMonth, Month: 3, Week: 5, Weekday: 0}, 2020, 3, 29},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			month, dom := c.day.Resolve(c.year)
			if month != c.month || dom != c.dom {
				t.Errorf("Resolve(%d) = (%d, %d), want (%d, %d)", c.year, month, dom, c.month, c.dom)
			}
		})
	}
}

func TestPosixDayTimeCivilYearEnd(t *testing.T) {
	// The zero-based form allows day 365 even in non-leap years, where
	// it means January 1 of the following year. The evaluated instant
	// must land there, not wrap back to the start of the same year.
	dt := PosixDayTime{Date: PosixDay{Form: PosixJulianZero, Num: 365}, Second: 2 * 3600}
	if got, want := dt.Civil(2021), unixtime.FromDateTime(2022, 1, 1, 2, 0, 0); got != want {
		t.Errorf("Civil(2021) = %d, want %d", got, want)
	}
	// In a leap year day 365 is still December 31.
	if got, want := dt.Civil(2020), unixtime.FromDateTime(2020, 12, 31, 2, 0, 0); got != want {
		t.Errorf("Civil(2020) = %d, want %d", got, want)
	}
}

// newSydney builds the recurring rule for Australian eastern time:
// AEST-10AEDT,M10.1.0,M4.1.0/3. Daylight saving spans the year boundary.
func newSydney() *PosixTimeZone {
	return &PosixTimeZone{
		StdAbbr:   MustDesignation("AEST"),
		StdOffset: 10 * 3600,
		Dst: &PosixDst{
			Abbr:   MustDesignation("AEDT"),
			Offset: 11 * 3600,
			Rule: PosixRule{
				Start: PosixDayTime{Date: PosixDay{Form: PosixWeekdayOfMonth, Month: 10, Week: 1, Weekday: 0}, Second: 2 * 3600},
				End:   PosixDayTime{Date: PosixDay{Form: PosixWeekdayOfMonth, Month: 4, Week: 1, Weekday: 0}, Second: 3 * 3600},
			},
		},
	}
}

func TestPosixLookupSouthernHemisphere(t *testing.T) {
	tz := newSydney()
	aest := Resolved{Offset: 10 * 3600, DST: false, Abbr: "AEST"}
	aedt := Resolved{Offset: 11 * 3600, DST: true, Abbr: "AEDT"}
	cases := []struct {
		name string
		utc  int64
		want Resolved
	}{
		{"midsummer is January", unixtime.FromDateTime(2020, 1, 15, 0, 0, 0), aedt},
		{"midwinter is July", unixtime.FromDateTime(2020, 7, 15, 0, 0, 0), aest},
		// DST ends the first Sunday of April 2020 at 03:00 AEDT,
		// i.e. 2020-04-04 16:00 UTC.
		{"before April end", unixtime.FromDateTime(2020, 4, 4, 15, 59, 59), aedt},
		{"at April end", unixtime.FromDateTime(2020, 4, 4, 16, 0, 0), aest},
		// DST starts the first Sunday of October 2020 at 02:00 AEST,
		// i.e. 2020-10-03 16:00 UTC.
		{"before October start", unixtime.FromDateTime(2020, 10, 3, 15, 59, 59), aest},
		{"at October start", unixtime.FromDateTime(2020, 10, 3, 16, 0, 0), aedt},
		{"new year's day", unixtime.FromDateTime(2021, 1, 1, 0, 0, 0), aedt},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, tz.Lookup(c.utc)); diff != "" {
				t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPosixLookupCivil(t *testing.T) {
	tz := newSydney()
	aest := Resolved{Offset: 10 * 3600, DST: false, Abbr: "AEST"}
	aedt := Resolved{Offset: 11 * 3600, DST: true, Abbr: "AEDT"}
	cases := []struct {
		name  string
		local int64
		want  Civil
	}{
		{
			// October 2020 start: clocks skip 02:00 to 03:00 on the 4th.
			"inside spring gap",
			unixtime.FromDateTime(2020, 10, 4, 2, 30, 0),
			Civil{Kind: Gap, First: aest, Second: aedt},
		},
		{
			// April 2020 end: clocks repeat 02:00 through 03:00 on the 5th.
			"inside autumn fold",
			unixtime.FromDateTime(2020, 4, 5, 2, 30, 0),
			Civil{Kind: Fold, First: aedt, Second: aest},
		},
		{
			"january afternoon",
			unixtime.FromDateTime(2020, 1, 15, 15, 0, 0),
			Civil{Kind: Unambiguous, First: aedt},
		},
		{
			"july afternoon",
			unixtime.FromDateTime(2020, 7, 15, 15, 0, 0),
			Civil{Kind: Unambiguous, First: aest},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, tz.LookupCivil(c.local)); diff != "" {
				t.Errorf("LookupCivil mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPosixNoDst(t *testing.T) {
	tz := &PosixTimeZone{StdAbbr: MustDesignation("UTC")}
	want := Resolved{Offset: 0, DST: false, Abbr: "UTC"}
	if diff := cmp.Diff(want, tz.Lookup(0)); diff != "" {
		t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
	}
	got := tz.LookupCivil(unixtime.FromDateTime(2020, 10, 4, 2, 30, 0))
	if diff := cmp.Diff(Civil{Kind: Unambiguous, First: want}, got); diff != "" {
		t.Errorf("LookupCivil mismatch (-want +got):\n%s", diff)
	}
}
