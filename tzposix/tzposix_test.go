package tzposix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grodin/jiff/tzrule"
)

func marchSecondSunday(second int) tzrule.PosixDayTime {
	return tzrule.PosixDayTime{
		Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 3, Week: 2, Weekday: 0},
		Second: second,
	}
}

func novemberFirstSunday(second int) tzrule.PosixDayTime {
	return tzrule.PosixDayTime{
		Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 11, Week: 1, Weekday: 0},
		Second: second,
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want *tzrule.PosixTimeZone
	}{
		{
			"EST5EDT,M3.2.0,M11.1.0",
			&tzrule.PosixTimeZone{
				StdAbbr:   tzrule.MustDesignation("EST"),
				StdOffset: -5 * 3600,
				Dst: &tzrule.PosixDst{
					Abbr:   tzrule.MustDesignation("EDT"),
					Offset: -4 * 3600,
					Rule:   tzrule.PosixRule{Start: marchSecondSunday(7200), End: novemberFirstSunday(7200)},
				},
			},
		},
		{
			"EST5",
			&tzrule.PosixTimeZone{StdAbbr: tzrule.MustDesignation("EST"), StdOffset: -5 * 3600},
		},
		{
			"UTC0",
			&tzrule.PosixTimeZone{StdAbbr: tzrule.MustDesignation("UTC")},
		},
		{
			// DST offset defaults to one hour ahead, the rule to the US one.
			"EST5EDT",
			&tzrule.PosixTimeZone{
				StdAbbr:   tzrule.MustDesignation("EST"),
				StdOffset: -5 * 3600,
				Dst: &tzrule.PosixDst{
					Abbr:   tzrule.MustDesignation("EDT"),
					Offset: -4 * 3600,
					Rule:   tzrule.PosixRule{Start: marchSecondSunday(7200), End: novemberFirstSunday(7200)},
				},
			},
		},
		{
			// Quoted designations may carry signs and digits.
			"<-03>3",
			&tzrule.PosixTimeZone{StdAbbr: tzrule.MustDesignation("-03"), StdOffset: -3 * 3600},
		},
		{
			// East of Greenwich the raw offset is negative.
			"AEST-10AEDT,M10.1.0,M4.1.0/3",
			&tzrule.PosixTimeZone{
				StdAbbr:   tzrule.MustDesignation("AEST"),
				StdOffset: 10 * 3600,
				Dst: &tzrule.PosixDst{
					Abbr:   tzrule.MustDesignation("AEDT"),
					Offset: 11 * 3600,
					Rule: tzrule.PosixRule{
						Start: tzrule.PosixDayTime{
							Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 10, Week: 1, Weekday: 0},
							Second: 7200,
						},
						End: tzrule.PosixDayTime{
							Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 4, Week: 1, Weekday: 0},
							Second: 3 * 3600,
						},
					},
				},
			},
		},
		{
			// Transition times past 24 hours are a V3 extension; Israel's
			// rule fires at 26:00, i.e. 02:00 two days after the Thursday.
			"IST-2IDT,M3.4.4/26,M10.5.0",
			&tzrule.PosixTimeZone{
				StdAbbr:   tzrule.MustDesignation("IST"),
				StdOffset: 2 * 3600,
				Dst: &tzrule.PosixDst{
					Abbr:   tzrule.MustDesignation("IDT"),
					Offset: 3 * 3600,
					Rule: tzrule.PosixRule{
						Start: tzrule.PosixDayTime{
							Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 3, Week: 4, Weekday: 4},
							Second: 26 * 3600,
						},
						End: tzrule.PosixDayTime{
							Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 10, Week: 5, Weekday: 0},
							Second: 7200,
						},
					},
				},
			},
		},
		{
			// Negative transition times.
			"WGT3WGST,M3.5.0/-2,M10.5.0/-1",
			&tzrule.PosixTimeZone{
				StdAbbr:   tzrule.MustDesignation("WGT"),
				StdOffset: -3 * 3600,
				Dst: &tzrule.PosixDst{
					Abbr:   tzrule.MustDesignation("WGST"),
					Offset: -2 * 3600,
					Rule: tzrule.PosixRule{
						Start: tzrule.PosixDayTime{
							Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 3, Week: 5, Weekday: 0},
							Second: -2 * 3600,
						},
						End: tzrule.PosixDayTime{
							Date:   tzrule.PosixDay{Form: tzrule.PosixWeekdayOfMonth, Month: 10, Week: 5, Weekday: 0},
							Second: -3600,
						},
					},
				},
			},
		},
		{
			"EST5:30:15",
			&tzrule.PosixTimeZone{StdAbbr: tzrule.MustDesignation("EST"), StdOffset: -(5*3600 + 30*60 + 15)},
		},
		{
			"EST5EDT,J60,280",
			&tzrule.PosixTimeZone{
				StdAbbr:   tzrule.MustDesignation("EST"),
				StdOffset: -5 * 3600,
				Dst: &tzrule.PosixDst{
					Abbr:   tzrule.MustDesignation("EDT"),
					Offset: -4 * 3600,
					Rule: tzrule.PosixRule{
						Start: tzrule.PosixDayTime{Date: tzrule.PosixDay{Form: tzrule.PosixJulianOne, Num: 60}, Second: 7200},
						End:   tzrule.PosixDayTime{Date: tzrule.PosixDay{Form: tzrule.PosixJulianZero, Num: 280}, Second: 7200},
					},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := Parse(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short designation", "ES5"},
		{"missing offset", "EST"},
		{"hour out of range", "EST25"},
		{"minute out of range", "EST5:60"},
		{"rule without dst", "EST5,M3.2.0,M11.1.0"},
		{"missing end date", "EST5EDT,M3.2.0"},
		{"unterminated quote", "<EST"},
		{"bad quoted character", "<E T>5"},
		{"month out of range", "EST5EDT,M13.1.0,M11.1.0"},
		{"week out of range", "EST5EDT,M3.0.0,M11.1.0"},
		{"weekday out of range", "EST5EDT,M3.2.7,M11.1.0"},
		{"julian day zero", "EST5EDT,J0,M11.1.0"},
		{"julian day out of range", "EST5EDT,J366,M11.1.0"},
		{"trailing data", "EST5EDT,M3.2.0,M11.1.0x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.in)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, c.in, perr.Input)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	descriptors := []string{
		"EST5EDT,M3.2.0,M11.1.0",
		"EST5",
		"UTC0",
		"EST5EDT",
		"<-03>3",
		"AEST-10AEDT,M10.1.0,M4.1.0/3",
		"IST-2IDT,M3.4.4/26,M10.5.0",
		"WGT3WGST,M3.5.0/-2,M10.5.0/-1",
		"EST5:30:15",
		"EST5EDT,J60,280",
	}
	for _, in := range descriptors {
		t.Run(in, func(t *testing.T) {
			tz, err := Parse(in)
			require.NoError(t, err)
			rendered := String(tz)
			back, err := Parse(rendered)
			require.NoError(t, err, "re-parsing %q", rendered)
			assert.Equal(t, tz, back)
		})
	}
}
