// Command tzresolve answers "what offset applies" for a zone.
//
// A zone is named (-zone, loaded from the system zoneinfo database) or
// given as a TZif file (-file). Instants are resolved with -utc, civil
// wall clock times with -civil; the latter reports zero, one or two
// candidate offsets depending on whether the time falls in a gap, an
// unambiguous span or a fold. -transitions prints the classified
// transition table.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/grodin/jiff/internal/datemath"
	"github.com/grodin/jiff/internal/unixtime"
	"github.com/grodin/jiff/tzdb"
	"github.com/grodin/jiff/tzif"
	"github.com/grodin/jiff/tzrule"
)

var (
	zoneFlag        = flag.String("zone", "", "zone name, e.g. America/New_York")
	fileFlag        = flag.String("file", "", "TZif file to load instead of a named zone")
	utcFlag         = flag.String("utc", "", "UTC instant to resolve, e.g. 2015-03-08T07:30:00")
	civilFlag       = flag.String("civil", "", "civil wall clock time to resolve, e.g. 2015-03-08T02:30:00")
	transitionsFlag = flag.Bool("transitions", false, "print the classified transition table")
)

func main() {
	flag.Parse()

	rs, err := load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if name, ok := rs.Name(); ok {
		fmt.Println("Zone:", name)
	}
	fmt.Println("Version:", tzif.Version(rs.Version()))
	fmt.Printf("Checksum: 0x%08x\n", rs.Checksum())
	if posix, ok := rs.Posix(); ok {
		fmt.Printf("Fallback: %s%+d", posix.StdAbbr, -posix.StdOffset/3600)
		if posix.Dst != nil {
			fmt.Printf(" (dst %s)", posix.Dst.Abbr)
		}
		fmt.Println()
	}

	if *utcFlag != "" {
		r := rs.Lookup(mustParseSeconds(*utcFlag))
		fmt.Printf("UTC %s: offset=%s abbr=%s dst=%v\n", *utcFlag, offsetString(r.Offset), r.Abbr, r.DST)
	}
	if *civilFlag != "" {
		printCivil(*civilFlag, rs.LookupCivil(mustParseSeconds(*civilFlag)))
	}
	if *transitionsFlag {
		printTransitions(rs)
	}
}

func load() (*tzrule.RuleSet, error) {
	switch {
	case *zoneFlag != "" && *fileFlag != "":
		return nil, fmt.Errorf("-zone and -file are mutually exclusive")
	case *zoneFlag != "":
		return tzdb.Load(*zoneFlag)
	case *fileFlag != "":
		f, err := os.Open(*fileFlag)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return tzif.DecodeRuleSet(f, "")
	default:
		return nil, fmt.Errorf("usage: tzresolve -zone <name> | -file <tzif file> [-utc t] [-civil t] [-transitions]")
	}
}

func printCivil(input string, c tzrule.Civil) {
	switch c.Kind {
	case tzrule.Gap:
		fmt.Printf("civil %s: gap, no valid local time (before %s, after %s)\n",
			input, offsetString(c.First.Offset), offsetString(c.Second.Offset))
	case tzrule.Fold:
		fmt.Printf("civil %s: fold, two candidates: %s (%s) and %s (%s)\n",
			input, offsetString(c.First.Offset), c.First.Abbr, offsetString(c.Second.Offset), c.Second.Abbr)
	default:
		fmt.Printf("civil %s: offset=%s abbr=%s dst=%v\n",
			input, offsetString(c.First.Offset), c.First.Abbr, c.First.DST)
	}
}

func printTransitions(rs *tzrule.RuleSet) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"UTC", "Abbr", "Offset", "DST", "Kind", "Civil window"})
	for i := 0; i < rs.NumTransitions(); i++ {
		tr := rs.TransitionAt(i)
		info := rs.InfoAt(i)
		t := rs.Type(int(tr.TypeIndex))
		window := ""
		if info.Kind != tzrule.Unambiguous {
			window = fmt.Sprintf("[%s, %s)", civilString(info.CivilStart), civilString(info.CivilEnd))
		}
		tw.AppendRow(table.Row{
			civilString(tr.Timestamp), rs.Abbr(t), offsetString(t.Offset), t.IsDST, info.Kind, window,
		})
	}
	tw.Render()
}

// mustParseSeconds parses "2006-01-02T15:04:05" into a second count with
// no zone attached: Unix seconds for -utc inputs, local seconds for
// -civil inputs.
func mustParseSeconds(s string) int64 {
	sec, err := parseSeconds(s)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return sec
}

func parseSeconds(s string) (int64, error) {
	var year, month, day, hour, minute, second int
	if _, err := fmt.Sscanf(s, "%d-%d-%dT%d:%d:%d", &year, &month, &day, &hour, &minute, &second); err != nil {
		return 0, fmt.Errorf("invalid time %q: %v", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > datemath.DaysInMonth(year, month) ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time %q: field out of range", s)
	}
	return unixtime.FromDateTime(year, month, day, hour, minute, second), nil
}

func civilString(sec int64) string {
	y, mo, d, h, mi, s := unixtime.ToDateTime(sec)
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", y, mo, d, h, mi, s)
}

func offsetString(off int32) string {
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, off/3600, off/60%60, off%60)
}
