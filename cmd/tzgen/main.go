// Command tzgen embeds compiled time zone data in Go source.
//
// It loads zones from the system zoneinfo database (or explicit TZif
// files), converts them to the tzrule model and writes a Go file of
// package-level rule sets. The emitted data needs no decoding and no
// file system at run time; it is the static counterpart of loading a
// zone through tzdb.
//
// Usage:
//
//	tzgen -config tzgen.yaml
//
// The configuration file looks like:
//
//	package: tzembed
//	output: tzembed.go
//	zones:
//	  - America/New_York
//	  - UTC
//	trim:
//	  from: 2015
//	  to: 2023
//
// When trim is given, transitions outside [from-01-01, to-01-01) are
// dropped, except for the latest transition at or before the window
// start, which establishes the offset in effect when the window opens.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/grodin/jiff/internal/unixtime"
	"github.com/grodin/jiff/tzdb"
	"github.com/grodin/jiff/tzposix"
	"github.com/grodin/jiff/tzrule"
)

var configFlag = flag.String("config", "tzgen.yaml", "configuration file")

type config struct {
	Package string   `yaml:"package"`
	Output  string   `yaml:"output"`
	Zones   []string `yaml:"zones"`
	Trim    *struct {
		From int `yaml:"from"`
		To   int `yaml:"to"`
	} `yaml:"trim"`
}

func main() {
	flag.Parse()

	raw, err := os.ReadFile(*configFlag)
	if err != nil {
		fmt.Println("reading config:", err)
		os.Exit(1)
	}
	var cfg config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		fmt.Println("parsing config:", err)
		os.Exit(1)
	}
	if cfg.Package == "" || cfg.Output == "" || len(cfg.Zones) == 0 {
		fmt.Println("config must set package, output and at least one zone")
		os.Exit(1)
	}

	var buf bytes.Buffer
	writePreamble(&buf, cfg)
	for _, name := range cfg.Zones {
		rs, err := tzdb.Load(name)
		if err != nil {
			fmt.Println("loading zone:", err)
			os.Exit(1)
		}
		writeZone(&buf, cfg, rs)
	}

	if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
		fmt.Println("writing output:", err)
		os.Exit(1)
	}
}

func writePreamble(b *bytes.Buffer, cfg config) {
	fmt.Fprintf(b, "// Code generated by tzgen. DO NOT EDIT.\n")
	fmt.Fprintf(b, "//\n// Zones: %s\n", strings.Join(cfg.Zones, ", "))
	if cfg.Trim != nil {
		fmt.Fprintf(b, "// Transitions trimmed to [%d-01-01, %d-01-01).\n", cfg.Trim.From, cfg.Trim.To)
	}
	fmt.Fprintf(b, "\npackage %s\n\n", cfg.Package)
	fmt.Fprintf(b, "import (\n")
	fmt.Fprintf(b, "\t\"github.com/grodin/jiff/tzposix\"\n")
	fmt.Fprintf(b, "\t\"github.com/grodin/jiff/tzrule\"\n")
	fmt.Fprintf(b, ")\n\n")
	fmt.Fprintf(b, "func mustParse(s string) *tzrule.PosixTimeZone {\n")
	fmt.Fprintf(b, "\ttz, err := tzposix.Parse(s)\n")
	fmt.Fprintf(b, "\tif err != nil {\n\t\tpanic(err)\n\t}\n")
	fmt.Fprintf(b, "\treturn tz\n}\n")
}

func writeZone(b *bytes.Buffer, cfg config, rs *tzrule.RuleSet) {
	name, _ := rs.Name()
	fmt.Fprintf(b, "\n// %s holds the rules of the %s zone.\n", identifier(name), name)
	fmt.Fprintf(b, "var %s = tzrule.New(tzrule.Data{\n", identifier(name))
	fmt.Fprintf(b, "\tName:         %q,\n", name)
	fmt.Fprintf(b, "\tVersion:      0x%02x,\n", rs.Version())
	fmt.Fprintf(b, "\tChecksum:     0x%08x,\n", rs.Checksum())
	fmt.Fprintf(b, "\tDesignations: %q,\n", rs.Designations())
	if posix, ok := rs.Posix(); ok {
		writePosix(b, posix)
	}
	fmt.Fprintf(b, "\tTypes: []tzrule.LocalType{\n")
	for i := 0; i < rs.NumTypes(); i++ {
		t := rs.Type(i)
		fmt.Fprintf(b, "\t\t{Offset: %d, IsDST: %v, DesignationLo: %d, DesignationHi: %d, Indicator: tzrule.%s},\n",
			t.Offset, t.IsDST, t.DesignationLo, t.DesignationHi, indicatorName(t.Indicator))
	}
	fmt.Fprintf(b, "\t},\n")
	fmt.Fprintf(b, "\tTransitions: []tzrule.Transition{\n")
	for _, tr := range trimmed(cfg, rs) {
		fmt.Fprintf(b, "\t\t{Timestamp: %d, TypeIndex: %d},\n", tr.Timestamp, tr.TypeIndex)
	}
	fmt.Fprintf(b, "\t},\n")
	fmt.Fprintf(b, "})\n")
}

func writePosix(b *bytes.Buffer, tz *tzrule.PosixTimeZone) {
	// Emitting the descriptor and re-parsing it is simpler than spelling
	// out the rule struct, and the round trip is exact.
	fmt.Fprintf(b, "\tPosix:        mustParse(%q),\n", tzposix.String(tz))
}

func trimmed(cfg config, rs *tzrule.RuleSet) []tzrule.Transition {
	var trs []tzrule.Transition
	for i := 0; i < rs.NumTransitions(); i++ {
		trs = append(trs, rs.TransitionAt(i))
	}
	if cfg.Trim == nil {
		return trs
	}
	lo := unixtime.FromDateTime(cfg.Trim.From, 1, 1, 0, 0, 0)
	hi := unixtime.FromDateTime(cfg.Trim.To, 1, 1, 0, 0, 0)
	var out []tzrule.Transition
	for i, tr := range trs {
		if tr.Timestamp >= hi {
			break
		}
		if tr.Timestamp < lo {
			// Keep only the last transition before the window; it
			// carries the offset in effect when the window opens.
			if i+1 < len(trs) && trs[i+1].Timestamp < lo {
				continue
			}
		}
		out = append(out, tr)
	}
	return out
}

func identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == '/' || r == '_' || r == '-' || r == '+':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func indicatorName(i tzrule.Indicator) string {
	switch i {
	case tzrule.LocalStandard:
		return "LocalStandard"
	case tzrule.UTStandard:
		return "UTStandard"
	default:
		return "LocalWall"
	}
}
