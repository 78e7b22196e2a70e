// Package tzdb locates and loads compiled time zone data from the
// platform's zoneinfo database.
//
// Zone names such as "America/New_York" are resolved against the ZONEINFO
// environment variable first and then against the conventional system
// directories, mirroring how other zoneinfo readers search. The files
// found there are TZif; decoding and validation are delegated to the
// tzif package.
package tzdb

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grodin/jiff/tzif"
	"github.com/grodin/jiff/tzrule"
)

// ErrZoneNotFound is returned when no source directory contains the
// requested zone.
var ErrZoneNotFound = errors.New("zone not found in any source")

// sources are the directories searched for TZif files, in order. These
// are the locations used by the system tzset(3) on common Unixen.
var sources = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
	"/etc/zoneinfo",
}

// DefaultDB is the database used by the top-level Load function.
var DefaultDB = &DB{}

// DB loads zones from a configurable list of zoneinfo directories.
// The zero value searches ZONEINFO and the standard system locations and
// is ready to use.
type DB struct {
	// Dirs overrides the directories to search. When nil, the ZONEINFO
	// environment variable (if set) followed by the standard system
	// locations is used.
	Dirs []string
}

func (db *DB) dirs() []string {
	if db.Dirs != nil {
		return db.Dirs
	}
	if env := os.Getenv("ZONEINFO"); env != "" {
		return append([]string{env}, sources...)
	}
	return sources
}

// Load reads and decodes the named zone from the database.
func (db *DB) Load(name string) (*tzrule.RuleSet, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	for _, dir := range db.dirs() {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		rs, err := tzif.DecodeRuleSet(bytes.NewReader(raw), name)
		if err != nil {
			return nil, fmt.Errorf("zone %s: %w", name, err)
		}
		return rs, nil
	}
	return nil, fmt.Errorf("zone %s: %w", name, ErrZoneNotFound)
}

// Load reads and decodes the named zone using DefaultDB.
func Load(name string) (*tzrule.RuleSet, error) {
	return DefaultDB.Load(name)
}

// validName rejects names that are empty, absolute, or would escape the
// database directory.
func validName(name string) error {
	if name == "" || name == "/" {
		return fmt.Errorf("invalid zone name %q", name)
	}
	if name[0] == '/' || name[0] == '.' {
		return fmt.Errorf("invalid zone name %q", name)
	}
	for i := 0; i+1 < len(name); i++ {
		if name[i] == '.' && name[i+1] == '.' {
			return fmt.Errorf("invalid zone name %q", name)
		}
	}
	return nil
}
