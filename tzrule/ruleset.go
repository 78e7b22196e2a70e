// Package tzrule models time zone transition rules and resolves the UTC
// offset in effect at any instant or civil (wall clock) time.
//
// A RuleSet combines an ordered table of historical transitions, as found
// in TZif files, with an optional POSIX-style recurring rule used to
// extrapolate past the last recorded transition. A PosixTimeZone on its
// own serves zones that have no table at all.
//
// Rule sets are immutable once constructed. Any number of lookups may run
// concurrently without synchronization; no read path mutates shared state.
// Construction is the producer's job: decoders (see the tzif package) and
// generated code hand this package fully validated Data and never touch
// it again.
package tzrule

import (
	"fmt"
)

// Indicator describes how the transition times associated with a local
// time type were specified in the source data: as local wall clock time,
// as local standard time, or as universal time. TZif carries this in its
// standard/wall and UT/local indicator arrays.
type Indicator uint8

const (
	LocalWall Indicator = iota
	LocalStandard
	UTStandard
)

func (i Indicator) String() string {
	switch i {
	case LocalWall:
		return "local/wall"
	case LocalStandard:
		return "local/standard"
	case UTStandard:
		return "UT/standard"
	default:
		return fmt.Sprintf("<undefined indicator (%d)>", uint8(i))
	}
}

// LocalType is one row of the local time type table: the offset and DST
// disposition a zone observes between two transitions.
type LocalType struct {
	// Offset is the number of seconds to add to UT to determine local
	// time. Signed, east of UTC.
	Offset int32
	// IsDST reports whether this type counts as daylight saving time.
	IsDST bool
	// DesignationLo and DesignationHi delimit this type's abbreviation
	// inside the rule set's designation blob, as a half-open byte range
	// [lo, hi).
	DesignationLo uint8
	DesignationHi uint8
	// Indicator records how this type's transition times were specified.
	Indicator Indicator
}

// Transition is one row of the transition table: the instant, in Unix
// seconds, at which the zone switches to the local time type at
// TypeIndex.
type Transition struct {
	Timestamp int64
	TypeIndex uint8
}

// Data is the raw material for a RuleSet. It is produced by external
// decoders (tzif) or by generated code, and must already satisfy the
// documented invariants: transitions strictly ascending, every type index
// within the type table, every designation range within the blob.
//
// The sequence fields are plain slices on purpose. A decoder hands over
// freshly built heap slices; generated code hands over views of
// package-level literals. Both forms run the identical algorithms with
// no copying, which is the whole point of keeping the model generic over
// read-only views.
type Data struct {
	// Name is the IANA zone name, e.g. "America/New_York". Empty means
	// unknown.
	Name string
	// Version is the TZif format version byte the data came from.
	Version byte
	// Checksum is a CRC-32 (IEEE) over the raw source bytes. It guards
	// against mismatched generated data, not against structural errors.
	Checksum uint32
	// Designations holds all abbreviations concatenated; LocalType rows
	// reference byte ranges within it.
	Designations string
	// Posix is the recurring rule applied past the last transition, or
	// nil if the source provides none.
	Posix *PosixTimeZone
	// Types is the local time type table. Must not be empty.
	Types []LocalType
	// Transitions is the transition table, strictly ascending by
	// timestamp. May be empty.
	Transitions []Transition
}

// RuleSet is an immutable set of transition rules for a single zone.
// The zero value is not useful; use New.
type RuleSet struct {
	name         string
	version      byte
	checksum     uint32
	designations string
	posix        *PosixTimeZone
	types        []LocalType
	transitions  []Transition
	// infos holds the precomputed classification of every transition
	// against its predecessor, index-aligned with transitions.
	infos []TransitionInfo
	// first is the type index in effect before the first transition.
	first uint8
}

// New constructs a RuleSet from validated Data.
//
// New panics when the invariants do not hold. A violation means the
// producer broke its contract, which is a programmer error and not a
// recoverable data condition; decoders are required to reject malformed
// input themselves before calling New.
func New(d Data) *RuleSet {
	if len(d.Types) == 0 {
		panic("tzrule: rule set must define at least one local time type")
	}
	if len(d.Types) > 256 {
		panic("tzrule: local time type table exceeds one-byte indexing")
	}
	for i, t := range d.Types {
		if int(t.DesignationLo) > int(t.DesignationHi) || int(t.DesignationHi) > len(d.Designations) {
			panic(fmt.Sprintf("tzrule: type %d: designation range [%d, %d) outside blob of %d bytes",
				i, t.DesignationLo, t.DesignationHi, len(d.Designations)))
		}
	}
	var prev int64
	for i, tr := range d.Transitions {
		if int(tr.TypeIndex) >= len(d.Types) {
			panic(fmt.Sprintf("tzrule: transition %d: type index %d out of range (%d types)",
				i, tr.TypeIndex, len(d.Types)))
		}
		if i > 0 && tr.Timestamp <= prev {
			panic(fmt.Sprintf("tzrule: transition %d: timestamp %d not strictly after %d",
				i, tr.Timestamp, prev))
		}
		prev = tr.Timestamp
	}

	rs := &RuleSet{
		name:         d.Name,
		version:      d.Version,
		checksum:     d.Checksum,
		designations: d.Designations,
		posix:        d.Posix,
		types:        d.Types,
		transitions:  d.Transitions,
	}
	rs.first = rs.initialTypeIndex()
	rs.infos = rs.classifyAll()
	return rs
}

// Name returns the zone name and whether one is known.
func (rs *RuleSet) Name() (string, bool) {
	return rs.name, rs.name != ""
}

// Version returns the source format version byte.
func (rs *RuleSet) Version() byte { return rs.version }

// Checksum returns the CRC-32 of the raw source bytes.
func (rs *RuleSet) Checksum() uint32 { return rs.checksum }

// Designations returns the concatenated abbreviation blob.
func (rs *RuleSet) Designations() string { return rs.designations }

// Posix returns the recurring fallback rule and whether one is present.
func (rs *RuleSet) Posix() (*PosixTimeZone, bool) {
	return rs.posix, rs.posix != nil
}

// NumTypes returns the length of the local time type table.
func (rs *RuleSet) NumTypes() int { return len(rs.types) }

// Type returns the i-th local time type row.
func (rs *RuleSet) Type(i int) LocalType { return rs.types[i] }

// NumTransitions returns the length of the transition table.
func (rs *RuleSet) NumTransitions() int { return len(rs.transitions) }

// TransitionAt returns the i-th transition row.
func (rs *RuleSet) TransitionAt(i int) Transition { return rs.transitions[i] }

// InfoAt returns the classification of the i-th transition against its
// predecessor.
func (rs *RuleSet) InfoAt(i int) TransitionInfo { return rs.infos[i] }

// Abbr returns the designation named by a local time type row.
func (rs *RuleSet) Abbr(t LocalType) string {
	return rs.designations[t.DesignationLo:t.DesignationHi]
}

// initialTypeIndex picks the type in effect before the first transition.
// This mirrors the heuristic zoneinfo readers use: prefer the first type
// if it is never the target of a transition, otherwise walk back from the
// first transition's type to a standard time type, otherwise take the
// first standard time type in the table, otherwise give up and take the
// first type.
func (rs *RuleSet) initialTypeIndex() uint8 {
	if len(rs.transitions) == 0 {
		return 0
	}
	firstUsed := false
	for _, tr := range rs.transitions {
		if tr.TypeIndex == 0 {
			firstUsed = true
			break
		}
	}
	if !firstUsed {
		return 0
	}
	if first := rs.transitions[0].TypeIndex; rs.types[first].IsDST {
		for i := int(first) - 1; i >= 0; i-- {
			if !rs.types[i].IsDST {
				return uint8(i)
			}
		}
		for i := range rs.types {
			if !rs.types[i].IsDST {
				return uint8(i)
			}
		}
	}
	return 0
}

// classifyAll computes the kind and civil ambiguity window of every
// transition relative to the offset in effect just before it.
func (rs *RuleSet) classifyAll() []TransitionInfo {
	infos := make([]TransitionInfo, len(rs.transitions))
	prevOffset := rs.types[rs.first].Offset
	for i, tr := range rs.transitions {
		next := rs.types[tr.TypeIndex].Offset
		kind, start, end := Classify(prevOffset, next, tr.Timestamp)
		infos[i] = TransitionInfo{
			TypeIndex:  tr.TypeIndex,
			Kind:       kind,
			CivilStart: start,
			CivilEnd:   end,
		}
		prevOffset = next
	}
	return infos
}
