package tzif

import (
	"fmt"
	"io"

	"github.com/grodin/jiff/tzposix"
	"github.com/grodin/jiff/tzrule"
)

// RuleSet converts decoded TZif data into the rule model.
//
// This is the decoder-to-core boundary: every invariant the rule model
// relies on is established here, and a violation surfaces as an error
// rather than a constructed instance. The name is the IANA zone name the
// data was loaded under; pass "" when unknown.
func (d Data) RuleSet(name string) (*tzrule.RuleSet, error) {
	if err := validateBlock(d.Block); err != nil {
		return nil, err
	}
	b := d.Block

	types := make([]tzrule.LocalType, len(b.LocalTimeTypes))
	for i, lt := range b.LocalTimeTypes {
		hi := int(lt.Idx)
		for hi < len(b.Designations) && b.Designations[hi] != 0 {
			hi++
		}
		if hi >= 256 {
			return nil, fmt.Errorf("local time type %d: designation end %d exceeds one-byte indexing", i, hi)
		}
		types[i] = tzrule.LocalType{
			Offset:        lt.Utoff,
			IsDST:         lt.Dst,
			DesignationLo: lt.Idx,
			DesignationHi: uint8(hi),
			Indicator:     indicator(b, i),
		}
	}

	transitions := make([]tzrule.Transition, len(b.TransitionTimes))
	for i, t := range b.TransitionTimes {
		transitions[i] = tzrule.Transition{Timestamp: t, TypeIndex: b.TransitionTypes[i]}
	}

	var posix *tzrule.PosixTimeZone
	if d.TZString != "" {
		var err error
		posix, err = tzposix.Parse(d.TZString)
		if err != nil {
			return nil, fmt.Errorf("footer TZ string: %w", err)
		}
	}

	return tzrule.New(tzrule.Data{
		Name:         name,
		Version:      byte(d.Version),
		Checksum:     d.Checksum,
		Designations: string(b.Designations),
		Posix:        posix,
		Types:        types,
		Transitions:  transitions,
	}), nil
}

// indicator derives the time specification indicator for local time type
// i from the standard/wall and UT/local arrays, applying the RFC8536
// defaults when the arrays are absent.
func indicator(b DataBlock, i int) tzrule.Indicator {
	std := len(b.StandardWallIndicators) > i && b.StandardWallIndicators[i]
	ut := len(b.UTLocalIndicators) > i && b.UTLocalIndicators[i]
	switch {
	case ut:
		return tzrule.UTStandard
	case std:
		return tzrule.LocalStandard
	default:
		return tzrule.LocalWall
	}
}

// DecodeRuleSet decodes a TZif file and converts it in one step.
func DecodeRuleSet(r io.Reader, name string) (*tzrule.RuleSet, error) {
	d, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return d.RuleSet(name)
}
