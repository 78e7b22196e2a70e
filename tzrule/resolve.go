package tzrule

import "sort"

// Resolved is one answer to "what offset applies": the offset in signed
// seconds east of UTC, whether it is daylight saving time, and the zone
// designation under which it goes.
type Resolved struct {
	Offset int32
	DST    bool
	Abbr   string
}

// Civil is the result of resolving a civil instant. Kind tags which case
// applied:
//
//   - Unambiguous: First is the single resolution; Second is zero.
//   - Fold: the instant occurs twice. First is the earlier occurrence
//     (the pre-transition offset) and Second the later one.
//   - Gap: the instant never occurs. First and Second describe the
//     offsets before and after the jump; neither is a valid resolution.
//
// Which fold candidate to prefer, or how to shift out of a gap, is the
// calendar consumer's policy, not this package's.
type Civil struct {
	Kind   Kind
	First  Resolved
	Second Resolved
}

// Candidates returns the valid resolutions: none for a gap, one for an
// unambiguous instant, two for a fold.
func (c Civil) Candidates() []Resolved {
	switch c.Kind {
	case Gap:
		return nil
	case Fold:
		return []Resolved{c.First, c.Second}
	default:
		return []Resolved{c.First}
	}
}

func (rs *RuleSet) resolveType(i uint8) Resolved {
	t := rs.types[i]
	return Resolved{Offset: t.Offset, DST: t.IsDST, Abbr: rs.Abbr(t)}
}

// Lookup resolves the offset in effect at the given Unix second.
//
// Instants before the first recorded transition use the zone's initial
// type. Instants after the last one are extrapolated with the POSIX
// fallback rule when present, and otherwise keep the last transition's
// type.
func (rs *RuleSet) Lookup(utc int64) Resolved {
	n := len(rs.transitions)
	if n == 0 {
		if rs.posix != nil {
			return rs.posix.Lookup(utc)
		}
		return rs.resolveType(rs.first)
	}
	if utc < rs.transitions[0].Timestamp {
		return rs.resolveType(rs.first)
	}
	if utc >= rs.transitions[n-1].Timestamp && rs.posix != nil {
		return rs.posix.Lookup(utc)
	}
	// Greatest transition timestamp <= utc.
	i := sort.Search(n, func(i int) bool {
		return rs.transitions[i].Timestamp > utc
	}) - 1
	return rs.resolveType(rs.transitions[i].TypeIndex)
}

// LookupCivil resolves a civil instant, given in local seconds (the Unix
// second a wall clock in the zone would show). The result carries zero,
// one or two candidate offsets depending on whether the instant falls in
// a gap, an unambiguous span, or a fold.
func (rs *RuleSet) LookupCivil(local int64) Civil {
	n := len(rs.transitions)
	if n == 0 {
		if rs.posix != nil {
			return rs.posix.LookupCivil(local)
		}
		return Civil{Kind: Unambiguous, First: rs.resolveType(rs.first)}
	}
	if local < rs.infos[0].CivilStart {
		return Civil{Kind: Unambiguous, First: rs.resolveType(rs.first)}
	}
	// Greatest civil window start <= local.
	i := sort.Search(n, func(i int) bool {
		return rs.infos[i].CivilStart > local
	}) - 1

	info := rs.infos[i]
	if info.Kind != Unambiguous && local < info.CivilEnd {
		var before Resolved
		if i == 0 {
			before = rs.resolveType(rs.first)
		} else {
			before = rs.resolveType(rs.transitions[i-1].TypeIndex)
		}
		return Civil{Kind: info.Kind, First: before, Second: rs.resolveType(info.TypeIndex)}
	}
	if i == n-1 && rs.posix != nil {
		// Past the table. The footer rule is required to agree with the
		// last transition, so delegating near the boundary is safe.
		return rs.posix.LookupCivil(local)
	}
	return Civil{Kind: Unambiguous, First: rs.resolveType(info.TypeIndex)}
}
