package tzrule

import "fmt"

// Kind classifies a transition by how it affects civil time around it.
type Kind uint8

const (
	// Unambiguous transitions keep the offset of their predecessor.
	// Civil time neither skips nor repeats; typically only the
	// designation or DST disposition changes.
	Unambiguous Kind = iota
	// Gap transitions jump the offset forward. The span of civil time
	// equal to the offset difference never occurs on local clocks.
	Gap
	// Fold transitions jump the offset backward. The span of civil time
	// equal to the offset difference occurs twice on local clocks.
	Fold
)

func (k Kind) String() string {
	switch k {
	case Unambiguous:
		return "unambiguous"
	case Gap:
		return "gap"
	case Fold:
		return "fold"
	default:
		return fmt.Sprintf("<undefined kind (%d)>", uint8(k))
	}
}

// TransitionInfo is the derived classification of one transition: which
// type it switches to, its Kind, and the half-open civil window
// [CivilStart, CivilEnd) affected by it.
//
// Civil instants are expressed in local seconds: the Unix-style second
// count a wall clock in the zone would read, i.e. utc + offset.
type TransitionInfo struct {
	TypeIndex uint8
	Kind      Kind
	// CivilStart is the first affected local instant. For Gap it is the
	// transition rendered with the previous offset (the instant clocks
	// jump away from); for Fold it is the transition rendered with the
	// new offset (the first instant that repeats). For Unambiguous it is
	// simply where the new regime begins in civil time.
	CivilStart int64
	// CivilEnd is the exclusive end of the window, CivilStart plus the
	// absolute offset difference. Zero and meaningless for Unambiguous.
	CivilEnd int64
}

// Classify determines the kind of a transition at Unix second ts from the
// previously effective offset prev to the new offset next, both in signed
// seconds east of UTC. It returns the kind together with the civil window
// [start, end); for Unambiguous, start is where the new regime begins and
// end is zero.
func Classify(prev, next int32, ts int64) (kind Kind, start, end int64) {
	switch {
	case next == prev:
		return Unambiguous, ts + int64(next), 0
	case next > prev:
		// Clocks skip from ts+prev to ts+next.
		return Gap, ts + int64(prev), ts + int64(next)
	default:
		// Clocks fall back: [ts+next, ts+prev) is lived through twice.
		return Fold, ts + int64(next), ts + int64(prev)
	}
}
