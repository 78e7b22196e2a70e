package tzrule

import (
	"strings"
	"unicode/utf8"
)

// DesignationCap is the maximum byte length of a zone designation such as
// "EST" or "+0530". The IANA database guarantees designations stay well
// below this bound, and keeping it under 256 lets the length live in a
// single byte.
const DesignationCap = 30

// Designation is a fixed-capacity string holding a time zone abbreviation.
//
// It is a plain value type with copy semantics and no heap storage, which
// keeps the abbreviation path allocation free for rule sets materialized
// at build time. The entire backing buffer is valid UTF-8 at all times;
// the first len bytes form the logical string. Designations are
// comparable with ==, since construction zeroes the unused tail.
type Designation struct {
	bytes [DesignationCap]byte
	len   uint8
}

// NewDesignation creates a Designation from s. It reports false if s
// exceeds DesignationCap bytes or is not valid UTF-8. There is
// deliberately no truncating constructor.
func NewDesignation(s string) (Designation, bool) {
	if len(s) > DesignationCap || !utf8.ValidString(s) {
		return Designation{}, false
	}
	var d Designation
	copy(d.bytes[:], s)
	d.len = uint8(len(s))
	return d, true
}

// MustDesignation is like NewDesignation but panics when s does not fit.
// It is intended for string literals, primarily in generated code.
func MustDesignation(s string) Designation {
	d, ok := NewDesignation(s)
	if !ok {
		panic("tzrule: invalid designation literal: " + s)
	}
	return d
}

// String returns the logical string.
func (d Designation) String() string {
	return string(d.bytes[:d.len])
}

// EqualString reports whether the designation equals the given string.
func (d Designation) EqualString(s string) bool {
	return len(s) == int(d.len) && string(d.bytes[:d.len]) == s
}

// Compare compares two designations lexicographically, returning
// -1, 0 or +1 like strings.Compare.
func (d Designation) Compare(o Designation) int {
	return strings.Compare(d.String(), o.String())
}
