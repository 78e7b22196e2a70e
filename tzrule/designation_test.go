package tzrule

import (
	"strings"
	"testing"
)

func TestNewDesignation(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"EST", true},
		{"+0530", true},
		{"-00", true},
		{strings.Repeat("x", DesignationCap), true},
		{strings.Repeat("x", DesignationCap+1), false},
		{"\xff\xfe", false}, // not UTF-8
	}
	for _, c := range cases {
		d, ok := NewDesignation(c.in)
		if ok != c.ok {
			t.Errorf("NewDesignation(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && d.String() != c.in {
			t.Errorf("NewDesignation(%q).String() = %q", c.in, d.String())
		}
	}
}

func TestDesignationComparable(t *testing.T) {
	a := MustDesignation("EST")
	b := MustDesignation("EST")
	c := MustDesignation("EDT")
	if a != b {
		t.Error("identical designations compare unequal")
	}
	if a == c {
		t.Error("distinct designations compare equal")
	}
	if !a.EqualString("EST") || a.EqualString("EDT") {
		t.Error("EqualString mismatch")
	}
	if got := c.Compare(a); got != -1 {
		t.Errorf("Compare(EDT, EST) = %d, want -1", got)
	}
	if got := a.Compare(a); got != 0 {
		t.Errorf("Compare(EST, EST) = %d, want 0", got)
	}
}

func TestMustDesignationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDesignation did not panic on oversized input")
		}
	}()
	MustDesignation(strings.Repeat("x", DesignationCap+1))
}
