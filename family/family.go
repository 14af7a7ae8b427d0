// Package family classifies AMD GPU architectures into hardware generations
// and provides a set type over them.
//
// The package is deliberately free of cgo and of any host-side dependency, so
// the classification can be used from any evaluation context.
package family

import "strings"

// Family is one AMD GPU hardware generation.
type Family int

//go:generate go tool enumer -type=Family family.go

const (
	GCN5 Family = iota
	RDNA1
	RDNA2
	RDNA3
	RDNA4
	CDNA1
	CDNA2
	CDNA3

	numFamilies
)

// Set is a bitmask over hardware generations.
type Set uint16

const (
	// None is the empty set; it is also what Classify returns for an
	// unrecognized architecture.
	None Set = 0

	// All contains every generation this package knows about.
	All Set = 1<<numFamilies - 1
)

// AsSet returns the singleton set holding f.
func (f Family) AsSet() Set {
	return 1 << f
}

// Of builds a set from the given generations.
func Of(families ...Family) Set {
	var s Set
	for _, f := range families {
		s |= f.AsSet()
	}
	return s
}

// Union returns the set of generations in s or in other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Intersect returns the set of generations in both s and other.
func (s Set) Intersect(other Set) Set {
	return s & other
}

// SymmetricDifference returns the set of generations in exactly one of s and
// other.
func (s Set) SymmetricDifference(other Set) Set {
	return s ^ other
}

// Complement returns the set of known generations not in s.
func (s Set) Complement() Set {
	return ^s & All
}

// Contains reports whether every generation in other is also in s.
func (s Set) Contains(other Set) bool {
	return s&other == other
}

// Has reports whether f is in s.
func (s Set) Has(f Family) bool {
	return s.Contains(f.AsSet())
}

func (s Set) String() string {
	if s == None {
		return "none"
	}
	var names []string
	for f := GCN5; f < numFamilies; f++ {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, "|")
}

// classifyRules maps gcnArchName prefixes to generations. Longer prefixes
// must come before the shorter prefixes they extend (gfx90a and gfx908 before
// gfx9); the first matching rule wins.
var classifyRules = []struct {
	prefix string
	family Family
}{
	{"gfx12", RDNA4},
	{"gfx11", RDNA3},
	{"gfx103", RDNA2},
	{"gfx101", RDNA1},
	{"gfx94", CDNA3},
	{"gfx95", CDNA3},
	{"gfx90a", CDNA2},
	{"gfx908", CDNA1},
	{"gfx9", GCN5},
}

// Classify maps a device's architecture codename (the gcnArchName reported by
// the runtime, e.g. "gfx1100" or "gfx90a:sramecc+:xnack-") to its generation.
// It returns None if the codename is not recognized.
func Classify(codename string) Set {
	for _, rule := range classifyRules {
		if strings.HasPrefix(codename, rule.prefix) {
			return rule.family.AsSet()
		}
	}
	return None
}
