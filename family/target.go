package family

// Target is the generation a binary was built for, selected at compile time
// by build tags that mirror the amdgpu target names (e.g. -tags gfx1100).
// Binaries built without a target tag get TargetNone.
//
// For every supported architecture, Target must agree with what Classify
// returns for a device reporting that architecture's codename; the
// correspondence is checked in the package tests.

// HasTarget reports whether the binary was built for a specific architecture.
func HasTarget() bool {
	return Target != TargetNone
}

// TargetNone is the Target value of an untargeted build.
const TargetNone Family = -1
