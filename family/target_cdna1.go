//go:build gfx908

package family

const Target = CDNA1

const targetCodename = "gfx908"
