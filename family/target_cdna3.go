//go:build gfx940 || gfx941 || gfx942 || gfx950

package family

const Target = CDNA3

const targetCodename = "gfx942"
