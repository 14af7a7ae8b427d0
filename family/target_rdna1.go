//go:build gfx1010 || gfx1011 || gfx1012

package family

const Target = RDNA1

const targetCodename = "gfx1010"
