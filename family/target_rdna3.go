//go:build gfx1100 || gfx1101 || gfx1102

package family

const Target = RDNA3

const targetCodename = "gfx1100"
