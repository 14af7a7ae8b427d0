//go:build gfx1030 || gfx1031 || gfx1032 || gfx1034

package family

const Target = RDNA2

const targetCodename = "gfx1030"
