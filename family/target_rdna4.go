//go:build gfx1200 || gfx1201

package family

const Target = RDNA4

const targetCodename = "gfx1200"
