//go:build gfx90a

package family

const Target = CDNA2

const targetCodename = "gfx90a"
