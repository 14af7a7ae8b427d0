//go:build !(gfx900 || gfx906 || gfx908 || gfx90a || gfx940 || gfx941 || gfx942 || gfx950 || gfx1010 || gfx1011 || gfx1012 || gfx1030 || gfx1031 || gfx1032 || gfx1034 || gfx1100 || gfx1101 || gfx1102 || gfx1200 || gfx1201)

package family

const Target = TargetNone

const targetCodename = ""
