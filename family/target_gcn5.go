//go:build gfx900 || gfx906

package family

const Target = GCN5

const targetCodename = "gfx900"
