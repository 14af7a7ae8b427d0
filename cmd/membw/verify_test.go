package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternRoundTrip(t *testing.T) {
	for _, elem := range []string{"u8", "f16", "f32"} {
		buf := fillPattern(elem, 4096)
		require.Len(t, buf, 4096)
		require.NoError(t, verifyPattern(elem, buf, buf), "elem %s", elem)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	for _, elem := range []string{"u8", "f16", "f32"} {
		want := fillPattern(elem, 4096)
		got := fillPattern(elem, 4096)
		got[100] ^= 0x40
		require.Error(t, verifyPattern(elem, want, got), "elem %s", elem)
	}
}

func TestVerifyLengthMismatch(t *testing.T) {
	require.Error(t, verifyPattern("u8", make([]byte, 8), make([]byte, 4)))
}

func TestPatternUnknownElem(t *testing.T) {
	require.Panics(t, func() { fillPattern("f64", 16) })
}
