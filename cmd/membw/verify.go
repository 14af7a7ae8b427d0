package main

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// fillPattern builds n bytes of a recognizable non-constant pattern in the
// given element type. The pattern values stay small enough to be exactly
// representable, so a clean copy reproduces them bit for bit.
func fillPattern(elem string, n int) []byte {
	buf := make([]byte, n)
	switch elem {
	case "u8":
		for i := range buf {
			buf[i] = byte(i)
		}
	case "f16":
		for i := 0; i+1 < n; i += 2 {
			v := float16.Fromfloat32(float32(i / 2 % 2048))
			binary.LittleEndian.PutUint16(buf[i:], v.Bits())
		}
	case "f32":
		for i := 0; i+3 < n; i += 4 {
			binary.LittleEndian.PutUint32(buf[i:], math.Float32bits(float32(i/4)))
		}
	default:
		panic(errors.Errorf("unknown element type %q (want u8, f16 or f32)", elem))
	}
	return buf
}

// verifyPattern checks a read-back buffer against the written pattern,
// comparing element-wise in the pattern's type.
func verifyPattern(elem string, want, got []byte) error {
	if len(want) != len(got) {
		return errors.Errorf("verify: length mismatch: wrote %d bytes, read %d", len(want), len(got))
	}
	switch elem {
	case "u8":
		for i := range want {
			if want[i] != got[i] {
				return errors.Errorf("verify: byte %d is %#02x, want %#02x", i, got[i], want[i])
			}
		}
	case "f16":
		for i := 0; i+1 < len(want); i += 2 {
			w := float16.Frombits(binary.LittleEndian.Uint16(want[i:])).Float32()
			g := float16.Frombits(binary.LittleEndian.Uint16(got[i:])).Float32()
			if !closeEnough(w, g) {
				return errors.Errorf("verify: element %d is %g, want %g", i/2, g, w)
			}
		}
	case "f32":
		for i := 0; i+3 < len(want); i += 4 {
			w := math.Float32frombits(binary.LittleEndian.Uint32(want[i:]))
			g := math.Float32frombits(binary.LittleEndian.Uint32(got[i:]))
			if !closeEnough(w, g) {
				return errors.Errorf("verify: element %d is %g, want %g", i/4, g, w)
			}
		}
	default:
		return errors.Errorf("unknown element type %q", elem)
	}
	return nil
}

// A plain copy must be bit-exact, but keep a hair of tolerance so the checker
// also serves workloads that recompute instead of move.
func closeEnough(want, got float32) bool {
	return math32.Abs(want-got) <= 1e-6*math32.Max(1, math32.Abs(want))
}
