package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfBits(t *testing.T) {
	cases := []struct {
		in   float32
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{-2, 0xc000},
		{0.5, 0x3800},
		{65504, 0x7bff},
		{65520, 0x7c00},
		{float32(math.Inf(-1)), 0xfc00},
		{1.0 / (1 << 24), 0x0001},
		{1.0 / (1 << 14), 0x0400},
		{1e-9, 0x0000},
		// 1 + 2^-11 is halfway between 1 and the next half; ties go to even.
		{1 + 1.0/(1<<11), 0x3c00},
		{1 + 3.0/(1<<11), 0x3c02},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, halfBits(c.in), "%g", c.in)
	}
	assert.True(t, math.IsNaN(float64(halfToFloat32(halfBits(float32(math.NaN()))))))
}

func TestHalfRoundTrip(t *testing.T) {
	for _, v := range []float32{0.1, -0.75, 1.5, 3.25, 1000, -0.0001} {
		got := halfToFloat32(halfBits(v))
		assert.InEpsilon(t, v, got, 1e-3, "%g", v)
	}
	for h := uint16(0); h < 0x7c00; h += 37 {
		assert.Equal(t, h, halfBits(halfToFloat32(h)), "%#04x", h)
	}
}
