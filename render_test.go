package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightColor(t *testing.T) {
	r, g, b := heightColor(0)
	assert.Equal(t, [3]byte{24, 70, 140}, [3]byte{r, g, b})

	r, g, b = heightColor(5)
	assert.Equal(t, [3]byte{255, 255, 255}, [3]byte{r, g, b})

	r, g, b = heightColor(-5)
	assert.Equal(t, [3]byte{0, 0, 40}, [3]byte{r, g, b})

	lo, _, _ := heightColor(-0.5)
	hi, _, _ := heightColor(0.5)
	assert.Less(t, lo, hi)
}

func TestAdjustTimeScaleClamps(t *testing.T) {
	g := &Game{timeScale: 1}
	g.adjustTimeScale(2)
	assert.Equal(t, 2.0, g.timeScale)
	for i := 0; i < 10; i++ {
		g.adjustTimeScale(2)
	}
	assert.Equal(t, maxTimeScale, g.timeScale)
	for i := 0; i < 20; i++ {
		g.adjustTimeScale(0.5)
	}
	assert.Equal(t, minTimeScale, g.timeScale)
}
