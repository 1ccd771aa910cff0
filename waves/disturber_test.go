package waves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource float32

func (c constSource) Next() float32 { return float32(c) }

func TestDisturberPeriod(t *testing.T) {
	g := newTestGrid(t, 200, 200)
	d := NewDisturber(1)

	_, ok := d.Tick(0.1, g)
	assert.False(t, ok)
	_, ok = d.Tick(0.1, g)
	assert.False(t, ok)
	_, ok = d.Tick(0.1, g)
	assert.True(t, ok)
	_, ok = d.Tick(0.1, g)
	assert.False(t, ok)
}

func TestDisturberDrawsLegalTargets(t *testing.T) {
	g := newTestGrid(t, 200, 200)
	d := NewDisturber(3)
	for i := 0; i < 2000; i++ {
		imp, ok := d.Draw(g)
		require.True(t, ok)
		require.GreaterOrEqual(t, imp.Row, 5)
		require.Less(t, imp.Row, 195)
		require.GreaterOrEqual(t, imp.Col, 5)
		require.Less(t, imp.Col, 195)
		require.True(t, g.CanDisturb(imp.Row, imp.Col))
		require.GreaterOrEqual(t, imp.Magnitude, float32(1))
		require.Less(t, imp.Magnitude, float32(2))
	}
}

func TestDisturberSmallGrid(t *testing.T) {
	g := newTestGrid(t, 7, 7)
	d := NewDisturber(3)
	_, ok := d.Draw(g)
	assert.False(t, ok, "margin leaves no room")

	d.Margin = 0
	for i := 0; i < 100; i++ {
		imp, ok := d.Draw(g)
		require.True(t, ok)
		require.True(t, g.CanDisturb(imp.Row, imp.Col), "%+v", imp)
	}
}

func TestDisturberReproducible(t *testing.T) {
	g := newTestGrid(t, 50, 50)
	a, b := NewDisturber(99), NewDisturber(99)
	for i := 0; i < 50; i++ {
		ia, _ := a.Draw(g)
		ib, _ := b.Draw(g)
		require.Equal(t, ia, ib)
	}
}

func TestDisturberMagnitudeSource(t *testing.T) {
	g := newTestGrid(t, 50, 50)
	d := NewDisturber(5)
	d.Source = constSource(0.5)
	imp, ok := d.Draw(g)
	require.True(t, ok)
	assert.Equal(t, float32(1.5), imp.Magnitude)
}
