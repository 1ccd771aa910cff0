package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prog3487/ComputeWave/waves"
)

func TestPathVerifierTracksMainSimulation(t *testing.T) {
	exec := waves.NewPoolExecutor(2)
	sim := waves.NewSimulation(exec)
	require.NoError(t, sim.Init(24, 20, 0.8, 0.03, 3.25, 0.4))

	v, err := newPathVerifier(sim, exec)
	require.NoError(t, err)
	assert.Equal(t, waves.ModeParallel, v.shadow.Mode())

	imp := waves.Impulse{Row: 10, Col: 9, Magnitude: 1.5}
	require.NoError(t, sim.Disturb(imp.Row, imp.Col, imp.Magnitude))
	v.disturb(imp)
	for i := 0; i < 40; i++ {
		if i == 20 {
			require.NoError(t, sim.SetMode(waves.ModeParallel))
			v.follow(waves.ModeParallel)
			assert.Equal(t, waves.ModeScalar, v.shadow.Mode())
		}
		require.NoError(t, sim.Step(0.03))
		v.step(sim, 0.03)
	}
	assert.False(t, v.disabled)
	assert.Zero(t, v.mismatches)
}

func TestPathVerifierCountsDivergence(t *testing.T) {
	exec := waves.NewPoolExecutor(1)
	sim := waves.NewSimulation(exec)
	require.NoError(t, sim.Init(12, 12, 0.8, 0.03, 3.25, 0.4))
	v, err := newPathVerifier(sim, exec)
	require.NoError(t, err)

	// Only the main simulation sees this impulse.
	require.NoError(t, sim.Disturb(5, 5, 1))
	require.NoError(t, sim.Step(0.03))
	v.step(sim, 0.03)
	assert.Equal(t, 1, v.mismatches)

	v.disturb(waves.Impulse{Row: 0, Col: 0, Magnitude: 1})
	assert.True(t, v.disabled)
}

func TestWiden(t *testing.T) {
	dst := widen(nil, []float32{1, 2.5})
	assert.Equal(t, []float64{1, 2.5}, dst)
	again := widen(dst, []float32{3})
	assert.Equal(t, []float64{3}, again)
	assert.Same(t, &dst[0], &again[0])
}
