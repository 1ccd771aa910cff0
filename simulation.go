package main

import (
	"errors"
	"log"

	"github.com/prog3487/ComputeWave/waves"
)

// tick runs one external tick: a scheduled or remote disturbance followed by
// a step of the active path. A parallel executor failure switches the
// simulation to the scalar path and retries the failed call there.
func (g *Game) tick(elapsed float64) error {
	grid := g.sim.Grid()
	if imp, ok := g.disturber.Tick(elapsed, grid); ok {
		if err := g.disturb(imp); err != nil {
			return err
		}
	}
	if g.server != nil {
		for _, imp := range g.server.Requests() {
			if !grid.CanDisturb(imp.Row, imp.Col) {
				continue
			}
			if err := g.disturb(imp); err != nil {
				return err
			}
		}
	}

	dt := float32(elapsed)
	err := g.sim.Step(dt)
	if g.fallBack(err) {
		err = g.sim.Step(dt)
	}
	if err != nil {
		return err
	}
	if g.verifier != nil {
		g.verifier.step(g.sim, dt)
	}
	return nil
}

func (g *Game) disturb(imp waves.Impulse) error {
	err := g.sim.Disturb(imp.Row, imp.Col, imp.Magnitude)
	if g.fallBack(err) {
		err = g.sim.Disturb(imp.Row, imp.Col, imp.Magnitude)
	}
	if err != nil {
		return err
	}
	if g.verifier != nil {
		g.verifier.disturb(imp)
	}
	return nil
}

// fallBack switches to the scalar path after an executor failure and
// reports whether the caller should retry.
func (g *Game) fallBack(err error) bool {
	if !errors.Is(err, waves.ErrExecutorFailure) || g.sim.Mode() != waves.ModeParallel {
		return false
	}
	log.Printf("Parallel step failed, falling back to scalar: %v", err)
	return g.setMode(waves.ModeScalar) == nil
}

// setMode switches the simulation and the verifier shadow together.
func (g *Game) setMode(m waves.Mode) error {
	if m == g.sim.Mode() {
		return nil
	}
	if err := g.sim.SetMode(m); err != nil {
		return err
	}
	if g.verifier != nil {
		g.verifier.follow(m)
	}
	log.Printf("Switched to %s mode", m)
	return nil
}
