package main

import (
	"log"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/prog3487/ComputeWave/waves"
)

// pathVerifier steps a shadow simulation on the other path with the same
// events as the main one and logs when the two fields diverge.
type pathVerifier struct {
	shadow     *waves.Simulation
	a, b       []float64
	mismatches int
	lastLog    time.Time
	disabled   bool
}

func newPathVerifier(sim *waves.Simulation, exec waves.Executor) (*pathVerifier, error) {
	v := &pathVerifier{shadow: waves.NewSimulation(exec)}
	if err := v.reset(sim); err != nil {
		return nil, err
	}
	return v, nil
}

func otherMode(m waves.Mode) waves.Mode {
	if m == waves.ModeParallel {
		return waves.ModeScalar
	}
	return waves.ModeParallel
}

// reset mirrors a freshly initialized sim.
func (v *pathVerifier) reset(sim *waves.Simulation) error {
	g := sim.Grid()
	if err := v.shadow.Init(g.RowCount(), g.ColumnCount(), g.SpatialStep(), g.TimeStep(), g.Speed(), g.Damping()); err != nil {
		return err
	}
	v.mismatches = 0
	v.disabled = false
	return v.shadow.SetMode(otherMode(sim.Mode()))
}

// follow keeps the shadow on the opposite path after sim switched to m.
// Both simulations carry their own field over, so they stay comparable.
func (v *pathVerifier) follow(m waves.Mode) {
	if err := v.shadow.SetMode(otherMode(m)); err != nil {
		v.disable(err)
	}
}

func (v *pathVerifier) disturb(imp waves.Impulse) {
	if v.disabled {
		return
	}
	if err := v.shadow.Disturb(imp.Row, imp.Col, imp.Magnitude); err != nil {
		v.disable(err)
	}
}

func (v *pathVerifier) step(sim *waves.Simulation, dt float32) {
	if v.disabled {
		return
	}
	if err := v.shadow.Step(dt); err != nil {
		v.disable(err)
		return
	}
	want, got := sim.Heights(), v.shadow.Heights()
	v.a = widen(v.a, want)
	v.b = widen(v.b, got)
	if floats.EqualApprox(v.a, v.b, verifyTolerance) {
		return
	}
	v.mismatches++
	if time.Since(v.lastLog) < verifyLogInterval {
		return
	}
	v.lastLog = time.Now()
	diff, at := waves.MaxAbsDiff(want, got)
	g := sim.Grid()
	log.Printf("Path mismatch #%d: %s vs %s differ by %g at row %d col %d",
		v.mismatches, sim.Mode(), v.shadow.Mode(), diff, at/g.ColumnCount(), at%g.ColumnCount())
}

func (v *pathVerifier) disable(err error) {
	v.disabled = true
	log.Printf("Path verification stopped: %v", err)
}

// widen copies src into dst as float64, reusing dst when large enough.
func widen(dst []float64, src []float32) []float64 {
	if cap(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}
