package waves

import "math/rand"

// Defaults for the stochastic disturbance schedule.
const (
	DefaultDisturbPeriod = 0.25
	DefaultMinMagnitude  = 1.0
	DefaultMaxMagnitude  = 2.0
	DefaultDisturbMargin = 5
)

// MagnitudeSource yields a modulation factor in [0, 1] for each impulse.
type MagnitudeSource interface {
	Next() float32
}

// Disturber schedules random impulses on a fixed real-time period.
type Disturber struct {
	Period       float64
	MinMagnitude float32
	MaxMagnitude float32
	// Margin keeps drawn rows and columns in [Margin, n-Margin).
	Margin int
	// Source, when set, scales the magnitude range instead of the random
	// generator.
	Source MagnitudeSource

	rng     *rand.Rand
	elapsed float64
}

// NewDisturber returns a disturber with the default schedule drawing from a
// generator seeded with seed.
func NewDisturber(seed int64) *Disturber {
	return &Disturber{
		Period:       DefaultDisturbPeriod,
		MinMagnitude: DefaultMinMagnitude,
		MaxMagnitude: DefaultMaxMagnitude,
		Margin:       DefaultDisturbMargin,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Tick accumulates elapsed seconds and returns an impulse for g once a full
// period has passed. It returns false when no impulse is due or when the
// grid has no legal target.
func (d *Disturber) Tick(elapsed float64, g *Grid) (Impulse, bool) {
	d.elapsed += elapsed
	if d.elapsed < d.Period {
		return Impulse{}, false
	}
	d.elapsed = 0
	return d.Draw(g)
}

// Draw returns a random legal impulse for g.
func (d *Disturber) Draw(g *Grid) (Impulse, bool) {
	rlo, rhi, ok := d.span(g.RowCount())
	if !ok {
		return Impulse{}, false
	}
	clo, chi, ok := d.span(g.ColumnCount())
	if !ok {
		return Impulse{}, false
	}
	imp := Impulse{
		Row: rlo + d.rng.Intn(rhi-rlo),
		Col: clo + d.rng.Intn(chi-clo),
	}
	var f float32
	if d.Source != nil {
		f = d.Source.Next()
	} else {
		f = d.rng.Float32()
	}
	imp.Magnitude = d.MinMagnitude + f*(d.MaxMagnitude-d.MinMagnitude)
	return imp, true
}

// span returns the half-open range of legal indices along a side of n
// vertices, honouring both the margin and the disturb precondition.
func (d *Disturber) span(n int) (lo, hi int, ok bool) {
	lo = d.Margin
	if lo < disturbMargin+1 {
		lo = disturbMargin + 1
	}
	hi = n - d.Margin
	if hi > n-disturbMargin {
		hi = n - disturbMargin
	}
	return lo, hi, hi > lo
}
