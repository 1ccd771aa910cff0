package waves

// Constants holds the precomputed finite difference coefficients.
type Constants struct {
	K1, K2, K3 float32
}

// NewConstants derives the recurrence coefficients from the spatial step,
// time step, wave speed and damping.
func NewConstants(dx, dt, speed, damping float32) Constants {
	d := damping*dt + 2
	e := (speed * speed) * (dt * dt) / (dx * dx)
	return Constants{
		K1: (damping*dt - 2) / d,
		K2: (4 - 8*e) / d,
		K3: (2 * e) / d,
	}
}

// Next returns the new height of a cell from its previous height, its
// current height and the sum of its four current axis neighbours. Both
// steppers call it so their results stay identical.
func (c Constants) Next(prev, center, neighbors float32) float32 {
	return c.K1*prev + c.K2*center + c.K3*neighbors
}

// neighborSum adds the four axis neighbours of idx in a row-major buffer,
// in the order below, above, right, left.
func neighborSum(curr []float32, idx, cols int) float32 {
	return curr[idx+cols] + curr[idx-cols] + curr[idx+1] + curr[idx-1]
}
