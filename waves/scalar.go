package waves

// ScalarStepper updates the field sequentially with two buffers, writing the
// new solution over the previous one in place and then swapping roles.
type ScalarStepper struct {
	grid  *Grid
	field *field
	clock stepClock
}

// NewScalarStepper allocates a zeroed two-buffer field for g.
func NewScalarStepper(g *Grid) *ScalarStepper {
	return &ScalarStepper{
		grid:  g,
		field: newField(g.VertexCount(), 2),
		clock: stepClock{dt: g.TimeStep()},
	}
}

func (s *ScalarStepper) Name() string { return "scalar" }

// Step accumulates elapsed and, once a full time step has built up, updates
// every interior vertex. Border vertices keep a height of zero.
func (s *ScalarStepper) Step(elapsed float32) error {
	if !s.clock.advance(elapsed) {
		return nil
	}
	rows, cols := s.grid.rows, s.grid.cols
	c := s.grid.consts
	prev, curr := s.field.prev(), s.field.curr()
	for i := 1; i < rows-1; i++ {
		for j := 1; j < cols-1; j++ {
			// prev[idx] is not read again once overwritten, so the
			// update can happen in place.
			idx := i*cols + j
			prev[idx] = c.Next(prev[idx], curr[idx], neighborSum(curr, idx, cols))
		}
	}
	s.field.rotate()
	s.clock.reset()
	return nil
}

// Disturb adds an impulse to the current buffer.
func (s *ScalarStepper) Disturb(row, col int, magnitude float32) error {
	if err := s.grid.checkDisturb(row, col); err != nil {
		return err
	}
	imp := Impulse{Row: row, Col: col, Magnitude: magnitude}
	curr := s.field.curr()
	for t := range disturbFootprint {
		applyImpulse(curr, s.grid.cols, imp, t)
	}
	return nil
}

func (s *ScalarStepper) Heights() []float32 { return s.field.curr() }

// Load replaces the current field with heights and clears the previous one.
func (s *ScalarStepper) Load(heights []float32) { s.field.load(heights) }

func (s *ScalarStepper) release() { s.field.release() }
