package waves

import "fmt"

// ParallelStepper updates the field through an Executor using three
// buffers: the wave kernel reads previous and current and writes only next,
// after which the roles rotate.
type ParallelStepper struct {
	grid  *Grid
	field *field
	clock stepClock
	exec  Executor
}

// NewParallelStepper allocates a zeroed three-buffer field for g.
func NewParallelStepper(g *Grid, exec Executor) *ParallelStepper {
	return &ParallelStepper{
		grid:  g,
		field: newField(g.VertexCount(), 3),
		clock: stepClock{dt: g.TimeStep()},
		exec:  exec,
	}
}

func (s *ParallelStepper) Name() string { return "parallel" }

// Step accumulates elapsed and, once a full time step has built up,
// dispatches the wave kernel over the whole grid and rotates the buffers.
// If the dispatch fails the buffers and the time counter are left as they
// were before the call.
func (s *ParallelStepper) Step(elapsed float32) error {
	before := s.clock.t
	if !s.clock.advance(elapsed) {
		return nil
	}
	l := &Launch{
		Kernel:  KernelWave,
		GroupsX: groupsFor(s.grid.cols),
		GroupsY: groupsFor(s.grid.rows),
		Rows:    s.grid.rows,
		Cols:    s.grid.cols,
		Consts:  s.grid.consts,
		Prev:    s.field.prev(),
		Curr:    s.field.curr(),
		Next:    s.field.next(),
	}
	if err := s.exec.Dispatch(l); err != nil {
		s.clock.t = before
		return fmt.Errorf("%w: %s: %w", ErrExecutorFailure, s.exec.Name(), err)
	}
	s.field.rotate()
	s.clock.reset()
	return nil
}

// Disturb dispatches the disturb kernel against the current buffer. The
// touched cells are restored if the dispatch fails.
func (s *ParallelStepper) Disturb(row, col int, magnitude float32) error {
	if err := s.grid.checkDisturb(row, col); err != nil {
		return err
	}
	imp := Impulse{Row: row, Col: col, Magnitude: magnitude}
	curr := s.field.curr()
	cells := footprintIndices(s.grid.cols, imp)
	var saved [5]float32
	for t, idx := range cells {
		saved[t] = curr[idx]
	}
	l := &Launch{
		Kernel:  KernelDisturb,
		GroupsX: 1,
		GroupsY: 1,
		Rows:    s.grid.rows,
		Cols:    s.grid.cols,
		Curr:    curr,
		Impulse: imp,
	}
	if err := s.exec.Dispatch(l); err != nil {
		for t, idx := range cells {
			curr[idx] = saved[t]
		}
		return fmt.Errorf("%w: %s: %w", ErrExecutorFailure, s.exec.Name(), err)
	}
	return nil
}

func (s *ParallelStepper) Heights() []float32 { return s.field.curr() }

// Load replaces the current field with heights and clears previous and next.
func (s *ParallelStepper) Load(heights []float32) { s.field.load(heights) }

func (s *ParallelStepper) release() { s.field.release() }
