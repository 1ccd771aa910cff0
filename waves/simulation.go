package waves

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which stepper advances the simulation.
type Mode int

const (
	ModeScalar Mode = iota
	ModeParallel
)

func (m Mode) String() string {
	switch m {
	case ModeScalar:
		return "scalar"
	case ModeParallel:
		return "parallel"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "scalar"/"cpu" and "parallel"/"gpu".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "scalar", "cpu":
		return ModeScalar, nil
	case "parallel", "gpu":
		return ModeParallel, nil
	}
	return 0, fmt.Errorf("unknown mode %q: %w", s, ErrInvalidArgument)
}

// Vertex is the renderer view of one grid vertex.
type Vertex struct {
	Pos mgl32.Vec3
	Tex mgl32.Vec2
}

// Simulation owns a grid and both steppers and routes every call to the
// stepper of the active mode. It is not safe for concurrent use; readers
// must access heights between calls to Step.
type Simulation struct {
	grid     *Grid
	scalar   *ScalarStepper
	parallel *ParallelStepper
	exec     Executor
	mode     Mode
}

// NewSimulation returns an uninitialized simulation whose parallel path
// dispatches to exec.
func NewSimulation(exec Executor) *Simulation {
	return &Simulation{exec: exec}
}

// Init (re)creates the grid and all solution buffers with zero heights.
// Buffers of a previous Init are released first. The active mode is kept.
func (s *Simulation) Init(rows, cols int, dx, dt, speed, damping float32) error {
	g, err := NewGrid(rows, cols, dx, dt, speed, damping)
	if err != nil {
		return err
	}
	s.release()
	s.grid = g
	s.scalar = NewScalarStepper(g)
	s.parallel = NewParallelStepper(g, s.exec)
	return nil
}

func (s *Simulation) release() {
	if s.scalar != nil {
		s.scalar.release()
		s.scalar = nil
	}
	if s.parallel != nil {
		s.parallel.release()
		s.parallel = nil
	}
	s.grid = nil
}

// Grid returns the current topology, or nil before Init.
func (s *Simulation) Grid() *Grid { return s.grid }

// Executor returns the backend of the parallel path.
func (s *Simulation) Executor() Executor { return s.exec }

// Mode returns the active mode.
func (s *Simulation) Mode() Mode { return s.mode }

// SetMode activates m. Switching copies the current heights into the
// newly active stepper and zeroes its other buffers; the accumulated time
// carries over.
func (s *Simulation) SetMode(m Mode) error {
	if m != ModeScalar && m != ModeParallel {
		return fmt.Errorf("unknown %v: %w", m, ErrInvalidArgument)
	}
	if m == s.mode {
		return nil
	}
	if s.grid != nil {
		switch m {
		case ModeScalar:
			s.scalar.Load(s.parallel.Heights())
			s.scalar.clock.t = s.parallel.clock.t
		case ModeParallel:
			s.parallel.Load(s.scalar.Heights())
			s.parallel.clock.t = s.scalar.clock.t
		}
	}
	s.mode = m
	return nil
}

// Stepper returns the stepper of the active mode, or nil before Init.
func (s *Simulation) Stepper() Stepper {
	if s.grid == nil {
		return nil
	}
	if s.mode == ModeParallel {
		return s.parallel
	}
	return s.scalar
}

// Step advances the active stepper by elapsed seconds.
func (s *Simulation) Step(elapsed float32) error {
	st := s.Stepper()
	if st == nil {
		return ErrNotInitialized
	}
	return st.Step(elapsed)
}

// Disturb adds an impulse through the active stepper.
func (s *Simulation) Disturb(row, col int, magnitude float32) error {
	st := s.Stepper()
	if st == nil {
		return ErrNotInitialized
	}
	return st.Disturb(row, col, magnitude)
}

func (s *Simulation) RowCount() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.RowCount()
}

func (s *Simulation) ColumnCount() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.ColumnCount()
}

func (s *Simulation) VertexCount() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.VertexCount()
}

func (s *Simulation) TriangleCount() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.TriangleCount()
}

// Heights returns the current buffer of the active stepper. See Stepper.
func (s *Simulation) Heights() []float32 {
	st := s.Stepper()
	if st == nil {
		return nil
	}
	return st.Heights()
}

// HeightAt returns the current height of vertex i.
func (s *Simulation) HeightAt(i int) (float32, error) {
	if s.grid == nil {
		return 0, ErrNotInitialized
	}
	if err := s.grid.checkIndex(i); err != nil {
		return 0, err
	}
	return s.Heights()[i], nil
}

// PositionAt returns vertex i as (x, height, z).
func (s *Simulation) PositionAt(i int) (mgl32.Vec3, error) {
	h, err := s.HeightAt(i)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return s.grid.position(i, h), nil
}

// TexCoordAt returns the fixed texture coordinate of vertex i.
func (s *Simulation) TexCoordAt(i int) (mgl32.Vec2, error) {
	if s.grid == nil {
		return mgl32.Vec2{}, ErrNotInitialized
	}
	if err := s.grid.checkIndex(i); err != nil {
		return mgl32.Vec2{}, err
	}
	return s.grid.tex[i], nil
}

// Vertices fills dst with every vertex position and texture coordinate,
// growing it when needed, and returns it.
func (s *Simulation) Vertices(dst []Vertex) []Vertex {
	n := s.VertexCount()
	if cap(dst) < n {
		dst = make([]Vertex, n)
	}
	dst = dst[:n]
	heights := s.Heights()
	for i := range dst {
		dst[i] = Vertex{Pos: s.grid.position(i, heights[i]), Tex: s.grid.tex[i]}
	}
	return dst
}
