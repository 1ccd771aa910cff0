package waves

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MinGridSize is the smallest row or column count supporting the interior
// stencil.
const MinGridSize = 3

// disturbMargin is the number of cells on each side of the grid that a
// disturbance may not target: row and column must satisfy margin < i < n-margin.
const disturbMargin = 2

// Grid holds the immutable topology of the simulated lattice: dimensions,
// spacing, derived coefficients and the fixed per-vertex plane coordinates
// and texture coordinates. Heights live in the steppers.
type Grid struct {
	rows, cols int
	dx, dt     float32
	speed      float32
	damping    float32
	consts     Constants
	positions  []mgl32.Vec3
	tex        []mgl32.Vec2
}

// NewGrid returns an initialized grid.
func NewGrid(rows, cols int, dx, dt, speed, damping float32) (*Grid, error) {
	g := &Grid{}
	if err := g.Init(rows, cols, dx, dt, speed, damping); err != nil {
		return nil, err
	}
	return g, nil
}

// Init (re)builds the grid. On failure the grid is left unchanged.
func (g *Grid) Init(rows, cols int, dx, dt, speed, damping float32) error {
	if rows < MinGridSize || cols < MinGridSize {
		return fmt.Errorf("grid %dx%d smaller than %dx%d: %w", rows, cols, MinGridSize, MinGridSize, ErrInvalidArgument)
	}
	if dx <= 0 || dt <= 0 {
		return fmt.Errorf("spatial step %g and time step %g must be positive: %w", dx, dt, ErrInvalidArgument)
	}

	g.rows, g.cols = rows, cols
	g.dx, g.dt = dx, dt
	g.speed, g.damping = speed, damping
	g.consts = NewConstants(dx, dt, speed, damping)

	// In case Init is called again.
	g.positions, g.tex = nil, nil
	g.positions = make([]mgl32.Vec3, rows*cols)
	g.tex = make([]mgl32.Vec2, rows*cols)

	halfWidth := float32(cols-1) * dx * 0.5
	halfDepth := float32(rows-1) * dx * 0.5
	du := 1 / float32(cols-1)
	dv := 1 / float32(rows-1)
	for i := 0; i < rows; i++ {
		z := halfDepth - float32(i)*dx
		for j := 0; j < cols; j++ {
			x := -halfWidth + float32(j)*dx
			g.positions[i*cols+j] = mgl32.Vec3{x, 0, z}
			g.tex[i*cols+j] = mgl32.Vec2{float32(j) * du, float32(i) * dv}
		}
	}
	return nil
}

func (g *Grid) RowCount() int    { return g.rows }
func (g *Grid) ColumnCount() int { return g.cols }
func (g *Grid) VertexCount() int { return g.rows * g.cols }

// TriangleCount reports two triangles per grid cell.
func (g *Grid) TriangleCount() int {
	if g.rows == 0 {
		return 0
	}
	return (g.rows - 1) * (g.cols - 1) * 2
}

// Constants returns the coefficients derived by the last Init.
func (g *Grid) Constants() Constants { return g.consts }

// TimeStep returns the fixed simulation step in seconds.
func (g *Grid) TimeStep() float32 { return g.dt }

// SpatialStep returns the distance between adjacent vertices.
func (g *Grid) SpatialStep() float32 { return g.dx }

// Index returns the row-major vertex index of (row, col).
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// position returns the fixed plane position of vertex i with the given height.
func (g *Grid) position(i int, height float32) mgl32.Vec3 {
	p := g.positions[i]
	p[1] = height
	return p
}

func (g *Grid) checkIndex(i int) error {
	if i < 0 || i >= g.VertexCount() {
		return fmt.Errorf("vertex %d not in [0, %d): %w", i, g.VertexCount(), ErrOutOfRange)
	}
	return nil
}

// CanDisturb reports whether (row, col) is far enough from the boundary for
// the disturbance footprint to stay interior.
func (g *Grid) CanDisturb(row, col int) bool {
	return row > disturbMargin && row < g.rows-disturbMargin &&
		col > disturbMargin && col < g.cols-disturbMargin
}

func (g *Grid) checkDisturb(row, col int) error {
	if !g.CanDisturb(row, col) {
		return fmt.Errorf("disturb (%d,%d) outside (%d..%d, %d..%d): %w",
			row, col, disturbMargin, g.rows-disturbMargin, disturbMargin, g.cols-disturbMargin, ErrPreconditionViolation)
	}
	return nil
}

// Indices returns the triangle list of the grid, six indices per cell.
func (g *Grid) Indices() []uint32 {
	indices := make([]uint32, 0, 3*g.TriangleCount())
	n := uint32(g.cols)
	for i := uint32(0); i < uint32(g.rows-1); i++ {
		for j := uint32(0); j < n-1; j++ {
			indices = append(indices,
				i*n+j, i*n+j+1, (i+1)*n+j,
				(i+1)*n+j, i*n+j+1, (i+1)*n+j+1,
			)
		}
	}
	return indices
}

// Speed returns the wave speed passed to Init.
func (g *Grid) Speed() float32 { return g.speed }

// Damping returns the damping passed to Init.
func (g *Grid) Damping() float32 { return g.damping }
