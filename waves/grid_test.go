package waves

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstants(t *testing.T) {
	dx, dt, speed, damping := 1.0, 0.03, 3.25, 0.4
	d := damping*dt + 2
	e := speed * speed * dt * dt / (dx * dx)

	c := NewConstants(float32(dx), float32(dt), float32(speed), float32(damping))
	assert.InDelta(t, (damping*dt-2)/d, c.K1, 1e-6)
	assert.InDelta(t, (4-8*e)/d, c.K2, 1e-6)
	assert.InDelta(t, 2*e/d, c.K3, 1e-6)
}

func TestGridInitRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		dx, dt     float32
	}{
		{"too few rows", 2, 10, 1, 0.03},
		{"too few columns", 10, 2, 1, 0.03},
		{"zero spatial step", 10, 10, 0, 0.03},
		{"negative time step", 10, 10, 1, -0.03},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.rows, tt.cols, tt.dx, tt.dt, 3.25, 0.4)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestGridInitFailureKeepsPreviousGrid(t *testing.T) {
	g, err := NewGrid(4, 5, 1, 0.03, 3.25, 0.4)
	require.NoError(t, err)

	require.Error(t, g.Init(1, 1, 1, 0.03, 3.25, 0.4))
	assert.Equal(t, 20, g.VertexCount())
}

func TestGridLayout(t *testing.T) {
	g, err := NewGrid(3, 4, 2, 0.03, 3.25, 0.4)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{-3, 0, 2}, g.positions[0])
	assert.Equal(t, mgl32.Vec3{3, 0, -2}, g.positions[11])
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, g.positions[g.Index(1, 1)])

	assert.Equal(t, mgl32.Vec2{0, 0}, g.tex[0])
	assert.Equal(t, mgl32.Vec2{1, 1}, g.tex[11])
	assert.InDelta(t, 1.0/3, g.tex[5][0], 1e-6)
	assert.InDelta(t, 0.5, g.tex[5][1], 1e-6)
}

func TestGridCountsAndIndices(t *testing.T) {
	g, err := NewGrid(3, 3, 1, 0.03, 3.25, 0.4)
	require.NoError(t, err)

	assert.Equal(t, 3, g.RowCount())
	assert.Equal(t, 3, g.ColumnCount())
	assert.Equal(t, 9, g.VertexCount())
	assert.Equal(t, 8, g.TriangleCount())

	indices := g.Indices()
	require.Len(t, indices, 3*g.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 3, 3, 1, 4}, indices[:6])
	assert.Equal(t, []uint32{4, 5, 7, 7, 5, 8}, indices[18:])
}

func TestGridCanDisturb(t *testing.T) {
	g, err := NewGrid(10, 10, 1, 0.03, 3.25, 0.4)
	require.NoError(t, err)

	assert.False(t, g.CanDisturb(2, 2))
	assert.False(t, g.CanDisturb(4, 8))
	assert.True(t, g.CanDisturb(3, 3))
	assert.True(t, g.CanDisturb(4, 4))
	assert.True(t, g.CanDisturb(7, 7))
}
