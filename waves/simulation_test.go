package waves

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulation(t *testing.T, rows, cols int) *Simulation {
	t.Helper()
	s := NewSimulation(NewPoolExecutor(2))
	require.NoError(t, s.Init(rows, cols, 0.8, 0.03, 3.25, 0.4))
	return s
}

func TestSimulationNotInitialized(t *testing.T) {
	s := NewSimulation(NewPoolExecutor(1))

	assert.ErrorIs(t, s.Step(0.03), ErrNotInitialized)
	assert.ErrorIs(t, s.Disturb(4, 4, 1), ErrNotInitialized)
	_, err := s.HeightAt(0)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Zero(t, s.VertexCount())
	assert.Zero(t, s.TriangleCount())
	assert.Nil(t, s.Heights())
}

func TestSimulationInitRejectsSmallGrid(t *testing.T) {
	s := NewSimulation(NewPoolExecutor(1))
	assert.ErrorIs(t, s.Init(2, 8, 1, 0.03, 3.25, 0.4), ErrInvalidArgument)
}

func TestSimulationReinitialize(t *testing.T) {
	for _, mode := range []Mode{ModeScalar, ModeParallel} {
		t.Run(mode.String(), func(t *testing.T) {
			s := newTestSimulation(t, 10, 10)
			require.NoError(t, s.SetMode(mode))
			require.NoError(t, s.Disturb(4, 4, 2))
			require.NoError(t, s.Step(0.03))

			require.NoError(t, s.Init(6, 8, 1, 0.03, 3.25, 0.4))
			assert.Equal(t, 6, s.RowCount())
			assert.Equal(t, 8, s.ColumnCount())
			assert.Equal(t, 48, s.VertexCount())
			assert.Equal(t, 70, s.TriangleCount())
			assert.Equal(t, mode, s.Mode())
			require.Len(t, s.Heights(), 48)
			for _, h := range s.Heights() {
				require.Zero(t, h)
			}
		})
	}
}

func TestSimulationAccessorsRange(t *testing.T) {
	s := newTestSimulation(t, 5, 6)

	for _, i := range []int{-1, 30, 31} {
		_, err := s.HeightAt(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = s.PositionAt(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = s.TexCoordAt(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	_, err := s.HeightAt(29)
	assert.NoError(t, err)
}

func TestSimulationPositionTracksHeight(t *testing.T) {
	s := newTestSimulation(t, 10, 10)
	require.NoError(t, s.Disturb(4, 4, 1.5))

	idx := s.Grid().Index(4, 4)
	p, err := s.PositionAt(idx)
	require.NoError(t, err)
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{-0.4, 1.5, 0.4}, 1e-5), "%v", p)
	assert.Equal(t, float32(1.5), p.Y())

	tex, err := s.TexCoordAt(idx)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/9, tex[0], 1e-6)
	assert.InDelta(t, 4.0/9, tex[1], 1e-6)

	verts := s.Vertices(nil)
	require.Len(t, verts, s.VertexCount())
	assert.Equal(t, p, verts[idx].Pos)
	assert.Equal(t, tex, verts[idx].Tex)
}

func TestSimulationModeSwitchKeepsField(t *testing.T) {
	s := newTestSimulation(t, 16, 16)
	require.NoError(t, s.Disturb(6, 7, 1))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Step(0.03))
	}
	want := append([]float32(nil), s.Heights()...)

	require.NoError(t, s.SetMode(ModeParallel))
	assert.Equal(t, ModeParallel, s.Mode())
	assert.Equal(t, want, s.Heights())

	// The newly active path restarts from a zero previous buffer.
	ref := NewScalarStepper(s.Grid())
	ref.Load(want)
	require.NoError(t, s.Step(0.03))
	require.NoError(t, ref.Step(0.03))
	assert.InDeltaSlice(t, ref.Heights(), s.Heights(), 1e-5)

	want = append(want[:0], s.Heights()...)
	require.NoError(t, s.SetMode(ModeScalar))
	assert.Equal(t, want, s.Heights())
}

func TestSimulationModeSwitchCarriesTime(t *testing.T) {
	s := newTestSimulation(t, 10, 10)
	require.NoError(t, s.Disturb(4, 4, 1))
	require.NoError(t, s.Step(0.02))
	before := append([]float32(nil), s.Heights()...)

	require.NoError(t, s.SetMode(ModeParallel))
	require.NoError(t, s.Step(0.02))
	assert.NotEqual(t, before, s.Heights())
}

func TestSimulationSetModeRejectsUnknown(t *testing.T) {
	s := newTestSimulation(t, 10, 10)
	assert.ErrorIs(t, s.SetMode(Mode(7)), ErrInvalidArgument)
	assert.Equal(t, ModeScalar, s.Mode())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"scalar": ModeScalar, "CPU": ModeScalar, "parallel": ModeParallel, "gpu": ModeParallel} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("quantum")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
