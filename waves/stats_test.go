package waves

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	st := Summarize([]float32{3, -4, 0, 0})
	assert.Equal(t, float32(-4), st.Min)
	assert.Equal(t, float32(3), st.Max)
	assert.InDelta(t, 2.5, st.RMS, 1e-6)

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestMaxAbsDiff(t *testing.T) {
	d, at := MaxAbsDiff([]float32{1, 2, 3}, []float32{1, 2.5, 2})
	assert.Equal(t, float32(1), d)
	assert.Equal(t, 2, at)

	_, at = MaxAbsDiff([]float32{1}, []float32{1})
	assert.Equal(t, -1, at)
}

func TestWriteHeights(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeights(&buf, []float32{0, 1.5, -0.25, 2}, 2))
	assert.Equal(t, "0.000000 1.500000\n-0.250000 2.000000\n", buf.String())
}
