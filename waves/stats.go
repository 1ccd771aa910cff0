package waves

import "github.com/chewxy/math32"

// Stats summarises a height field.
type Stats struct {
	Min, Max float32
	RMS      float32
}

// Summarize returns the extremes and root mean square of heights.
func Summarize(heights []float32) Stats {
	if len(heights) == 0 {
		return Stats{}
	}
	st := Stats{Min: heights[0], Max: heights[0]}
	var sum float32
	for _, v := range heights {
		st.Min = math32.Min(st.Min, v)
		st.Max = math32.Max(st.Max, v)
		sum += v * v
	}
	st.RMS = math32.Sqrt(sum / float32(len(heights)))
	return st
}

// MaxAbsDiff returns the largest absolute difference between a and b and
// its index. Both slices must have the same length.
func MaxAbsDiff(a, b []float32) (float32, int) {
	var worst float32
	at := -1
	for i := range a {
		if d := math32.Abs(a[i] - b[i]); d > worst {
			worst, at = d, i
		}
	}
	return worst, at
}
