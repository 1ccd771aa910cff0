package waves

type gridOffset struct {
	drow, dcol int
	weight     float32
}

// disturbFootprint lists the cells touched by a disturbance relative to its
// centre and the fraction of the magnitude each receives.
var disturbFootprint = precomputeDisturbFootprint()

func precomputeDisturbFootprint() []gridOffset {
	footprint := make([]gridOffset, 0, 5)
	footprint = append(footprint, gridOffset{weight: 1})
	for _, o := range [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
		footprint = append(footprint, gridOffset{drow: o[0], dcol: o[1], weight: 0.5})
	}
	return footprint
}

// applyImpulse adds the share of magnitude for footprint cell t to curr.
func applyImpulse(curr []float32, cols int, imp Impulse, t int) {
	o := disturbFootprint[t]
	idx := (imp.Row+o.drow)*cols + imp.Col + o.dcol
	curr[idx] += o.weight * imp.Magnitude
}

// footprintIndices returns the buffer indices touched by imp.
func footprintIndices(cols int, imp Impulse) [5]int {
	var idx [5]int
	for t, o := range disturbFootprint {
		idx[t] = (imp.Row+o.drow)*cols + imp.Col + o.dcol
	}
	return idx
}
