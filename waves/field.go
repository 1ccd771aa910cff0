package waves

// Buffer roles. A two-role field only uses rolePrev and roleCurr.
const (
	rolePrev = iota
	roleCurr
	roleNext
)

// field stores the solution buffers of one stepper together with the role
// each buffer currently plays. Rotating roles swaps indices, never data.
type field struct {
	bufs  [3][]float32
	roles [3]int
	count int
}

// newField allocates count (2 or 3) zeroed buffers of size cells each.
func newField(size, count int) *field {
	f := &field{count: count, roles: [3]int{0, 1, 2}}
	for i := 0; i < count; i++ {
		f.bufs[i] = make([]float32, size)
	}
	return f
}

func (f *field) prev() []float32 { return f.bufs[f.roles[rolePrev]] }
func (f *field) curr() []float32 { return f.bufs[f.roles[roleCurr]] }

// next returns nil for a two-role field.
func (f *field) next() []float32 {
	if f.count < 3 {
		return nil
	}
	return f.bufs[f.roles[roleNext]]
}

// rotate advances the roles: with three buffers previous takes current,
// current takes next and next takes the old previous; with two buffers
// previous and current swap.
func (f *field) rotate() {
	r := &f.roles
	if f.count < 3 {
		r[rolePrev], r[roleCurr] = r[roleCurr], r[rolePrev]
		return
	}
	r[rolePrev], r[roleCurr], r[roleNext] = r[roleCurr], r[roleNext], r[rolePrev]
}

// load copies heights into the current buffer and zeroes every other buffer.
func (f *field) load(heights []float32) {
	curr := f.curr()
	copy(curr, heights)
	for i := 0; i < f.count; i++ {
		if i == f.roles[roleCurr] {
			continue
		}
		clear(f.bufs[i])
	}
}

// release drops the buffers so their storage can be collected.
func (f *field) release() {
	for i := range f.bufs {
		f.bufs[i] = nil
	}
	f.count = 0
}
