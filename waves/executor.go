package waves

import "fmt"

// GroupSize is the edge length of a square work-group, in threads.
const GroupSize = 16

// Kernel identifies a compute program understood by every Executor.
type Kernel int

const (
	// KernelWave computes Next from Prev and Curr for every cell, writing
	// zero at border cells.
	KernelWave Kernel = iota
	// KernelDisturb adds Impulse to Curr; thread t handles footprint cell t.
	KernelDisturb
)

func (k Kernel) String() string {
	switch k {
	case KernelWave:
		return "wave"
	case KernelDisturb:
		return "disturb"
	}
	return fmt.Sprintf("kernel(%d)", int(k))
}

// Launch describes one kernel dispatch over a 2-D extent of work-groups.
// Thread (x, y) of the extent maps to column x and row y.
type Launch struct {
	Kernel           Kernel
	GroupsX, GroupsY int
	Rows, Cols       int
	Consts           Constants
	Prev, Curr, Next []float32
	Impulse          Impulse
}

// Executor runs kernels data-parallel. Dispatch returns only after every
// thread of the launch has finished.
type Executor interface {
	Dispatch(l *Launch) error
	Name() string
	Close() error
}

// groupsFor returns the number of work-groups needed to cover n threads.
func groupsFor(n int) int {
	return (n + GroupSize - 1) / GroupSize
}

// validate checks the buffers referenced by the launch against its grid.
func (l *Launch) validate() error {
	size := l.Rows * l.Cols
	switch l.Kernel {
	case KernelWave:
		if len(l.Prev) != size || len(l.Curr) != size || len(l.Next) != size {
			return fmt.Errorf("unexpected field buffer size (want %d)", size)
		}
	case KernelDisturb:
		if len(l.Curr) != size {
			return fmt.Errorf("unexpected current buffer size (want %d)", size)
		}
	default:
		return fmt.Errorf("unknown %v", l.Kernel)
	}
	return nil
}

// run executes thread (x, y) of the launch on the host. Every Go executor
// shares this body so the parallel path computes exactly what the scalar
// path does.
func (l *Launch) run(x, y int) {
	switch l.Kernel {
	case KernelWave:
		if x >= l.Cols || y >= l.Rows {
			return
		}
		idx := y*l.Cols + x
		if x == 0 || y == 0 || x == l.Cols-1 || y == l.Rows-1 {
			l.Next[idx] = 0
			return
		}
		l.Next[idx] = l.Consts.Next(l.Prev[idx], l.Curr[idx], neighborSum(l.Curr, idx, l.Cols))
	case KernelDisturb:
		t := y*GroupSize + x
		if t >= len(disturbFootprint) {
			return
		}
		applyImpulse(l.Curr, l.Cols, l.Impulse, t)
	}
}
