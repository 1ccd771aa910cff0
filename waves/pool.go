package waves

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// workGroup is the (x, y) coordinate of a work-group inside a launch extent.
type workGroup struct{ x, y int }

// workerBatch collects the work-groups assigned to one goroutine.
type workerBatch struct {
	groups []workGroup
}

// PoolExecutor runs kernels on a bounded set of goroutines. Work-groups are
// spread round robin across workers and Dispatch joins all of them before
// returning.
type PoolExecutor struct {
	workers int
	batches []workerBatch
	extentX int
	extentY int
}

// NewPoolExecutor returns an executor using up to workers goroutines per
// dispatch. A non-positive count selects runtime.NumCPU.
func NewPoolExecutor(workers int) *PoolExecutor {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &PoolExecutor{workers: workers}
}

func (p *PoolExecutor) Name() string { return fmt.Sprintf("goroutines x%d", p.workers) }

func (p *PoolExecutor) Close() error { return nil }

// Workers returns the goroutine limit.
func (p *PoolExecutor) Workers() int { return p.workers }

// Dispatch runs every thread of l. A kernel panic is reported as an error
// after the remaining workers have finished. Dispatch is not safe for
// concurrent use.
func (p *PoolExecutor) Dispatch(l *Launch) error {
	if err := l.validate(); err != nil {
		return err
	}
	batches := p.assign(l.GroupsX, l.GroupsY)

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range batches {
		batch := &batches[i]
		if len(batch.groups) == 0 {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%v kernel panicked: %v", l.Kernel, r)
				}
			}()
			for _, wg := range batch.groups {
				runGroup(l, wg)
			}
			return nil
		})
	}
	return g.Wait()
}

// runGroup executes the GroupSize x GroupSize threads of one work-group.
func runGroup(l *Launch, wg workGroup) {
	x0, y0 := wg.x*GroupSize, wg.y*GroupSize
	for ty := 0; ty < GroupSize; ty++ {
		for tx := 0; tx < GroupSize; tx++ {
			l.run(x0+tx, y0+ty)
		}
	}
}

// assign distributes the work-groups of an extent across workers in round
// robin fashion. The result is cached while the extent does not change.
func (p *PoolExecutor) assign(groupsX, groupsY int) []workerBatch {
	if p.batches != nil && p.extentX == groupsX && p.extentY == groupsY {
		return p.batches
	}
	total := groupsX * groupsY
	count := p.workers
	if count > total {
		count = total
	}
	if count < 1 {
		count = 1
	}
	batches := make([]workerBatch, count)
	idx := 0
	for y := 0; y < groupsY; y++ {
		for x := 0; x < groupsX; x++ {
			b := &batches[idx%count]
			b.groups = append(b.groups, workGroup{x: x, y: y})
			idx++
		}
	}
	p.batches, p.extentX, p.extentY = batches, groupsX, groupsY
	return batches
}
