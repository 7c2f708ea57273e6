// Package parallel runs independent closures on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool is single use: after Wait no more work can be submitted.
type Pool struct {
	workers int
	wg      sync.WaitGroup
	work    chan func()
	stop    func()
}

// Start spawns workers goroutines. Values below 1 mean GOMAXPROCS.
// A pool of one worker runs every task inline on the caller's goroutine.
func Start(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{workers: workers, stop: func() {}}
	if workers == 1 {
		return p
	}

	p.work = make(chan func(), workers)
	for range workers {
		p.wg.Go(func() {
			for f := range p.work {
				f()
			}
		})
	}
	p.stop = sync.OnceFunc(func() { close(p.work) })

	return p
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do schedules f. It blocks while every worker is busy and the queue is full.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting work and blocks until queued tasks are done.
func (p *Pool) Wait() {
	p.stop()
	p.wg.Wait()
}
