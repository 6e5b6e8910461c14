package parallel

import (
	"runtime"
	"sync"
)

// Pool runs jobs on a fixed number of goroutines. With a single worker jobs run inline
// on the caller's goroutine.
type Pool struct {
	wg    sync.WaitGroup
	work  chan func()
	close func()
}

// Start launches numWorkers workers, or GOMAXPROCS workers when numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

// Do schedules f, blocking while every worker is busy and the queue is full.
// It must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and blocks until the scheduled ones are done.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
