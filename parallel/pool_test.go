package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 8} {
		p := Start(workers)
		if p.Workers() < 1 {
			t.Fatalf("Start(%d): got %d workers", workers, p.Workers())
		}

		var done atomic.Int64
		for range 1000 {
			p.Do(func() { done.Add(1) })
		}
		p.Wait()

		if got := done.Load(); got != 1000 {
			t.Errorf("Start(%d): %d tasks ran, expected 1000", workers, got)
		}
	}
}

func TestSingleWorkerRunsInline(t *testing.T) {
	p := Start(1)
	ran := false
	p.Do(func() { ran = true })
	if !ran {
		t.Errorf("task did not run before Do returned")
	}
	p.Wait()
	p.Wait()
}
