package engine

import (
	"fmt"
	"time"
)

type evalOutcome struct {
	result EvalResult
	err    error
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout <= 0 {
		return DefaultTimeout
	}
	return e.Timeout
}

// wait blocks for the outcome of evaluation gen. On timeout the
// goroutine keeps running; its result is dropped because nothing reads
// ch again. A result that arrives after a newer Evaluate call began is
// discarded as superseded.
func (e *Engine) wait(ch <-chan evalOutcome, gen uint64) (EvalResult, error) {
	limit := e.timeout()
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case out := <-ch:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()
		if gen != current {
			return EvalResult{}, ErrSuperseded
		}
		return out.result, out.err
	case <-timer.C:
		return EvalResult{}, fmt.Errorf("%w after %s", ErrTimeout, limit)
	}
}
