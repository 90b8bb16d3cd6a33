package store

import "sync"

// flightCall is one in-flight run of a guarded operation.
type flightCall struct {
	done chan struct{}
	err  error
}

// flight serializes a reconciliation operation: while a run is in flight,
// later callers await that run and share its error instead of racing it on
// the final state replacement.
type flight struct {
	mu  sync.Mutex
	cur *flightCall
}

func (f *flight) do(fn func() error) error {
	f.mu.Lock()
	if call := f.cur; call != nil {
		f.mu.Unlock()
		<-call.done
		return call.err
	}
	call := &flightCall{done: make(chan struct{})}
	f.cur = call
	f.mu.Unlock()

	call.err = fn()

	f.mu.Lock()
	f.cur = nil
	f.mu.Unlock()
	close(call.done)
	return call.err
}
