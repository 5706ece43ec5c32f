package gqlhttp

import (
	"context"
	"sync"
)

type (
	// tracker keys in-flight exchanges by cancellation tag. Untagged
	// exchanges are never registered.
	tracker struct {
		mu      sync.Mutex
		pending map[CancelTag][]*inflightCall
	}

	inflightCall struct {
		tag    CancelTag
		cancel context.CancelFunc

		mu   sync.Mutex
		done bool
	}
)

func newTracker() *tracker {
	return &tracker{pending: make(map[CancelTag][]*inflightCall)}
}

func (t *tracker) register(tag CancelTag, cancel context.CancelFunc) *inflightCall {
	call := &inflightCall{tag: tag, cancel: cancel}
	t.mu.Lock()
	t.pending[tag] = append(t.pending[tag], call)
	t.mu.Unlock()
	return call
}

func (t *tracker) cancel(tag CancelTag) {
	t.mu.Lock()
	calls := t.pending[tag]
	delete(t.pending, tag)
	t.mu.Unlock()
	for _, call := range calls {
		if call.finish() {
			call.cancel()
		}
	}
}

func (t *tracker) remove(call *inflightCall) {
	t.mu.Lock()
	defer t.mu.Unlock()
	calls := t.pending[call.tag]
	for i := range calls {
		if calls[i] == call {
			t.pending[call.tag] = append(calls[:i], calls[i+1:]...)
			break
		}
	}
	if len(t.pending[call.tag]) == 0 {
		delete(t.pending, call.tag)
	}
}

// finish transitions the call to done exactly once. The side that wins the
// transition owns the next step: the dispatcher delivers the outcome, a
// cancel suppresses it.
func (call *inflightCall) finish() bool {
	call.mu.Lock()
	defer call.mu.Unlock()
	if call.done {
		return false
	}
	call.done = true
	return true
}
