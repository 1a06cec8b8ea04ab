package views

import (
	"context"
	"sync"

	"traveling_help/internal/api"
)

// Phase is the lifecycle of a data-fetching view.
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	return [...]string{"idle", "loading", "ready", "failed"}[p]
}

// State is a snapshot of a Fetch.
type State[T any] struct {
	Phase   Phase
	Value   T
	Message string
	Kind    api.Kind
	// Unauthorized is set when the backend refused the session token.
	Unauthorized bool
}

// Fetch drives one backend call through Idle → Loading → Ready | Failed.
// Cancelling it, directly or through the parent context, returns it to
// Idle and turns a late result into a no-op.
type Fetch[T any] struct {
	mu     sync.Mutex
	state  State[T]
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Start issues call, cancelling any call still in flight.
func (f *Fetch[T]) Start(parent context.Context, call func(context.Context) api.Result[T]) {
	ctx, cancel := context.WithCancel(parent)

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	f.cancel = cancel
	f.done = make(chan struct{})
	done := f.done
	f.state = State[T]{Phase: Loading}
	f.mu.Unlock()

	go func() {
		defer close(done)
		res := call(ctx)
		f.settle(gen, ctx, res)
	}()

	go func() {
		select {
		case <-ctx.Done():
			f.abandon(gen)
		case <-done:
		}
	}()
}

func (f *Fetch[T]) settle(gen uint64, ctx context.Context, res api.Result[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	if ctx.Err() != nil {
		if f.state.Phase == Loading {
			f.state = State[T]{Phase: Idle}
		}
		return
	}
	if res.OK() {
		f.state = State[T]{Phase: Ready, Value: res.Value}
	} else {
		f.state = State[T]{Phase: Failed, Kind: res.Kind, Message: res.Message, Unauthorized: res.Unauthorized()}
	}
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Fetch[T]) abandon(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen || f.state.Phase != Loading {
		return
	}
	f.state = State[T]{Phase: Idle}
	f.cancel = nil
}

// Cancel abandons the call in flight, if any.
func (f *Fetch[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel == nil {
		return
	}
	f.cancel()
	f.cancel = nil
	if f.state.Phase == Loading {
		f.state = State[T]{Phase: Idle}
	}
}

// State returns the current snapshot.
func (f *Fetch[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Wait blocks until the current call settles or is abandoned.
func (f *Fetch[T]) Wait() State[T] {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()
	if done != nil {
		<-done
	}
	return f.State()
}

// Load runs call to completion under ctx and returns the final snapshot.
func Load[T any](ctx context.Context, call func(context.Context) api.Result[T]) State[T] {
	var f Fetch[T]
	f.Start(ctx, call)
	return f.Wait()
}
