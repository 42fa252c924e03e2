package view

import (
	"context"
	"log"
	"sync"
)

// FetchFunc loads the data for one route parameter. It must honour ctx cancellation.
type FetchFunc[P comparable, T any] func(ctx context.Context, p P) (T, error)

// Options configures a Controller.
type Options[P comparable, T any, V any] struct {
	Name   string
	Fetch  FetchFunc[P, T]
	Derive func(T) V // pure; runs once per successful fetch
	// OnTransition is called for every committed state, in order, with the controller
	// lock held. It must not call back into the controller.
	OnTransition func(p P, s State[T, V])
}

// Controller owns the lifecycle of one navigable view. Only the most recent trigger
// may change its state; earlier in-flight fetches are cancelled and their results dropped.
type Controller[P comparable, T any, V any] struct {
	name         string
	fetch        FetchFunc[P, T]
	derive       func(T) V
	onTransition func(P, State[T, V])

	mu       sync.Mutex
	state    State[T, V]
	param    P
	hasParam bool
	gen      uint64
	cancel   context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

// New creates an Idle controller. Fetch and Derive are required.
func New[P comparable, T any, V any](opts Options[P, T, V]) *Controller[P, T, V] {
	if opts.Fetch == nil || opts.Derive == nil {
		panic("view: Fetch and Derive are required")
	}
	return &Controller[P, T, V]{
		name:         opts.Name,
		fetch:        opts.Fetch,
		derive:       opts.Derive,
		onTransition: opts.OnTransition,
	}
}

// Name returns the view name given at construction.
func (c *Controller[P, T, V]) Name() string { return c.name }

// Navigate sets the route parameter. A first or changed parameter starts a fetch;
// the same parameter again is a no-op.
func (c *Controller[P, T, V]) Navigate(p P) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.hasParam && c.param == p {
		return
	}
	c.param, c.hasParam = p, true
	c.startLocked()
}

// Refresh re-fetches the current parameter. No-op before the first Navigate or after Close.
func (c *Controller[P, T, V]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.hasParam {
		return
	}
	c.startLocked()
}

// State returns the current state.
func (c *Controller[P, T, V]) State() State[T, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ViewModel returns the cached view-model of the current Success, or nil.
func (c *Controller[P, T, V]) ViewModel() *V {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ViewModel
}

// Param returns the current route parameter, if any.
func (c *Controller[P, T, V]) Param() (P, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.param, c.hasParam
}

// Close cancels outstanding work and releases all held state. Later calls do nothing.
func (c *Controller[P, T, V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	var zero P
	c.param, c.hasParam = zero, false
	c.state = State[T, V]{}
}

// Wait blocks until every fetch started so far has returned.
func (c *Controller[P, T, V]) Wait() {
	c.wg.Wait()
}

func (c *Controller[P, T, V]) startLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.commitLocked(State[T, V]{Status: StatusLoading})

	c.wg.Add(1)
	go c.run(ctx, c.gen, c.param)
}

func (c *Controller[P, T, V]) run(ctx context.Context, gen uint64, p P) {
	defer c.wg.Done()
	data, err := c.fetch(ctx, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		log.Printf("[INFO] view %s: dropped result of superseded fetch for %v", c.name, p)
		return
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		log.Printf("[WARN] view %s: fetch %v failed: %v", c.name, p, err)
		c.commitLocked(State[T, V]{Status: StatusError, Err: err})
		return
	}
	vm := c.derive(data)
	c.commitLocked(State[T, V]{Status: StatusSuccess, Data: data, ViewModel: &vm})
}

func (c *Controller[P, T, V]) commitLocked(s State[T, V]) {
	c.state = s
	if c.onTransition != nil {
		c.onTransition(c.param, s)
	}
}
