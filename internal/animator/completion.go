package animator

import "sync"

// Completion resolves exactly once, when an animation reaches its target or
// when something newer takes over the axis.
type Completion struct {
	mu         sync.Mutex
	done       chan struct{}
	finished   bool
	superseded bool
	callbacks  []func(superseded bool)
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolved returns a completion that is already done
func Resolved() *Completion {
	c := newCompletion()
	c.resolve(false)
	return c
}

// All resolves once every given completion has. The joined completion counts
// as superseded when any part was.
func All(cs ...*Completion) *Completion {
	joined := newCompletion()
	remaining := len(cs)
	if remaining == 0 {
		joined.resolve(false)
		return joined
	}

	var mu sync.Mutex
	anySuperseded := false
	for _, c := range cs {
		c.Then(func(superseded bool) {
			mu.Lock()
			remaining--
			anySuperseded = anySuperseded || superseded
			last := remaining == 0
			mu.Unlock()
			if last {
				joined.resolve(anySuperseded)
			}
		})
	}
	return joined
}

// Done is closed when the completion resolves
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Finished reports whether the completion has resolved
func (c *Completion) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Superseded reports whether the animation was cut short
func (c *Completion) Superseded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.superseded
}

// Then registers fn to run on resolution. fn runs immediately when the
// completion has already resolved.
func (c *Completion) Then(fn func(superseded bool)) {
	c.mu.Lock()
	if c.finished {
		superseded := c.superseded
		c.mu.Unlock()
		fn(superseded)
		return
	}
	c.callbacks = append(c.callbacks, fn)
	c.mu.Unlock()
}

func (c *Completion) resolve(superseded bool) {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return
	}
	c.finished = true
	c.superseded = superseded
	callbacks := c.callbacks
	c.callbacks = nil
	close(c.done)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(superseded)
	}
}
