package async

import (
	"errors"
	"sync"

	"github.com/kaji-lab/finch/internal/cancel"
)

// ErrNotReady is returned by Get while the background computation is still
// running, or after the producer returned an error.
var ErrNotReady = errors.New("async: value not ready")

// Producer builds a value on a background goroutine. Producers must check
// the token before and after every blocking step and bail out with an error
// once it reports stale; a producer that never checks runs to completion
// uselessly and has its result discarded here instead.
type Producer[W any] func(tok cancel.Token) (W, error)

// Container runs a Producer off the UI goroutine and surfaces its result
// once ready. At most one computation is current per container; ChangeTo
// supersedes the previous one by marking its token stale, so exactly one
// result is ever surfaced: the latest generation's, or none.
type Container[W any] struct {
	mu     sync.Mutex
	value  *W
	err    error
	done   bool
	token  cancel.Token
	notify func()
}

// New starts producer immediately and returns the still-pending container.
// notify is invoked from the background goroutine once a current, fresh
// result has been stored; it must be safe to call concurrently.
func New[W any](producer Producer[W], notify func()) *Container[W] {
	c := &Container[W]{
		token:  cancel.NewToken(),
		notify: notify,
	}
	c.spawn(producer, c.token)
	return c
}

// ChangeTo abandons the current computation and starts a new one. The old
// token goes stale first, so an in-flight producer observes cancellation at
// its next checkpoint; even if it finishes anyway, its result is discarded
// because it no longer belongs to the current generation.
func (c *Container[W]) ChangeTo(producer Producer[W]) {
	c.mu.Lock()
	c.token.SetStale()
	c.token = cancel.NewToken()
	c.value = nil
	c.err = nil
	c.done = false
	tok := c.token
	c.mu.Unlock()

	c.spawn(producer, tok)
}

func (c *Container[W]) spawn(producer Producer[W], tok cancel.Token) {
	go func() {
		value, err := producer(tok.Clone())

		c.mu.Lock()
		// Two lines of defense against stale overwrites: the generation
		// must still be current, and its token must still be fresh.
		if c.token != tok || tok.IsStale() {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.err = err
		} else {
			c.value = &value
		}
		c.done = true
		notify := c.notify
		c.mu.Unlock()

		if notify != nil {
			notify()
		}
	}()
}

// Get returns the completed value, or ErrNotReady while the computation is
// pending, or the producer's error if it failed.
func (c *Container[W]) Get() (*W, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		return nil, ErrNotReady
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.value, nil
}

// Ready reports whether a value is available.
func (c *Container[W]) Ready() bool {
	_, err := c.Get()
	return err == nil
}

// Err returns the producer error, if the computation failed.
func (c *Container[W]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		return nil
	}
	return c.err
}

// SetStale invalidates the current computation without starting a new one.
func (c *Container[W]) SetStale() {
	c.mu.Lock()
	c.token.SetStale()
	c.mu.Unlock()
}

// IsStale reflects the container's current token.
func (c *Container[W]) IsStale() bool {
	c.mu.Lock()
	tok := c.token
	c.mu.Unlock()
	return tok.IsStale()
}

// Token returns the current generation's token.
func (c *Container[W]) Token() cancel.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
