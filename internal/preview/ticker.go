package preview

import (
	"sync"
	"time"
)

const tickInterval = 100 * time.Millisecond

// Ticker drives the loading indicator while a slow preview builds. It is
// deliberately independent of the cancellation token: the indicator keeps
// animating even while a producer is blocked in a decode call and cannot
// reach a checkpoint.
type Ticker struct {
	stop chan struct{}
	once sync.Once
}

// StartTicker begins invoking notify at the animation interval until Stop.
func StartTicker(notify func()) *Ticker {
	t := &Ticker{stop: make(chan struct{})}
	go func() {
		tick := time.NewTicker(tickInterval)
		defer tick.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tick.C:
				notify()
			}
		}
	}()
	return t
}

// Stop ends the indicator. Idempotent.
func (t *Ticker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

var tickFrames = []string{"|", "/", "-", "\\"}

// tickFrame returns the indicator glyph for the given tick count.
func tickFrame(n int) string {
	return tickFrames[n%len(tickFrames)]
}
