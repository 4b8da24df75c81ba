package cancel

import "sync"

// Token is a shared fresh/stale flag used to abandon in-flight background
// work. A token starts fresh; marking it stale tells every holder of the
// same underlying state that the work it guards has been superseded.
// Copies made with Clone observe the same transitions.
type Token struct {
	state *tokenState
}

type tokenState struct {
	mu    sync.Mutex
	stale bool
}

// NewToken returns a fresh token with its own underlying state.
func NewToken() Token {
	return Token{state: &tokenState{}}
}

// Clone returns a token sharing this token's state. The clone and the
// original observe the same fresh/stale transitions.
func (t Token) Clone() Token {
	return Token{state: t.state}
}

// IsStale reports whether the token has been invalidated.
func (t Token) IsStale() bool {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	return t.state.stale
}

// SetStale invalidates the token and every clone of it. Idempotent.
func (t Token) SetStale() {
	t.state.mu.Lock()
	t.state.stale = true
	t.state.mu.Unlock()
}

// SetFresh re-arms the token. Within one generation of work staleness is
// monotonic; re-arming is only done when a token is recycled across
// generations, as with the previewer's animation token.
func (t Token) SetFresh() {
	t.state.mu.Lock()
	t.state.stale = false
	t.state.mu.Unlock()
}
