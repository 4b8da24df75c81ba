package proc

import "sync"

// Registry records the process group of the currently running external
// previewer. At most one external previewer runs at a time, process-wide;
// the previewer kills the recorded group before starting the next one.
//
// Construct one Registry in the application and pass it to every consumer;
// it is deliberately not a package global.
type Registry struct {
	mu        sync.Mutex
	pgid      int
	terminate func(pgid int)
}

// NewRegistry returns an empty registry using the platform group terminator.
func NewRegistry() *Registry {
	return &Registry{terminate: terminateGroup}
}

// Record stores pgid as the running previewer group, replacing any previous
// record without signaling it.
func (r *Registry) Record(pgid int) {
	r.mu.Lock()
	r.pgid = pgid
	r.mu.Unlock()
}

// Clear forgets the recorded group without signaling it.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.pgid = 0
	r.mu.Unlock()
}

// Current returns the recorded group id, or zero if none is running.
func (r *Registry) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pgid
}

// Kill terminates the recorded process group, if any. The record is cleared
// before any signal is sent, so a racing second Kill never signals the same
// group twice. Signaling happens on a helper goroutine: SIGTERM, a short
// grace period, then SIGKILL for anything that ignored the first signal;
// the caller is never blocked on subprocess teardown.
func (r *Registry) Kill() {
	r.mu.Lock()
	pgid := r.pgid
	r.pgid = 0
	terminate := r.terminate
	r.mu.Unlock()

	if pgid == 0 {
		return
	}
	go terminate(pgid)
}
