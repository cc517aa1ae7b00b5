package safeexit

import (
	"log/slog"
	"reflect"
	"sync"
)

// ExitFunc is one registered cleanup step. Arguments an action needs are
// closure captures.
type ExitFunc func()

// entry pairs an exit function with the identity used for unregistration.
type entry struct {
	fn ExitFunc
	id uintptr
}

// Registry is an ordered collection of exit actions with an at-most-once
// drain. A process normally uses the package-level default instance through
// [Register] and [Unregister]; independent instances exist so tests can run
// against an isolated registry.
type Registry struct {
	// mu guards actions. Drain transfers ownership of the slice under the
	// lock so that exactly one caller runs the actions even when a signal
	// handler and a console-control thread trigger at the same time.
	mu      sync.Mutex
	actions []entry
	log     *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger means the process
// default logger at drain time.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{log: log}
}

// funcID returns the identity of fn: its code pointer. Closures created
// from the same function literal share one code pointer, so unregistering
// removes every entry wrapping the same function body regardless of the
// captured arguments; two actions over the same function cannot be told
// apart.
func funcID(fn ExitFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// Add appends fn and returns it unchanged. Insertion order is invocation
// order.
func (r *Registry) Add(fn ExitFunc) ExitFunc {
	r.mu.Lock()
	r.actions = append(r.actions, entry{fn: fn, id: funcID(fn)})
	r.mu.Unlock()
	return fn
}

// Remove deletes every action whose function matches fn. Removing a
// function that was never registered is a no-op.
func (r *Registry) Remove(fn ExitFunc) {
	id := funcID(fn)
	r.mu.Lock()
	kept := r.actions[:0]
	for _, e := range r.actions {
		if e.id != id {
			kept = append(kept, e)
		}
	}
	r.actions = kept
	r.mu.Unlock()
}

// Len reports the number of registered actions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}

// Drain runs every registered action once, in registration order, and
// leaves the registry empty. Exactly one caller performs the run: the slice
// is taken over under the lock, so a trigger racing with another (or firing
// again after the first completed) observes an empty registry and returns
// immediately. A panicking action is logged and does not stop the actions
// after it.
func (r *Registry) Drain() {
	r.mu.Lock()
	actions := r.actions
	r.actions = nil
	r.mu.Unlock()

	for _, e := range actions {
		r.run(e.fn)
	}
}

// run invokes one action, converting a panic into a log line so cleanup
// stays best-effort.
func (r *Registry) run(fn ExitFunc) {
	defer func() {
		if v := recover(); v != nil {
			r.logger().Error("exit function panicked", "error", v)
		}
	}()
	fn()
}

func (r *Registry) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return slog.Default()
}
