// Package cleanup collects hooks that must run before the process exits,
// such as closing the JSONL log file.
package cleanup

import (
	"errors"
	"fmt"
	"sync"
)

// Stack runs its hooks last-in, first-out. The zero value is ready to use.
type Stack struct {
	mu    sync.Mutex
	hooks []func() error
}

// Push adds hook. Nil hooks are ignored.
func (s *Stack) Push(hook func() error) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

// Run empties the stack and runs every hook, even after one fails.
func (s *Stack) Run() error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup failed: %w", errors.Join(errs...))
}

var process Stack

// Register adds a process-exit hook.
func Register(hook func() error) { process.Push(hook) }

// RunAll runs the process-exit hooks.
func RunAll() error { return process.Run() }
