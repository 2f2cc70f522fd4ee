// Package testutil provides shared test doubles for the packages that
// depend on the shell execution primitive.
package testutil

import (
	"context"
	"sync"

	"github.com/oribarilan/plz/internal/shell"
)

// SpyRunner records every command it is asked to run instead of spawning
// anything. It implements shell.Runner.
type SpyRunner struct {
	mu       sync.Mutex
	commands []string

	// Output and ExitCode are returned from every Run call.
	Output   string
	ExitCode int
}

// Run implements shell.Runner.
func (s *SpyRunner) Run(ctx context.Context, command string, opts shell.Options) (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, command)
	return s.Output, s.ExitCode
}

// Commands returns the commands recorded so far, in call order.
func (s *SpyRunner) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}
