// Package shutdown coordinates graceful teardown on SIGTERM/SIGINT.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Manager collects shutdown functions and runs them in reverse registration
// order once a termination signal arrives.
type Manager struct {
	mu      sync.Mutex
	funcs   []func(context.Context) error
	timeout time.Duration
	done    chan struct{}
	once    sync.Once
}

// New creates a Manager with the given per-shutdown timeout.
func New(timeout time.Duration) *Manager {
	return &Manager{
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// Register adds a shutdown function. Functions run LIFO.
func (m *Manager) Register(fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, fn)
}

// Done is closed when shutdown has been initiated.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Trigger initiates shutdown without a signal. Safe to call more than once.
func (m *Manager) Trigger() {
	m.once.Do(func() { close(m.done) })
}

// Wait blocks until SIGTERM/SIGINT or ctx cancellation, then runs the
// registered functions. Returns the received signal, or nil when the context
// ended first.
func (m *Manager) Wait(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-sigCh:
	case <-ctx.Done():
	case <-m.done:
	}
	m.Trigger()
	m.run()
	return sig
}

func (m *Manager) run() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	for i := len(m.funcs) - 1; i >= 0; i-- {
		// Errors here are advisory only; teardown keeps going.
		_ = m.funcs[i](ctx)
	}
	m.funcs = nil
}
