// Package launcher starts and supervises the worker group. The supervisor
// re-executes its own binary once per worker; every worker binds its own
// SO_REUSEPORT listener on the shared address, so the kernel spreads accepted
// connections across the group without any proxying in between.
package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"github.com/atlas-128/convertDecimaltoBase32/internal/config"
	"github.com/atlas-128/convertDecimaltoBase32/internal/logging"
	"github.com/atlas-128/convertDecimaltoBase32/internal/metrics"
)

const (
	workerEnv      = "B32D_WORKER"
	workerIndexEnv = "B32D_WORKER_INDEX"

	// How long a signaled worker gets before SIGKILL.
	stopGrace = 15 * time.Second
)

// IsWorker reports whether this process was spawned as a worker.
func IsWorker() bool {
	return os.Getenv(workerEnv) == "1"
}

// WorkerIndex returns this worker's index, or -1 outside worker mode.
func WorkerIndex() int {
	idx, err := strconv.Atoi(os.Getenv(workerIndexEnv))
	if err != nil {
		return -1
	}
	return idx
}

// ChildEnv extends a parent environment with the worker-mode markers.
func ChildEnv(env []string, index int) []string {
	out := make([]string, 0, len(env)+2)
	out = append(out, env...)
	out = append(out, workerEnv+"=1", fmt.Sprintf("%s=%d", workerIndexEnv, index))
	return out
}

type workerExit struct {
	index int
	err   error
}

// Supervisor owns the worker group lifecycle: not-started, running, stopped.
type Supervisor struct {
	cfg *config.Config
	log *logging.Logger

	// Overrides for the re-exec target; zero values mean "this binary with
	// its own arguments". Tests substitute a helper process here.
	execPath string
	execArgs []string
}

// NewSupervisor creates a supervisor for the given configuration.
func NewSupervisor(cfg *config.Config, log *logging.Logger) *Supervisor {
	return &Supervisor{cfg: cfg, log: log}
}

// Run spawns the worker group and blocks until the group stops. A worker
// exiting on its own is fatal: the remaining workers are stopped and Run
// returns a non-nil error, so the container exits non-zero. Cancellation of
// ctx (SIGTERM/SIGINT forwarded by the command layer) stops the group
// cleanly.
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	exe := s.execPath
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			return fmt.Errorf("cannot resolve own executable: %w", err)
		}
	}
	args := s.execArgs
	if args == nil {
		args = os.Args[1:]
	}

	n := s.cfg.Server.Workers
	s.log.Infof("starting %d workers on %s (app %q)", n, s.cfg.Server.Addr(), s.cfg.Server.App)

	cmds := make([]*exec.Cmd, n)
	exitCh := make(chan workerExit, n)

	for i := 0; i < n; i++ {
		cmd := exec.Command(exe, args...)
		cmd.Env = ChildEnv(os.Environ(), i)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			s.stopAll(cmds[:i], exitCh, i)
			return fmt.Errorf("failed to start worker %d: %w", i, err)
		}
		cmds[i] = cmd
		s.log.Infof("worker %d started (pid %d)", i, cmd.Process.Pid)

		go func(i int, cmd *exec.Cmd) {
			exitCh <- workerExit{index: i, err: cmd.Wait()}
		}(i, cmd)
	}

	if s.cfg.Metrics.Enabled {
		metrics.WorkersRunning.Set(float64(n))
		pids := make(map[int]int, n)
		for i, cmd := range cmds {
			pids[i] = cmd.Process.Pid
		}
		go s.sampleWorkers(ctx, pids)

		admin := newAdminServer(s.cfg.Metrics.Addr)
		go func() {
			s.log.Infof("admin metrics on %s", admin.Addr)
			if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.log.Errorf("admin server: %v", err)
			}
		}()
		defer admin.Close()
	}

	return s.awaitGroup(ctx, cmds, exitCh, n)
}

// awaitGroup blocks until the group stops: either ctx is cancelled (clean
// stop) or a worker exits on its own (fatal, no restart policy). A worker
// exit that races with an already-cancelled ctx is part of the clean stop —
// under a process-group signal the workers shut down on their own while ctx
// is being cancelled.
func (s *Supervisor) awaitGroup(ctx context.Context, cmds []*exec.Cmd, exitCh chan workerExit, n int) error {
	select {
	case <-ctx.Done():
		s.log.Info("stop requested, signaling workers")
		s.stopAll(cmds, exitCh, n)
		return nil

	case exit := <-exitCh:
		s.recordExit(exit)
		if ctx.Err() != nil {
			s.stopAll(without(cmds, exit.index), exitCh, n-1)
			return nil
		}
		s.log.Errorf("worker %d exited unexpectedly: %v", exit.index, exit.err)
		s.stopAll(without(cmds, exit.index), exitCh, n-1)
		if exit.err != nil {
			return fmt.Errorf("worker %d failed: %w", exit.index, exit.err)
		}
		return fmt.Errorf("worker %d exited before shutdown was requested", exit.index)
	}
}

// stopAll signals the given workers and drains their exits, escalating to
// SIGKILL after the grace period.
func (s *Supervisor) stopAll(cmds []*exec.Cmd, exitCh <-chan workerExit, pending int) {
	for _, cmd := range cmds {
		if cmd != nil && cmd.Process != nil {
			_ = cmd.Process.Signal(syscall.SIGTERM)
		}
	}

	deadline := time.After(stopGrace)
	for pending > 0 {
		select {
		case exit := <-exitCh:
			s.recordExit(exit)
			pending--
		case <-deadline:
			s.log.Warnf("%d workers still up after %s, killing", pending, stopGrace)
			for _, cmd := range cmds {
				if cmd != nil && cmd.Process != nil {
					_ = cmd.Process.Kill()
				}
			}
			deadline = time.After(time.Second)
		}
	}
	s.log.Info("all workers stopped")
}

func (s *Supervisor) recordExit(exit workerExit) {
	if !s.cfg.Metrics.Enabled {
		return
	}
	metrics.WorkersRunning.Dec()
	outcome := "ok"
	if exit.err != nil {
		outcome = "error"
	}
	metrics.WorkerExitsTotal.WithLabelValues(outcome).Inc()
}

func without(cmds []*exec.Cmd, index int) []*exec.Cmd {
	out := make([]*exec.Cmd, 0, len(cmds))
	for i, cmd := range cmds {
		if i != index {
			out = append(out, cmd)
		}
	}
	return out
}
