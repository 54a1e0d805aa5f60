package launcher

import (
	"context"
	"fmt"
	"time"

	"github.com/libp2p/go-reuseport"

	"github.com/atlas-128/convertDecimaltoBase32/internal/app"
	"github.com/atlas-128/convertDecimaltoBase32/internal/config"
	"github.com/atlas-128/convertDecimaltoBase32/internal/logging"
	"github.com/atlas-128/convertDecimaltoBase32/internal/shutdown"
)

// RunWorker is the worker-mode entry point: resolve the application by name,
// bind a SO_REUSEPORT listener on the shared address, and serve until
// signaled. Any failure before serving returns an error, which the command
// layer turns into a non-zero exit the supervisor observes.
func RunWorker(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	factory, err := app.Lookup(cfg.Server.App)
	if err != nil {
		return fmt.Errorf("cannot load application: %w", err)
	}

	fapp, err := factory(app.Options{
		Metrics: cfg.Metrics.Enabled,
		Log:     log,
	})
	if err != nil {
		return fmt.Errorf("application %q failed to initialize: %w", cfg.Server.App, err)
	}

	ln, err := reuseport.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", cfg.Server.Addr(), err)
	}

	mgr := shutdown.New(10 * time.Second)
	mgr.Register(func(ctx context.Context) error {
		return fapp.ShutdownWithContext(ctx)
	})
	go mgr.Wait(ctx)

	log.Infof("worker %d serving %q on %s", WorkerIndex(), cfg.Server.App, cfg.Server.Addr())

	// Listener blocks until Shutdown; a clean shutdown returns nil.
	if err := fapp.Listener(ln); err != nil {
		return fmt.Errorf("serve failed: %w", err)
	}
	return nil
}
