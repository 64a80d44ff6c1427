// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/strataesg/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown is invoked during WAFFLE's shutdown phase, after the HTTP server
// has stopped accepting requests.
//
// It shuts the dashboard down on the loop (insights stop, pending resize
// and report work is cancelled, widgets are destroyed) and then stops the
// loop. The context bounds both steps.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	if deps.Loop == nil || !deps.Loop.Running() {
		return nil
	}

	var firstErr error

	doCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Shutdown(), logger, "dashboard shutdown")
	if err := deps.Loop.Do(doCtx, deps.Dashboard.Shutdown); err != nil {
		logger.Warn("dashboard did not shut down cleanly", zap.Error(err))
		firstErr = err
	}
	cancel()

	logger.Info("stopping event loop")
	if err := deps.Loop.Stop(ctx); err != nil {
		logger.Error("event loop did not stop cleanly", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
