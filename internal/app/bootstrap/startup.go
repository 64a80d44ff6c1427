// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/strataesg/internal/app/resources"
	"github.com/dalemusser/strataesg/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after ConnectDB and before the HTTP handler is built.
//
// It loads the shared templates, applies the configured timeouts, starts the
// event loop and boots the dashboard on it: the dashboard section is shown,
// widgets are created, the activity feed is seeded and insights start.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{Loop: appCfg.LoopTimeout})
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	deps.Loop.Start()

	ctx, cancel := context.WithTimeout(ctx, timeouts.Loop())
	defer cancel()
	if err := deps.Loop.Do(ctx, deps.Dashboard.Boot); err != nil {
		logger.Error("dashboard boot failed", zap.Error(err))
		return err
	}
	return nil
}
