// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/strataesg/internal/app/dashboard"
	emissionsstore "github.com/dalemusser/strataesg/internal/app/store/emissions"
	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the app's backends.
//
// WAFFLE calls this after configuration is loaded but before Startup. This
// app has nothing to connect to, so it wires the event loop, the dataset
// store, the chart renderer and the dashboard. The loop is not started
// here; Startup does that.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	loop := eventloop.New(logger.Named("eventloop"))
	store := emissionsstore.New(appCfg.CompanyName)

	var renderer charting.Renderer
	if appCfg.ChartsEnabled {
		renderer = charting.NewGoChart(logger.Named("charting"))
	} else {
		logger.Info("charts disabled; dashboard will run without a renderer")
	}

	dash := dashboard.New(dashboard.Options{
		Scheduler:       loop,
		Renderer:        renderer,
		Dataset:         store.Get(),
		ChartWidth:      appCfg.ChartWidth,
		ChartHeight:     appCfg.ChartHeight,
		InsightsEnabled: appCfg.InsightsEnabled,
		InsightInterval: appCfg.InsightInterval,
		ResizeDebounce:  appCfg.ResizeDebounce,
		Logger:          logger.Named("dashboard"),
	})

	logger.Info("dashboard backends ready",
		zap.String("company", store.Get().Company.Name),
		zap.Bool("charts", renderer != nil),
		zap.Bool("insights", appCfg.InsightsEnabled),
	)

	return Deps{
		Loop:      loop,
		Store:     store,
		Renderer:  renderer,
		Dashboard: dash,
	}, nil
}
