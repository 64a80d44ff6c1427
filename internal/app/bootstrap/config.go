// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/strataesg/internal/app/dashboard"
	"github.com/dalemusser/strataesg/internal/app/dashboard/insights"
	"github.com/dalemusser/strataesg/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAESG"

// minCSRFKeyLen is the shortest CSRF key accepted outside dev.
const minCSRFKeyLen = 32

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: chart_width, insight_interval, etc.
//   - Environment variables: STRATAESG_CHART_WIDTH, STRATAESG_INSIGHT_INTERVAL, etc.
//   - Command-line flags: --chart_width, --insight_interval, etc.
var appConfigKeys = []config.AppKey{
	// Charts
	{Name: "charts_enabled", Default: true, Desc: "Render dashboard charts (false shows empty chart slots)"},
	{Name: "chart_width", Default: 480, Desc: "Initial chart width in pixels"},
	{Name: "chart_height", Default: 280, Desc: "Initial chart height in pixels"},

	// Simulated insights
	{Name: "insights_enabled", Default: true, Desc: "Emit periodic simulated insights into the activity feed"},
	{Name: "insight_interval", Default: "45s", Desc: "Time between simulated insights (e.g., 45s, 2m)"},

	{Name: "resize_debounce", Default: "150ms", Desc: "Quiet period before charts resize after a viewport change"},
	{Name: "loop_timeout", Default: "3s", Desc: "How long a request waits for the dashboard event loop"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	{Name: "company_name", Default: "", Desc: "Company name shown on the dashboard (blank keeps the illustrative name)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATAESG_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		ChartsEnabled: appValues.Bool("charts_enabled"),
		ChartWidth:    appValues.Int("chart_width"),
		ChartHeight:   appValues.Int("chart_height"),

		InsightsEnabled: appValues.Bool("insights_enabled"),
		InsightInterval: appValues.Duration("insight_interval", insights.DefaultInterval),

		ResizeDebounce: appValues.Duration("resize_debounce", dashboard.DefaultResizeDebounce),
		LoopTimeout:    appValues.Duration("loop_timeout", timeouts.DefaultLoop),

		CSRFKey:     appValues.String("csrf_key"),
		CompanyName: appValues.String("company_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	if appCfg.ChartWidth <= 0 || appCfg.ChartHeight <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", appCfg.ChartWidth, appCfg.ChartHeight))
	}
	for name, d := range map[string]time.Duration{
		"insight_interval": appCfg.InsightInterval,
		"resize_debounce":  appCfg.ResizeDebounce,
		"loop_timeout":     appCfg.LoopTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	dev := coreCfg != nil && coreCfg.Env == "dev"
	if !dev && len(appCfg.CSRFKey) < minCSRFKeyLen {
		errs = append(errs, fmt.Errorf("csrf_key must be at least %d characters outside dev", minCSRFKeyLen))
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}
