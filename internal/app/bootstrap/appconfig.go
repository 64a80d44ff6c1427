// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig carries what the dashboard itself needs: chart geometry,
// feature switches, simulation cadence and the CSRF key.
type AppConfig struct {
	// Charts
	ChartsEnabled bool // false runs the dashboard without a chart renderer
	ChartWidth    int  // initial widget width in px (default: 480)
	ChartHeight   int  // initial widget height in px (default: 280)

	// Simulated insights
	InsightsEnabled bool          // emit periodic insight entries into the feed
	InsightInterval time.Duration // time between insights (default: 45s)

	// Resize handling
	ResizeDebounce time.Duration // quiet period before widgets resize (default: 150ms)

	// Event loop
	LoopTimeout time.Duration // how long a request waits for the loop (default: 3s)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Dataset
	CompanyName string // overrides the illustrative company name when set
}
