// internal/app/bootstrap/deps.go
package bootstrap

import (
	"github.com/dalemusser/strataesg/internal/app/dashboard"
	emissionsstore "github.com/dalemusser/strataesg/internal/app/store/emissions"
	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
)

// Deps holds the in-memory backends for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: Startup, BuildHandler, and Shutdown. There is no database; the
// "backends" are the event loop, the chart renderer, the dataset store and
// the dashboard that owns them.
//
// The Shutdown hook is responsible for stopping the loop.
type Deps struct {
	Loop     *eventloop.Loop
	Store    *emissionsstore.Store
	Renderer charting.Renderer // nil when charts are disabled

	Dashboard *dashboard.Dashboard
}
