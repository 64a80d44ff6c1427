// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown when no company name is configured.
const DefaultSiteName = "StrataESG"

// BaseVM contains common fields for all page view models.
// Embed this struct in feature-specific view models.
//
// Usage:
//
//	type pageVM struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// Page context
	Title       string
	CurrentPath string

	// Security
	CSRFToken string // sent back in the X-CSRF-Token header by the page script
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, siteName, title string) BaseVM {
	if siteName == "" {
		siteName = DefaultSiteName
	}
	return BaseVM{
		SiteName:    siteName,
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
}
