// internal/app/features/dashboard/types.go
package dashboard

import (
	"html/template"

	board "github.com/dalemusser/strataesg/internal/app/dashboard"
	"github.com/dalemusser/strataesg/internal/app/dashboard/dispatch"
	"github.com/dalemusser/strataesg/internal/app/system/viewdata"
)

// Upload limits. Only the form header is used; the content is discarded.
const (
	maxUploadBytes  = 64 << 20
	maxUploadMemory = 1 << 20
)

// pageVM is the view model for the dashboard page.
type pageVM struct {
	viewdata.BaseVM
	Surface template.HTML
	View    board.View
}

// actionInput is a delegated click.
type actionInput struct {
	Target  string          `json:"target" validate:"max=200" label:"Target"`
	Action  dispatch.Action `json:"action" validate:"action" label:"Action"`
	Section string          `json:"section" validate:"max=64" label:"Section"`
	Item    string          `json:"item" validate:"max=200" label:"Item"`
}

func (in actionInput) event() dispatch.Event {
	return dispatch.Event{Target: in.Target, Action: in.Action, Section: in.Section, Item: in.Item}
}

// actionResponse reports whether the click matched an action.
type actionResponse struct {
	Handled bool       `json:"handled"`
	State   board.View `json:"state"`
}

type navigateInput struct {
	Section string `json:"section" validate:"required,section" label:"Section"`
}

type dragInput struct {
	State string `json:"state" validate:"required,oneof=enter leave" label:"Drag state"`
}

type viewportInput struct {
	Width  int `json:"width" validate:"min=1,max=10000" label:"Width"`
	Height int `json:"height" validate:"min=1,max=10000" label:"Height"`
}

type uploadInput struct {
	Name string `json:"name" validate:"required,max=255" label:"File name"`
	Size int64  `json:"size" validate:"min=0" label:"File size"`
}
