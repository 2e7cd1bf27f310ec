package board

import "github.com/dashgrid/dashgrid/pkg/layout"

// Frontend is the rendering surface the board drives. Implementations push
// layout state into whatever displays the grid: a web client, a terminal
// preview, a test recorder.
//
// Methods are called with the board's internal lock released, but always
// from a single logical update; implementations do not need their own
// ordering logic.
type Frontend interface {
	// ApplyLayouts replaces the displayed arrangements for every tier.
	ApplyLayouts(layouts layout.Responsive)

	// SetLocked toggles edit interaction. The board locks the surface while
	// a persisted layout is still being loaded so user edits cannot race
	// the load result.
	SetLocked(locked bool)

	// ResetNotice signals that a saved arrangement was discarded and
	// replaced with a generated default.
	ResetNotice(tier string)
}

// NoopFrontend is a no-op implementation of Frontend.
type NoopFrontend struct{}

func (NoopFrontend) ApplyLayouts(layout.Responsive) {}
func (NoopFrontend) SetLocked(bool)                 {}
func (NoopFrontend) ResetNotice(string)             {}

// Ensure NoopFrontend implements Frontend.
var _ Frontend = NoopFrontend{}
