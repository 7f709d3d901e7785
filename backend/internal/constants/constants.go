package constants

import "time"

// Baseline overlay, applied when nothing is selected or searched
const (
	BaselineNodeOpacity  = 1.0
	BaselineNodeFontSize = 10
	BaselineEdgeOpacity  = 0.3
	BaselineEdgeWidth    = 0.8
)

// Selection overlay
const (
	SelectedNodeOpacity  = 1.0
	SelectedNodeFontSize = 14

	NeighborNodeOpacity  = 0.9
	NeighborNodeFontSize = 10

	// DimmedNodeOpacity applies to every node outside the selection's
	// neighbourhood. A zero font size hides the label.
	DimmedNodeOpacity  = 0.12
	DimmedNodeFontSize = 0

	IncidentEdgeOpacity = 0.8
	IncidentEdgeWidth   = 2.0
	DistantEdgeOpacity  = 0.03
	DistantEdgeWidth    = 0.5
)

// Search overlay
const (
	MatchNodeOpacity  = 1.0
	MatchNodeFontSize = 12

	UnmatchedNodeOpacity  = 0.08
	UnmatchedNodeFontSize = 0

	MatchEdgeOpacity     = 0.5
	MatchEdgeWidth       = 1.0
	UnmatchedEdgeOpacity = 0.02
	UnmatchedEdgeWidth   = 0.3
)

// Viewport animation
const (
	ViewportAnimation = 500 * time.Millisecond
	FocusScale        = 1.2
)

// Input handling
const (
	// DefaultSearchDebounce is how long search input must pause before a query runs
	DefaultSearchDebounce = 300 * time.Millisecond

	// EscapeKey is the key name that clears search and closes the panel
	EscapeKey = "Escape"
)

// Session constants
const (
	DefaultSessionTimeout  = 30 * time.Minute
	SessionCleanupInterval = 5 * time.Minute
)

// GraphLoadRetryDelay is the pause before the single retry of a failed graph load
const GraphLoadRetryDelay = 500 * time.Millisecond
