package view

import (
	"time"

	"maxim-atlas/backend/internal/constants"
)

// NodeOverlay is the derived visual state of one node
type NodeOverlay struct {
	ID       int     `json:"id"`
	Opacity  float64 `json:"opacity"`
	FontSize int     `json:"font_size"`
	Hidden   bool    `json:"hidden"`
}

// EdgeOverlay is the derived visual state of one edge
type EdgeOverlay struct {
	ID      int     `json:"id"`
	Opacity float64 `json:"opacity"`
	Width   float64 `json:"width"`
}

// Overlay holds one entry per node and per edge, aligned with the store's
// document order.
type Overlay struct {
	Nodes []NodeOverlay `json:"nodes"`
	Edges []EdgeOverlay `json:"edges"`
}

// Clone returns a deep copy
func (o Overlay) Clone() Overlay {
	out := Overlay{
		Nodes: make([]NodeOverlay, len(o.Nodes)),
		Edges: make([]EdgeOverlay, len(o.Edges)),
	}
	copy(out.Nodes, o.Nodes)
	copy(out.Edges, o.Edges)
	return out
}

// Mode identifies which interaction produced the overlay
type Mode string

const (
	ModeNeutral   Mode = "neutral"
	ModeSelection Mode = "selection"
	ModeSearch    Mode = "search"
)

// nodeStyle and edgeStyle are the two visual knobs each mode sets
type nodeStyle struct {
	opacity  float64
	fontSize int
}

type edgeStyle struct {
	opacity float64
	width   float64
}

var (
	baselineNode = nodeStyle{constants.BaselineNodeOpacity, constants.BaselineNodeFontSize}
	baselineEdge = edgeStyle{constants.BaselineEdgeOpacity, constants.BaselineEdgeWidth}

	selectedNode = nodeStyle{constants.SelectedNodeOpacity, constants.SelectedNodeFontSize}
	neighborNode = nodeStyle{constants.NeighborNodeOpacity, constants.NeighborNodeFontSize}
	dimmedNode   = nodeStyle{constants.DimmedNodeOpacity, constants.DimmedNodeFontSize}
	incidentEdge = edgeStyle{constants.IncidentEdgeOpacity, constants.IncidentEdgeWidth}
	distantEdge  = edgeStyle{constants.DistantEdgeOpacity, constants.DistantEdgeWidth}

	matchNode     = nodeStyle{constants.MatchNodeOpacity, constants.MatchNodeFontSize}
	unmatchedNode = nodeStyle{constants.UnmatchedNodeOpacity, constants.UnmatchedNodeFontSize}
	matchEdge     = edgeStyle{constants.MatchEdgeOpacity, constants.MatchEdgeWidth}
	unmatchedEdge = edgeStyle{constants.UnmatchedEdgeOpacity, constants.UnmatchedEdgeWidth}
)

// Viewport is a camera instruction for the renderer
type Viewport struct {
	Action      string  `json:"action"` // fit, focus
	NodeIDs     []int   `json:"node_ids"`
	Scale       float64 `json:"scale,omitempty"`
	AnimationMs int64   `json:"animation_ms"`
}

// Fit frames the given nodes
func Fit(ids []int) *Viewport {
	return &Viewport{
		Action:      "fit",
		NodeIDs:     append([]int(nil), ids...),
		AnimationMs: animationMs(),
	}
}

// Focus centres and zooms on one node
func Focus(id int) *Viewport {
	return &Viewport{
		Action:      "focus",
		NodeIDs:     []int{id},
		Scale:       constants.FocusScale,
		AnimationMs: animationMs(),
	}
}

func animationMs() int64 {
	return int64(constants.ViewportAnimation / time.Millisecond)
}
