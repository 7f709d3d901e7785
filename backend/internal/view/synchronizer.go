// Package view computes the visual overlay the renderer applies on top of the
// base graph. The overlay is recomputed from scratch on every interaction from
// three inputs: the current selection or search, and the active theme set.
package view

import (
	"sort"
	"strings"

	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// State is everything the overlay depends on besides the graph itself
type State struct {
	Mode     Mode
	Selected int
	Query    string
	Matches  []int
	Active   graph.ThemeSet
}

// Selection describes the neighbourhood highlighted by SelectNode
type Selection struct {
	NodeID    int   `json:"node_id"`
	Neighbors []int `json:"neighbors"`
	Edges     []int `json:"edges"`
}

// Compute derives the overlay for st over store. It has no side effects.
func Compute(store *graph.Store, st State) Overlay {
	nodes := store.Nodes()
	edges := store.Edges()
	out := Overlay{
		Nodes: make([]NodeOverlay, len(nodes)),
		Edges: make([]EdgeOverlay, len(edges)),
	}

	var highlighted map[int]struct{}
	switch st.Mode {
	case ModeSelection:
		highlighted = toSet(store.Neighbors(st.Selected))
	case ModeSearch:
		highlighted = toSet(st.Matches)
	}

	for i, n := range nodes {
		style := baselineNode
		switch st.Mode {
		case ModeSelection:
			_, isNeighbor := highlighted[n.ID]
			switch {
			case n.ID == st.Selected:
				style = selectedNode
			case isNeighbor:
				style = neighborNode
			default:
				style = dimmedNode
			}
		case ModeSearch:
			if _, ok := highlighted[n.ID]; ok {
				style = matchNode
			} else {
				style = unmatchedNode
			}
		}
		out.Nodes[i] = NodeOverlay{
			ID:       n.ID,
			Opacity:  style.opacity,
			FontSize: style.fontSize,
			Hidden:   !st.Active.Has(n.PrimaryTheme),
		}
	}

	for i, e := range edges {
		style := baselineEdge
		switch st.Mode {
		case ModeSelection:
			if e.Touches(st.Selected) {
				style = incidentEdge
			} else {
				style = distantEdge
			}
		case ModeSearch:
			_, fromMatched := highlighted[e.From]
			_, toMatched := highlighted[e.To]
			if fromMatched && toMatched {
				style = matchEdge
			} else {
				style = unmatchedEdge
			}
		}
		out.Edges[i] = EdgeOverlay{ID: e.ID, Opacity: style.opacity, Width: style.width}
	}

	return out
}

// Synchronizer owns one client's view state and its current overlay.
// It is not safe for concurrent use; callers serialise access.
type Synchronizer struct {
	store   *graph.Store
	state   State
	overlay Overlay
}

// NewSynchronizer starts in the neutral state with every theme active
func NewSynchronizer(store *graph.Store) *Synchronizer {
	s := &Synchronizer{
		store: store,
		state: State{Mode: ModeNeutral, Active: graph.FullThemeSet()},
	}
	s.apply()
	return s
}

func (s *Synchronizer) apply() {
	s.overlay = Compute(s.store, s.state)
}

// SelectNode highlights id and its direct neighbours. An unknown id leaves
// the overlay untouched.
func (s *Synchronizer) SelectNode(id int) (Selection, error) {
	if !s.store.Has(id) {
		return Selection{}, apperrors.NewNodeNotFound(id)
	}

	s.state.Mode = ModeSelection
	s.state.Selected = id
	s.state.Query = ""
	s.state.Matches = nil
	s.apply()

	return Selection{
		NodeID:    id,
		Neighbors: s.store.Neighbors(id),
		Edges:     s.store.IncidentEdges(id),
	}, nil
}

// ClearSelection returns every node and edge to the baseline
func (s *Synchronizer) ClearSelection() {
	s.state.Mode = ModeNeutral
	s.state.Selected = 0
	s.state.Query = ""
	s.state.Matches = nil
	s.apply()
}

// FilterByThemes hides nodes whose primary theme is not in active. Opacity
// and label size are left to the selection or search in effect.
func (s *Synchronizer) FilterByThemes(active graph.ThemeSet) {
	s.state.Active = active.Clone()
	s.apply()
}

// Search highlights nodes whose title, body or numeral contains query,
// ignoring case, and returns their ids ascending. An empty query clears the
// overlay. A query with no matches dims everything.
func (s *Synchronizer) Search(query string) []int {
	if query == "" {
		s.ClearSelection()
		return []int{}
	}

	matches := s.store.Match(query)
	sort.Ints(matches)
	if matches == nil {
		matches = []int{}
	}

	s.state.Mode = ModeSearch
	s.state.Selected = 0
	s.state.Query = query
	s.state.Matches = matches
	s.apply()

	return append([]int(nil), matches...)
}

// Viewport returns the camera instruction for the current search, if any
func (s *Synchronizer) Viewport() *Viewport {
	if s.state.Mode != ModeSearch || len(s.state.Matches) == 0 {
		return nil
	}
	return Fit(s.state.Matches)
}

// Mode reports which interaction produced the current overlay
func (s *Synchronizer) Mode() Mode {
	return s.state.Mode
}

// Selected returns the selected node, if a selection is in effect
func (s *Synchronizer) Selected() (int, bool) {
	return s.state.Selected, s.state.Mode == ModeSelection
}

// Query returns the active search query
func (s *Synchronizer) Query() string {
	return s.state.Query
}

// ActiveThemes returns a copy of the active theme set
func (s *Synchronizer) ActiveThemes() graph.ThemeSet {
	return s.state.Active.Clone()
}

// Overlay returns a snapshot of the current overlay
func (s *Synchronizer) Overlay() Overlay {
	return s.overlay.Clone()
}

// NodeOverlay returns the overlay entry for one node
func (s *Synchronizer) NodeOverlay(id int) (NodeOverlay, bool) {
	i, ok := s.store.NodePosition(id)
	if !ok {
		return NodeOverlay{}, false
	}
	return s.overlay.Nodes[i], true
}

// EdgeOverlay returns the overlay entry for one edge
func (s *Synchronizer) EdgeOverlay(id int) (EdgeOverlay, bool) {
	i, ok := s.store.EdgePosition(id)
	if !ok {
		return EdgeOverlay{}, false
	}
	return s.overlay.Edges[i], true
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// NormalizeQuery trims surrounding whitespace the way the search box does
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}
