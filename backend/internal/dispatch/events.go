package dispatch

import (
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/panel"
	"maxim-atlas/backend/internal/view"
)

// EventType names a raw UI event
type EventType string

const (
	// EventNodeClick is a click on the canvas. NodeID is nil when the click
	// missed every node.
	EventNodeClick EventType = "node_click"
	// EventNeighborClick is a click on an entry of the panel's connection list
	EventNeighborClick EventType = "neighbor_click"
	// EventClosePanel is the panel's close button
	EventClosePanel EventType = "close_panel"
	// EventKeyDown is a key press anywhere on the page
	EventKeyDown EventType = "key_down"
	// EventSearchInput carries the search box's current value
	EventSearchInput EventType = "search_input"
	// EventThemeToggle is a click on a theme filter chip
	EventThemeToggle EventType = "theme_toggle"
	// EventSync asks for the current state without changing it
	EventSync EventType = "sync"
)

// Event is one raw UI event as sent by the browser
type Event struct {
	Type   EventType   `json:"type"`
	NodeID *int        `json:"node_id,omitempty"`
	Key    string      `json:"key,omitempty"`
	Value  string      `json:"value,omitempty"`
	Theme  graph.Theme `json:"theme,omitempty"`
}

// NodeClick builds a click on node id
func NodeClick(id int) Event {
	return Event{Type: EventNodeClick, NodeID: &id}
}

// CanvasClick builds a click on empty canvas
func CanvasClick() Event {
	return Event{Type: EventNodeClick}
}

// NeighborClick builds a click on a connection entry
func NeighborClick(id int) Event {
	return Event{Type: EventNeighborClick, NodeID: &id}
}

// KeyDown builds a key press
func KeyDown(key string) Event {
	return Event{Type: EventKeyDown, Key: key}
}

// SearchInput builds a search box change
func SearchInput(value string) Event {
	return Event{Type: EventSearchInput, Value: value}
}

// ThemeToggle builds a filter chip click
func ThemeToggle(theme graph.Theme) Event {
	return Event{Type: EventThemeToggle, Theme: theme}
}

// Update message types
const (
	UpdateTypeState      = "update"
	UpdateTypeError      = "error"
	UpdateTypeLoading    = "loading"
	UpdateTypeLoadFailed = "load_failed"
)

// SearchStatus mirrors the search box and its result counter
type SearchStatus struct {
	Query   string `json:"query"`
	Count   string `json:"count"`
	Matches []int  `json:"matches"`
}

// Update is the full view state after an event
type Update struct {
	Type     string         `json:"type"`
	Session  string         `json:"session_id,omitempty"`
	Mode     view.Mode      `json:"mode,omitempty"`
	Overlay  *view.Overlay  `json:"overlay,omitempty"`
	Panel    *panel.View    `json:"panel,omitempty"`
	Viewport *view.Viewport `json:"viewport,omitempty"`
	Search   *SearchStatus  `json:"search,omitempty"`
	Themes   []panel.Chip   `json:"themes,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ErrorUpdate reports a failed event without changing state
func ErrorUpdate(err error) Update {
	return Update{Type: UpdateTypeError, Error: err.Error()}
}
