// Package dispatch turns raw UI events into view and panel operations.
package dispatch

import (
	"fmt"

	"go.uber.org/zap"
	"maxim-atlas/backend/internal/constants"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/panel"
	"maxim-atlas/backend/internal/view"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// Handler runs one event to completion
type Handler interface {
	Dispatch(ev Event) (Update, error)
}

// Dispatcher routes events for one client. It owns that client's
// synchronizer and presenter and is not safe for concurrent use.
type Dispatcher struct {
	sync   *view.Synchronizer
	panel  *panel.Presenter
	active graph.ThemeSet
	search SearchStatus
	logger *zap.Logger
}

// NewDispatcher wires a dispatcher over an existing synchronizer and presenter
func NewDispatcher(sync *view.Synchronizer, presenter *panel.Presenter, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sync:   sync,
		panel:  presenter,
		active: sync.ActiveThemes(),
		search: SearchStatus{Matches: []int{}},
		logger: logger,
	}
}

// NewForStore builds a synchronizer, presenter and dispatcher together over store
func NewForStore(store *graph.Store, logger *zap.Logger) *Dispatcher {
	return NewDispatcher(view.NewSynchronizer(store), panel.NewPresenter(store), logger)
}

// Dispatch implements Handler
func (d *Dispatcher) Dispatch(ev Event) (Update, error) {
	var viewport *view.Viewport

	switch ev.Type {
	case EventNodeClick:
		if ev.NodeID == nil {
			d.closePanel()
			break
		}
		if err := d.selectNode(*ev.NodeID); err != nil {
			return Update{}, err
		}

	case EventNeighborClick:
		if ev.NodeID == nil {
			return Update{}, apperrors.NewInvalidEvent(string(ev.Type), "node_id is required")
		}
		if err := d.selectNode(*ev.NodeID); err != nil {
			return Update{}, err
		}
		viewport = view.Focus(*ev.NodeID)

	case EventClosePanel:
		d.closePanel()

	case EventKeyDown:
		if ev.Key != constants.EscapeKey {
			break
		}
		d.search = SearchStatus{Matches: []int{}}
		d.closePanel()

	case EventSearchInput:
		viewport = d.runSearch(ev.Value)

	case EventThemeToggle:
		if !ev.Theme.Valid() {
			return Update{}, apperrors.NewUnknownTheme(string(ev.Theme))
		}
		d.active.Toggle(ev.Theme)
		d.sync.FilterByThemes(d.active)
		d.logger.Debug("Theme filter changed",
			zap.String("theme", string(ev.Theme)),
			zap.Bool("active", d.active.Has(ev.Theme)),
			zap.Any("filter", d.active.Sorted()),
		)

	case EventSync:

	default:
		return Update{}, apperrors.NewUnknownEvent(string(ev.Type))
	}

	return d.snapshot(viewport)
}

func (d *Dispatcher) selectNode(id int) error {
	if _, err := d.panel.Open(id); err != nil {
		return err
	}
	if _, err := d.sync.SelectNode(id); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) closePanel() {
	d.panel.Close()
	d.sync.ClearSelection()
}

func (d *Dispatcher) runSearch(raw string) *view.Viewport {
	query := view.NormalizeQuery(raw)
	matches := d.sync.Search(query)

	d.search = SearchStatus{Query: query, Matches: matches}
	if query != "" {
		d.search.Count = fmt.Sprintf("%d found", len(matches))
	}

	d.logger.Debug("Search",
		zap.String("query", query),
		zap.Int("matches", len(matches)),
	)
	return d.sync.Viewport()
}

// Snapshot returns the current state without handling an event
func (d *Dispatcher) Snapshot() (Update, error) {
	return d.snapshot(nil)
}

func (d *Dispatcher) snapshot(viewport *view.Viewport) (Update, error) {
	panelView, err := d.panel.View()
	if err != nil {
		return Update{}, err
	}
	overlay := d.sync.Overlay()
	// the box keeps its text after a selection or close replaced the results
	search := SearchStatus{Query: d.search.Query, Matches: []int{}}
	if d.sync.Mode() == view.ModeSearch {
		search.Count = d.search.Count
		search.Matches = append(search.Matches, d.search.Matches...)
	}

	return Update{
		Type:     UpdateTypeState,
		Mode:     d.sync.Mode(),
		Overlay:  &overlay,
		Panel:    &panelView,
		Viewport: viewport,
		Search:   &search,
		Themes:   panel.ThemeChips(d.active),
	}, nil
}
