package panel

import (
	"sort"
	"strconv"
	"strings"

	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// Status is the panel's visibility
type Status string

const (
	StatusClosed Status = "closed"
	StatusOpen   Status = "open"
)

// State is either closed, or open on one node
type State struct {
	Status Status `json:"status"`
	NodeID int    `json:"node_id,omitempty"`
}

// IsOpen reports whether the panel is showing a node
func (s State) IsOpen() bool {
	return s.Status == StatusOpen
}

// Badge is one theme tag on the detail panel
type Badge struct {
	Theme   graph.Theme `json:"theme"`
	Color   string      `json:"color"`
	Primary bool        `json:"primary"`
}

// Connection is one entry of the neighbour list. Clicking it selects and
// focuses that node.
type Connection struct {
	ID      int    `json:"id"`
	Numeral string `json:"numeral"`
	Title   string `json:"title"`
}

// Detail is everything the panel displays for one node
type Detail struct {
	NodeID            int          `json:"node_id"`
	Heading           string       `json:"heading"`
	Numeral           string       `json:"numeral"`
	Title             string       `json:"title"`
	Body              string       `json:"body"`
	Badges            []Badge      `json:"badges"`
	ConnectionsHeader string       `json:"connections_header"`
	Connections       []Connection `json:"connections"`
}

// BuildDetail assembles the panel content for node. Connections are listed
// by ascending neighbour id regardless of input order.
func BuildDetail(node graph.Node, neighbors []graph.Summary) Detail {
	sorted := append([]graph.Summary(nil), neighbors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	numeral := strings.ToUpper(node.Numeral)
	d := Detail{
		NodeID:            node.ID,
		Heading:           "Maxim " + numeral,
		Numeral:           numeral,
		Title:             node.FullTitle,
		Body:              node.Body,
		Badges:            make([]Badge, 0, 1+len(node.SecondaryThemes)),
		ConnectionsHeader: "Connected Maxims (" + strconv.Itoa(len(sorted)) + ")",
		Connections:       make([]Connection, 0, len(sorted)),
	}

	d.Badges = append(d.Badges, Badge{Theme: node.PrimaryTheme, Color: node.PrimaryTheme.Color(), Primary: true})
	for _, t := range node.SecondaryThemes {
		d.Badges = append(d.Badges, Badge{Theme: t, Color: translucent(t.Color())})
	}

	for _, n := range sorted {
		d.Connections = append(d.Connections, Connection{
			ID:      n.ID,
			Numeral: strings.ToUpper(n.Numeral),
			Title:   n.Title,
		})
	}
	return d
}

// translucent appends a ~50% alpha channel, widening #rgb shorthand first
func translucent(hex string) string {
	if len(hex) == 4 && hex[0] == '#' {
		hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}
	return hex + "88"
}

// Presenter drives the detail panel for one client. It is not safe for
// concurrent use.
type Presenter struct {
	store  *graph.Store
	state  State
	detail Detail
}

// NewPresenter starts closed
func NewPresenter(store *graph.Store) *Presenter {
	return &Presenter{
		store: store,
		state: State{Status: StatusClosed},
	}
}

// Open shows node id. An unknown id leaves the panel as it was.
func (p *Presenter) Open(id int) (Detail, error) {
	node, ok := p.store.Node(id)
	if !ok {
		return Detail{}, apperrors.NewNodeNotFound(id)
	}
	p.detail = BuildDetail(node, p.store.NeighborSummaries(id))
	p.state = State{Status: StatusOpen, NodeID: id}
	return p.detail, nil
}

// Close hides the panel
func (p *Presenter) Close() {
	p.state = State{Status: StatusClosed}
	p.detail = Detail{}
}

// State returns the current panel state
func (p *Presenter) State() State {
	return p.state
}

// Detail returns the displayed content while the panel is open
func (p *Presenter) Detail() (Detail, bool) {
	if !p.state.IsOpen() {
		return Detail{}, false
	}
	return p.detail, true
}

// View is the panel as sent to clients
type View struct {
	State  State   `json:"state"`
	Detail *Detail `json:"detail,omitempty"`
	HTML   string  `json:"html,omitempty"`
}

// View renders the current panel
func (p *Presenter) View() (View, error) {
	v := View{State: p.state}
	d, ok := p.Detail()
	if !ok {
		return v, nil
	}
	html, err := Render(d)
	if err != nil {
		return v, err
	}
	v.Detail = &d
	v.HTML = html
	return v, nil
}
