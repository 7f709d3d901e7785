package graph

import "strings"

// Node is one maxim as it appears in the graph document. Label, Title and
// Group are renderer fields; FullTitle is the display title.
type Node struct {
	ID              int     `json:"id"`
	Label           string  `json:"label,omitempty"`
	Title           string  `json:"title,omitempty"`
	Group           Theme   `json:"group,omitempty"`
	FullTitle       string  `json:"fullTitle"`
	Body            string  `json:"body"`
	Numeral         string  `json:"numeral"`
	PrimaryTheme    Theme   `json:"primaryTheme"`
	SecondaryThemes []Theme `json:"secondaryThemes,omitempty"`
}

// SearchText is the lower-cased haystack a query is matched against
func (n Node) SearchText() string {
	return strings.ToLower(n.FullTitle + " " + n.Body + " " + n.Numeral)
}

// Themes returns the primary theme followed by the secondary themes
func (n Node) Themes() []Theme {
	themes := make([]Theme, 0, 1+len(n.SecondaryThemes))
	themes = append(themes, n.PrimaryTheme)
	return append(themes, n.SecondaryThemes...)
}

// Edge connects two maxims. Direction is irrelevant for traversal.
type Edge struct {
	ID    int    `json:"id"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label,omitempty"`
	Title string `json:"title,omitempty"`
}

// Touches reports whether the edge has nodeID as an endpoint
func (e Edge) Touches(nodeID int) bool {
	return e.From == nodeID || e.To == nodeID
}

// Data is the static graph document
type Data struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Stats summarises a loaded graph
type Stats struct {
	NodeCount     int            `json:"node_count"`
	EdgeCount     int            `json:"edge_count"`
	IsolatedNodes []int          `json:"isolated_nodes"`
	EdgesByLabel  map[string]int `json:"edges_by_label"`
	NodesByTheme  map[Theme]int  `json:"nodes_by_theme"`
}

// Summary is the short form of a node used in neighbour lists
type Summary struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Numeral string `json:"numeral"`
}
