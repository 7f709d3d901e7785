package graph

import (
	"fmt"
	"sort"
	"strings"

	apperrors "maxim-atlas/backend/pkg/errors"
)

// Store is the immutable in-memory graph. It is built once from a Data
// document and is safe for concurrent readers.
type Store struct {
	nodes     []Node
	edges     []Edge
	nodeIndex map[int]int
	edgeIndex map[int]int
	neighbors map[int][]int
	incident  map[int][]int
	haystacks []string
}

// NewStore validates data and indexes it for adjacency and search lookups
func NewStore(data *Data) (*Store, error) {
	if data == nil {
		return nil, apperrors.NewGraphInvalid("document is empty")
	}

	s := &Store{
		nodes:     make([]Node, len(data.Nodes)),
		edges:     make([]Edge, len(data.Edges)),
		nodeIndex: make(map[int]int, len(data.Nodes)),
		edgeIndex: make(map[int]int, len(data.Edges)),
		neighbors: make(map[int][]int, len(data.Nodes)),
		incident:  make(map[int][]int, len(data.Nodes)),
		haystacks: make([]string, len(data.Nodes)),
	}

	for i, n := range data.Nodes {
		if _, dup := s.nodeIndex[n.ID]; dup {
			return nil, apperrors.NewGraphInvalid(fmt.Sprintf("duplicate node id %d", n.ID))
		}
		if !n.PrimaryTheme.Valid() {
			return nil, apperrors.NewGraphInvalid(fmt.Sprintf("node %d has unknown primary theme %q", n.ID, n.PrimaryTheme))
		}
		n.SecondaryThemes = append([]Theme(nil), n.SecondaryThemes...)
		s.nodes[i] = n
		s.nodeIndex[n.ID] = i
		s.haystacks[i] = n.SearchText()
	}

	seenPair := make(map[[2]int]struct{}, len(data.Edges))
	for i, e := range data.Edges {
		if _, dup := s.edgeIndex[e.ID]; dup {
			return nil, apperrors.NewGraphInvalid(fmt.Sprintf("duplicate edge id %d", e.ID))
		}
		if _, ok := s.nodeIndex[e.From]; !ok {
			return nil, apperrors.NewGraphInvalid(fmt.Sprintf("edge %d references unknown node %d", e.ID, e.From))
		}
		if _, ok := s.nodeIndex[e.To]; !ok {
			return nil, apperrors.NewGraphInvalid(fmt.Sprintf("edge %d references unknown node %d", e.ID, e.To))
		}
		if e.From == e.To {
			return nil, apperrors.NewGraphInvalid(fmt.Sprintf("edge %d is a self-loop on node %d", e.ID, e.From))
		}

		s.edges[i] = e
		s.edgeIndex[e.ID] = i
		s.incident[e.From] = append(s.incident[e.From], e.ID)
		s.incident[e.To] = append(s.incident[e.To], e.ID)

		// Parallel edges keep their own overlay entries but count once as adjacency
		pair := [2]int{min(e.From, e.To), max(e.From, e.To)}
		if _, seen := seenPair[pair]; seen {
			continue
		}
		seenPair[pair] = struct{}{}
		s.neighbors[e.From] = append(s.neighbors[e.From], e.To)
		s.neighbors[e.To] = append(s.neighbors[e.To], e.From)
	}

	for id := range s.neighbors {
		sort.Ints(s.neighbors[id])
	}

	return s, nil
}

// Len returns the number of nodes
func (s *Store) Len() int {
	return len(s.nodes)
}

// Has reports whether a node with the identifier exists
func (s *Store) Has(id int) bool {
	_, ok := s.nodeIndex[id]
	return ok
}

// Node returns the node with the given identifier
func (s *Store) Node(id int) (Node, bool) {
	i, ok := s.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}

// Nodes returns every node in document order. The slice is shared; callers
// must not modify it.
func (s *Store) Nodes() []Node {
	return s.nodes
}

// Edges returns every edge in document order. The slice is shared; callers
// must not modify it.
func (s *Store) Edges() []Edge {
	return s.edges
}

// NodePosition returns the document position of a node, for callers that
// keep slices aligned with Nodes().
func (s *Store) NodePosition(id int) (int, bool) {
	i, ok := s.nodeIndex[id]
	return i, ok
}

// EdgePosition returns the document position of an edge
func (s *Store) EdgePosition(id int) (int, bool) {
	i, ok := s.edgeIndex[id]
	return i, ok
}

// Neighbors returns the identifiers adjacent to id, ascending
func (s *Store) Neighbors(id int) []int {
	src := s.neighbors[id]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// IncidentEdges returns the identifiers of edges touching id, in document order
func (s *Store) IncidentEdges(id int) []int {
	src := s.incident[id]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// NeighborSummaries returns the neighbours of id as summaries sorted by id
func (s *Store) NeighborSummaries(id int) []Summary {
	ids := s.neighbors[id]
	out := make([]Summary, 0, len(ids))
	for _, nid := range ids {
		n := s.nodes[s.nodeIndex[nid]]
		out = append(out, Summary{ID: n.ID, Title: n.FullTitle, Numeral: n.Numeral})
	}
	return out
}

// Match returns the identifiers of nodes whose search text contains query,
// ignoring case, in document order.
func (s *Store) Match(query string) []int {
	needle := strings.ToLower(query)
	var out []int
	for i, h := range s.haystacks {
		if strings.Contains(h, needle) {
			out = append(out, s.nodes[i].ID)
		}
	}
	return out
}

// Data returns a copy of the graph document
func (s *Store) Data() *Data {
	d := &Data{
		Nodes: make([]Node, len(s.nodes)),
		Edges: make([]Edge, len(s.edges)),
	}
	copy(d.Nodes, s.nodes)
	copy(d.Edges, s.edges)
	return d
}

// Stats computes summary counts for the graph
func (s *Store) Stats() Stats {
	st := Stats{
		NodeCount:     len(s.nodes),
		EdgeCount:     len(s.edges),
		IsolatedNodes: []int{},
		EdgesByLabel:  make(map[string]int),
		NodesByTheme:  make(map[Theme]int),
	}
	for _, n := range s.nodes {
		st.NodesByTheme[n.PrimaryTheme]++
		if len(s.incident[n.ID]) == 0 {
			st.IsolatedNodes = append(st.IsolatedNodes, n.ID)
		}
	}
	for _, e := range s.edges {
		label := e.Label
		if label == "" {
			label = "related"
		}
		st.EdgesByLabel[label]++
	}
	sort.Ints(st.IsolatedNodes)
	return st
}
