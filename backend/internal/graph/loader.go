package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	apperrors "maxim-atlas/backend/pkg/errors"
)

// Source produces the graph document. Implementations are called once at
// startup.
type Source interface {
	Load(ctx context.Context) (*Data, error)
	String() string
}

// document mirrors Data but keeps edge ids optional. Edges without an id are
// numbered in document order, after the largest explicit id.
type document struct {
	Nodes []Node         `json:"nodes"`
	Edges []documentEdge `json:"edges"`
}

type documentEdge struct {
	ID    *int   `json:"id"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label"`
	Title string `json:"title"`
}

// Decode parses a graph document
func Decode(r io.Reader) (*Data, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode graph document: %w", err)
	}
	if doc.Nodes == nil {
		return nil, apperrors.NewGraphInvalid("document has no nodes array")
	}

	data := &Data{
		Nodes: doc.Nodes,
		Edges: make([]Edge, 0, len(doc.Edges)),
	}
	next := 0
	for _, e := range doc.Edges {
		if e.ID != nil && *e.ID >= next {
			next = *e.ID + 1
		}
	}
	for _, e := range doc.Edges {
		id := next
		if e.ID != nil {
			id = *e.ID
		} else {
			next++
		}
		data.Edges = append(data.Edges, Edge{
			ID:    id,
			From:  e.From,
			To:    e.To,
			Label: e.Label,
			Title: e.Title,
		})
	}
	return data, nil
}

// Open loads from src and builds a Store, wrapping any failure as a load error
func Open(ctx context.Context, src Source) (*Store, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, apperrors.NewGraphLoadFailed(src.String(), err)
	}
	store, err := NewStore(data)
	if err != nil {
		return nil, apperrors.NewGraphLoadFailed(src.String(), err)
	}
	return store, nil
}

// FileSource reads the graph document from the local filesystem
type FileSource struct {
	Path string
}

// Load implements Source
func (f FileSource) Load(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func (f FileSource) String() string {
	return f.Path
}

// HTTPSource fetches the graph document over HTTP
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Load implements Source
func (h HTTPSource) Load(ctx context.Context) (*Data, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching graph: %s", resp.Status)
	}

	return Decode(resp.Body)
}

func (h HTTPSource) String() string {
	return h.URL
}
