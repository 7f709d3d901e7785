package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "maxim-atlas/backend/pkg/errors"
)

func TestDecode_AssignsMissingEdgeIDs(t *testing.T) {
	doc := `{"nodes":[{"id":1,"fullTitle":"A","body":"","numeral":"i","primaryTheme":"Prudence"},
	{"id":2,"fullTitle":"B","body":"","numeral":"ii","primaryTheme":"Prudence"},
	{"id":3,"fullTitle":"C","body":"","numeral":"iii","primaryTheme":"Prudence"}],
	"edges":[{"from":1,"to":2},{"from":2,"to":3}]}`

	data, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, data.Edges, 2)
	assert.Equal(t, 0, data.Edges[0].ID)
	assert.Equal(t, 1, data.Edges[1].ID)
}

func TestDecode_MissingIDsFollowExplicitOnes(t *testing.T) {
	doc := `{"nodes":[{"id":1,"fullTitle":"A","body":"","numeral":"i","primaryTheme":"Prudence"},
	{"id":2,"fullTitle":"B","body":"","numeral":"ii","primaryTheme":"Prudence"},
	{"id":3,"fullTitle":"C","body":"","numeral":"iii","primaryTheme":"Prudence"}],
	"edges":[{"id":1,"from":1,"to":2},{"from":2,"to":3},{"from":1,"to":3},{"id":9,"from":3,"to":1}]}`

	data, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	ids := make([]int, 0, len(data.Edges))
	for _, e := range data.Edges {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 10, 11, 9}, ids)

	// positional ids would have collided with the explicit id 1
	store, err := NewStore(data)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, store.Neighbors(1))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"nodes": [`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"edges": []}`))
	var invalid *apperrors.ErrGraphInvalid
	assert.ErrorAs(t, err, &invalid)
}

func TestOpen_FileSource(t *testing.T) {
	store, err := Open(context.Background(), FileSource{Path: "testdata/graph.json"})
	require.NoError(t, err)

	assert.Equal(t, 4, store.Len())
	n, ok := store.Node(2)
	require.True(t, ok)
	assert.Equal(t, "Character and Intellect", n.FullTitle)
	assert.Equal(t, []Theme{ThemeIntelligence}, n.SecondaryThemes)
	assert.Equal(t, []int{1, 4}, store.Neighbors(2))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), FileSource{Path: "testdata/nope.json"})
	require.Error(t, err)

	var loadErr *apperrors.ErrGraphLoadFailed
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "testdata/nope.json", loadErr.Source)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeLoad))
}

func TestOpen_HTTPSource(t *testing.T) {
	body, err := os.ReadFile("testdata/graph.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	store, err := Open(context.Background(), HTTPSource{URL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)
	assert.Equal(t, 2, len(store.Edges()))
}

func TestOpen_HTTPSourceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Open(context.Background(), HTTPSource{URL: srv.URL})
	var loadErr *apperrors.ErrGraphLoadFailed
	assert.ErrorAs(t, err, &loadErr)
}

func TestOpen_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, FileSource{Path: "testdata/graph.json"})
	assert.ErrorIs(t, err, context.Canceled)
}
