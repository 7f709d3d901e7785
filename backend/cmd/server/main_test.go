package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/pkg/config"
	apperrors "maxim-atlas/backend/pkg/errors"
)

const sampleDocument = `{
  "nodes": [
    {"id": 1, "label": "I\nOne", "title": "One", "group": "Prudence", "fullTitle": "One", "body": "b", "numeral": "i", "primaryTheme": "Prudence", "secondaryThemes": []},
    {"id": 2, "label": "II\nTwo", "title": "Two", "group": "Prudence", "fullTitle": "Two", "body": "b", "numeral": "ii", "primaryTheme": "Prudence", "secondaryThemes": []}
  ],
  "edges": [{"id": 0, "from": 1, "to": 2, "label": "Prudence", "title": "Similarity: 0.40"}]
}`

func TestOpenSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	src, closeSource, err := openSource(&config.Config{GraphSource: config.SourceFile, GraphPath: path})
	require.NoError(t, err)
	defer closeSource()

	store, err := graph.Open(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestOpenSource_HTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDocument))
	}))
	defer ts.Close()

	src, closeSource, err := openSource(&config.Config{
		GraphSource:      config.SourceHTTP,
		GraphURL:         ts.URL,
		GraphLoadTimeout: time.Second,
	})
	require.NoError(t, err)
	defer closeSource()

	assert.Equal(t, ts.URL, src.String())
	store, err := graph.Open(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, store.Neighbors(1))
}

func TestOpenSource_Unsupported(t *testing.T) {
	_, _, err := openSource(&config.Config{GraphSource: "carrier-pigeon"})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}
