package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maxim-atlas/backend/internal/builder"
	"maxim-atlas/backend/internal/graph"
)

const rawMaxims = `[
  {"id": 1, "numeral": "i", "title": "Friends and Fortune", "body": "A wise friend is a fortune worth more than a kingdom."},
  {"id": 2, "numeral": "ii", "title": "Friends in Fortune", "body": "A true friend shares fortune and a kingdom."},
  {"id": 3, "numeral": "iii", "title": "Silence", "body": "silence is the sanctuary of prudence."}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func buildFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	raw := filepath.Join(dir, "maxims_raw.json")
	categorized := filepath.Join(dir, "maxims.json")
	graphPath := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(raw, []byte(rawMaxims), 0o644))

	out, err := run(t, "categorize", "--in", raw, "--out", categorized)
	require.NoError(t, err)
	assert.Contains(t, out, "categorized 3 maxims")

	maxims, err := builder.ReadMaximsFile(categorized)
	require.NoError(t, err)
	assert.Equal(t, graph.ThemeSocialStrategy, maxims[0].PrimaryTheme)
	assert.Equal(t, graph.ThemeCommunication, maxims[2].PrimaryTheme)

	out, err = run(t, "build", "--in", categorized, "--out", graphPath)
	require.NoError(t, err)
	assert.Contains(t, out, "3 nodes")
	return graphPath
}

func TestCategorizeAndBuild(t *testing.T) {
	graphPath := buildFixture(t)

	f, err := os.Open(graphPath)
	require.NoError(t, err)
	defer f.Close()
	data, err := graph.Decode(f)
	require.NoError(t, err)

	store, err := graph.NewStore(data)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, store.Neighbors(1))
	assert.Empty(t, store.Neighbors(3))
	assert.Equal(t, "I\nFriends and Fortune", data.Nodes[0].Label)
}

func TestInspectCommands(t *testing.T) {
	graphPath := buildFixture(t)

	out, err := run(t, "--graph", graphPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Isolated nodes: 1")

	out, err = run(t, "--graph", graphPath, "search", "kingdom")
	require.NoError(t, err)
	assert.Contains(t, out, "2 found")
	assert.Contains(t, out, "Friends in Fortune")

	out, err = run(t, "--graph", graphPath, "show", "ii")
	require.NoError(t, err)
	assert.Contains(t, out, "Maxim II")
	assert.Contains(t, out, "Connected Maxims (1)")

	out, err = run(t, "--graph", graphPath, "show", "1", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, `id="detail-title"`)

	_, err = run(t, "--graph", graphPath, "show", "99")
	assert.Error(t, err)

	out, err = run(t, "--graph", graphPath, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "numerals match ids")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, "--graph", filepath.Join(t.TempDir(), "missing.json"), "validate")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID("157")
	require.NoError(t, err)
	assert.Equal(t, 157, id)

	id, err = parseID("CLVII")
	require.NoError(t, err)
	assert.Equal(t, 157, id)

	_, err = parseID("vivid")
	assert.Error(t, err)
}

func TestExtract_PlainTextExport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "maxims.txt")
	raw := filepath.Join(dir, "maxims_raw.json")
	text := "i\u00a0Everything is at its Acme\nEspecially the art of making one's way.\n" +
		"p. 1\niii\u00a0Keep Matters for a Time in Suspense\nAdmiration at their novelty.\n"
	require.NoError(t, os.WriteFile(src, []byte(text), 0o644))

	out, err := run(t, "extract", "--in", src, "--out", raw)
	require.NoError(t, err)
	assert.Contains(t, out, "extracted 2 maxims")
	assert.Contains(t, out, "Missing ids: 2, 4, 5")

	maxims, err := builder.ReadMaximsFile(raw)
	require.NoError(t, err)
	require.Len(t, maxims, 2)
	assert.Equal(t, "Keep Matters for a Time in Suspense", maxims[1].Title)
	assert.Empty(t, builder.CheckNumerals(maxims))
}

func TestExtract_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "extract", "--in", filepath.Join(dir, "none.docx"), "--out", filepath.Join(dir, "out.json"))
	assert.Error(t, err)
}
