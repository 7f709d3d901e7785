package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maxim-atlas/backend/internal/graph"
)

func TestNodeLabel(t *testing.T) {
	assert.Equal(t, "XIV\nNever Be Put Out of Coun…", NodeLabel("xiv", "Never Be Put Out of Countenance", 25))
	assert.Equal(t, "I\nShort", NodeLabel("i", "Short", 25))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
}

func TestBuild_EdgesAndLabels(t *testing.T) {
	maxims := []Maxim{
		{ID: 1, Numeral: "i", Title: "Patience", Body: "waiting patience reward",
			PrimaryTheme: graph.ThemePrudence, SecondaryThemes: []graph.Theme{graph.ThemeModeration}},
		{ID: 2, Numeral: "ii", Title: "Patience", Body: "waiting patience reward",
			PrimaryTheme: graph.ThemeModeration, SecondaryThemes: []graph.Theme{graph.ThemePrudence}},
		{ID: 3, Numeral: "iii", Title: "Courage", Body: "bold heart",
			PrimaryTheme: graph.ThemeCharacter},
	}

	data, err := Build(maxims, nil)
	require.NoError(t, err)

	require.Len(t, data.Nodes, 3)
	assert.Equal(t, "II\nPatience", data.Nodes[1].Label)
	assert.Equal(t, graph.ThemeModeration, data.Nodes[1].Group)
	assert.Equal(t, []graph.Theme{}, data.Nodes[2].SecondaryThemes)

	require.Len(t, data.Edges, 1)
	e := data.Edges[0]
	assert.Equal(t, 0, e.ID)
	assert.Equal(t, 1, e.From)
	assert.Equal(t, 2, e.To)
	assert.Equal(t, string(graph.ThemeModeration), e.Label)
	assert.Equal(t, "Similarity: 1.00\nShared: Moderation & Balance, Prudence", e.Title)

	_, err = graph.NewStore(data)
	assert.NoError(t, err)
}

func TestBuild_RelatedWhenNoSharedTheme(t *testing.T) {
	maxims := []Maxim{
		{ID: 1, Numeral: "i", Title: "Patience", Body: "waiting", PrimaryTheme: graph.ThemePrudence},
		{ID: 2, Numeral: "ii", Title: "Patience", Body: "waiting", PrimaryTheme: graph.ThemeFortune},
	}

	data, err := Build(maxims, nil)
	require.NoError(t, err)
	require.Len(t, data.Edges, 1)
	assert.Equal(t, RelatedLabel, data.Edges[0].Label)
	assert.Equal(t, "Similarity: 1.00\nShared: ", data.Edges[0].Title)
}

func TestBuild_CapsEdgesPerNode(t *testing.T) {
	var maxims []Maxim
	for id := 1; id <= 4; id++ {
		maxims = append(maxims, Maxim{ID: id, Numeral: FormatNumeral(id), Title: "Same", Body: "words here",
			PrimaryTheme: graph.ThemePrudence})
	}
	opts := DefaultOptions()
	opts.Similarity.MaxEdgesPerNode = 1

	data, err := Build(maxims, opts)
	require.NoError(t, err)

	require.Len(t, data.Edges, 2)
	assert.Equal(t, [2]int{1, 2}, [2]int{data.Edges[0].From, data.Edges[0].To})
	assert.Equal(t, [2]int{3, 4}, [2]int{data.Edges[1].From, data.Edges[1].To})
}

func TestBuild_Rejects(t *testing.T) {
	_, err := Build([]Maxim{{ID: 1, Numeral: "i"}}, nil)
	assert.Error(t, err)

	_, err = Build([]Maxim{
		{ID: 1, Numeral: "i", PrimaryTheme: graph.ThemePrudence},
		{ID: 1, Numeral: "i", PrimaryTheme: graph.ThemePrudence},
	}, nil)
	assert.Error(t, err)
}
