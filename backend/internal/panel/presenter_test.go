package panel

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

func testStore(t *testing.T) *graph.Store {
	t.Helper()
	s, err := graph.NewStore(&graph.Data{
		Nodes: []graph.Node{
			{ID: 5, FullTitle: "Create a Feeling of Dependence", Body: "A god is made by worshippers.", Numeral: "v",
				PrimaryTheme: graph.ThemeSocialStrategy, SecondaryThemes: []graph.Theme{graph.ThemeLeadership, "Gardening"}},
			{ID: 12, FullTitle: "Nature and Art", Body: "Art is the complement of nature.", Numeral: "xii", PrimaryTheme: graph.ThemeCharacter},
			{ID: 3, FullTitle: "Keep Matters in Suspense", Body: "<b>Mystery</b> is admired.", Numeral: "iii", PrimaryTheme: graph.ThemePrudence},
			{ID: 40, FullTitle: "Alone", Body: "", Numeral: "xl", PrimaryTheme: graph.ThemeFortune},
		},
		Edges: []graph.Edge{
			{ID: 0, From: 5, To: 12},
			{ID: 1, From: 3, To: 5},
		},
	})
	require.NoError(t, err)
	return s
}

func TestPresenter_StartsClosed(t *testing.T) {
	p := NewPresenter(testStore(t))

	assert.Equal(t, State{Status: StatusClosed}, p.State())
	_, ok := p.Detail()
	assert.False(t, ok)

	v, err := p.View()
	require.NoError(t, err)
	assert.Nil(t, v.Detail)
	assert.Empty(t, v.HTML)
}

func TestPresenter_OpenClose(t *testing.T) {
	p := NewPresenter(testStore(t))

	d, err := p.Open(5)
	require.NoError(t, err)
	assert.Equal(t, State{Status: StatusOpen, NodeID: 5}, p.State())
	assert.Equal(t, "Maxim V", d.Heading)
	assert.Equal(t, "Create a Feeling of Dependence", d.Title)
	assert.Equal(t, "Connected Maxims (2)", d.ConnectionsHeader)

	// ascending by neighbour id
	require.Len(t, d.Connections, 2)
	assert.Equal(t, Connection{ID: 3, Numeral: "III", Title: "Keep Matters in Suspense"}, d.Connections[0])
	assert.Equal(t, Connection{ID: 12, Numeral: "XII", Title: "Nature and Art"}, d.Connections[1])

	_, err = p.Open(12)
	require.NoError(t, err)
	assert.Equal(t, 12, p.State().NodeID)

	p.Close()
	assert.False(t, p.State().IsOpen())
}

func TestPresenter_OpenUnknownKeepsState(t *testing.T) {
	p := NewPresenter(testStore(t))
	_, err := p.Open(12)
	require.NoError(t, err)

	_, err = p.Open(77)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeGraph))
	assert.Equal(t, State{Status: StatusOpen, NodeID: 12}, p.State())
}

func TestBuildDetail_Badges(t *testing.T) {
	s := testStore(t)
	node, _ := s.Node(5)

	d := BuildDetail(node, nil)

	assert.Equal(t, []Badge{
		{Theme: graph.ThemeSocialStrategy, Color: "#FFA726", Primary: true},
		{Theme: graph.ThemeLeadership, Color: "#AB47BC88"},
		{Theme: "Gardening", Color: "#66666688"},
	}, d.Badges)
	assert.Equal(t, "Connected Maxims (0)", d.ConnectionsHeader)
	assert.Empty(t, d.Connections)
}

func TestBuildDetail_SortsUnorderedInput(t *testing.T) {
	node := graph.Node{ID: 1, Numeral: "i", PrimaryTheme: graph.ThemePrudence}

	d := BuildDetail(node, []graph.Summary{{ID: 9, Numeral: "ix"}, {ID: 2, Numeral: "ii"}, {ID: 4, Numeral: "iv"}})

	var ids []int
	for _, c := range d.Connections {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int{2, 4, 9}, ids)
}

func TestRender_Markup(t *testing.T) {
	p := NewPresenter(testStore(t))
	_, err := p.Open(5)
	require.NoError(t, err)

	v, err := p.View()
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(v.HTML))
	require.NoError(t, err)

	assert.Equal(t, "Maxim V", doc.Find("#detail-numeral").Text())
	assert.Equal(t, "Create a Feeling of Dependence", doc.Find("#detail-title").Text())
	assert.Equal(t, 1, doc.Find(".theme-badge.primary").Length())
	assert.Equal(t, 2, doc.Find(".theme-badge.secondary").Length())
	assert.Equal(t, "Connected Maxims (2)", doc.Find("#connections-header").Text())

	var targets []string
	doc.Find(".connection-item").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("data-node-id")
		targets = append(targets, id)
	})
	assert.Equal(t, []string{"3", "12"}, targets)
	assert.Equal(t, "III", doc.Find(".connection-item .connection-numeral").First().Text())
}

func TestRender_EscapesBody(t *testing.T) {
	p := NewPresenter(testStore(t))
	_, err := p.Open(3)
	require.NoError(t, err)

	v, err := p.View()
	require.NoError(t, err)

	assert.NotContains(t, v.HTML, "<b>Mystery</b>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(v.HTML))
	require.NoError(t, err)
	assert.Equal(t, "<b>Mystery</b> is admired.", doc.Find("#detail-body").Text())
	assert.Equal(t, 0, doc.Find("#detail-body b").Length())
}

func TestThemeChips(t *testing.T) {
	chips := ThemeChips(graph.NewThemeSet(graph.ThemePrudence))

	require.Len(t, chips, 12)
	assert.Equal(t, graph.ThemeSelfKnowledge, chips[0].Theme)
	assert.False(t, chips[0].Active)
	assert.Equal(t, Chip{Theme: graph.ThemePrudence, Color: "#4DA6FF", Active: true}, chips[1])

	for _, c := range Legend() {
		assert.True(t, c.Active)
	}
}
