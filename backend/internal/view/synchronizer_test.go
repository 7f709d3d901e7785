package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maxim-atlas/backend/internal/constants"
	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

func newStore(t *testing.T, data *graph.Data) *graph.Store {
	t.Helper()
	s, err := graph.NewStore(data)
	require.NoError(t, err)
	return s
}

// pairStore is the two-maxim graph {1 "A", 2 "B"} joined by one edge
func pairStore(t *testing.T) *graph.Store {
	return newStore(t, &graph.Data{
		Nodes: []graph.Node{
			{ID: 1, FullTitle: "A", Numeral: "i", PrimaryTheme: graph.ThemePrudence},
			{ID: 2, FullTitle: "B", Numeral: "ii", PrimaryTheme: graph.ThemePrudence},
		},
		Edges: []graph.Edge{{ID: 0, From: 1, To: 2}},
	})
}

// chainStore is 1-2-3-4-5 plus 1-3, with mixed themes
func chainStore(t *testing.T) *graph.Store {
	return newStore(t, &graph.Data{
		Nodes: []graph.Node{
			{ID: 1, FullTitle: "Know Thyself", Body: "Examine your own faults.", Numeral: "i", PrimaryTheme: graph.ThemeSelfKnowledge},
			{ID: 2, FullTitle: "Keep Matters in Suspense", Body: "Reserve is the seal of capacity.", Numeral: "ii", PrimaryTheme: graph.ThemePrudence},
			{ID: 3, FullTitle: "Avoid Victories over Superiors", Body: "All victories breed hate.", Numeral: "iii", PrimaryTheme: graph.ThemeLeadership},
			{ID: 4, FullTitle: "Think with the Few", Body: "Speak with the many.", Numeral: "iv", PrimaryTheme: graph.ThemeCommunication},
			{ID: 5, FullTitle: "Know how to Wait", Body: "It shows a noble heart.", Numeral: "v", PrimaryTheme: graph.ThemeFortune},
		},
		Edges: []graph.Edge{
			{ID: 0, From: 1, To: 2},
			{ID: 1, From: 2, To: 3},
			{ID: 2, From: 3, To: 4},
			{ID: 3, From: 4, To: 5},
			{ID: 4, From: 1, To: 3},
		},
	})
}

func assertBaseline(t *testing.T, o Overlay) {
	t.Helper()
	for _, n := range o.Nodes {
		assert.Equal(t, constants.BaselineNodeOpacity, n.Opacity, "node %d opacity", n.ID)
		assert.Equal(t, constants.BaselineNodeFontSize, n.FontSize, "node %d font", n.ID)
	}
	for _, e := range o.Edges {
		assert.Equal(t, constants.BaselineEdgeOpacity, e.Opacity, "edge %d opacity", e.ID)
		assert.Equal(t, constants.BaselineEdgeWidth, e.Width, "edge %d width", e.ID)
	}
}

func TestNewSynchronizer_Baseline(t *testing.T) {
	s := NewSynchronizer(chainStore(t))

	assert.Equal(t, ModeNeutral, s.Mode())
	assertBaseline(t, s.Overlay())
	for _, n := range s.Overlay().Nodes {
		assert.False(t, n.Hidden)
	}
}

func TestSelectNode_PairScenario(t *testing.T) {
	s := NewSynchronizer(pairStore(t))

	sel, err := s.SelectNode(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sel.Neighbors)

	n1, _ := s.NodeOverlay(1)
	assert.Equal(t, 1.0, n1.Opacity)
	assert.Equal(t, 14, n1.FontSize)

	n2, _ := s.NodeOverlay(2)
	assert.Equal(t, 0.9, n2.Opacity)
	assert.Equal(t, 10, n2.FontSize)

	e, _ := s.EdgeOverlay(0)
	assert.Equal(t, 0.8, e.Opacity)
	assert.Equal(t, 2.0, e.Width)
}

func TestSelectNode_NonNeighborsDimmed(t *testing.T) {
	store := chainStore(t)
	s := NewSynchronizer(store)

	for _, n := range store.Nodes() {
		_, err := s.SelectNode(n.ID)
		require.NoError(t, err)

		neighbors := toSet(store.Neighbors(n.ID))
		for _, o := range s.Overlay().Nodes {
			if _, ok := neighbors[o.ID]; ok || o.ID == n.ID {
				continue
			}
			assert.Equal(t, constants.DimmedNodeOpacity, o.Opacity, "selected %d, node %d", n.ID, o.ID)
			assert.Equal(t, 0, o.FontSize)
		}
	}
}

func TestSelectNode_Edges(t *testing.T) {
	s := NewSynchronizer(chainStore(t))

	sel, err := s.SelectNode(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, sel.Neighbors)
	assert.ElementsMatch(t, []int{1, 2, 4}, sel.Edges)

	for _, e := range s.Overlay().Edges {
		if e.ID == 1 || e.ID == 2 || e.ID == 4 {
			assert.Equal(t, constants.IncidentEdgeOpacity, e.Opacity)
			assert.Equal(t, constants.IncidentEdgeWidth, e.Width)
		} else {
			assert.Equal(t, constants.DistantEdgeOpacity, e.Opacity)
			assert.Equal(t, constants.DistantEdgeWidth, e.Width)
		}
	}
}

func TestSelectNode_UnknownLeavesOverlay(t *testing.T) {
	s := NewSynchronizer(chainStore(t))
	_, err := s.SelectNode(2)
	require.NoError(t, err)
	before := s.Overlay()

	_, err = s.SelectNode(99)
	var notFound *apperrors.ErrNodeNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 99, notFound.NodeID)
	assert.Equal(t, before, s.Overlay())
}

func TestSelectThenClear_RoundTrip(t *testing.T) {
	store := chainStore(t)
	s := NewSynchronizer(store)
	baseline := s.Overlay()

	_, err := s.SelectNode(1)
	require.NoError(t, err)
	s.ClearSelection()

	assert.Equal(t, baseline, s.Overlay())
	assert.Equal(t, ModeNeutral, s.Mode())
	_, selected := s.Selected()
	assert.False(t, selected)
}

func TestSearch_EmptyEqualsClear(t *testing.T) {
	store := chainStore(t)

	searched := NewSynchronizer(store)
	searched.FilterByThemes(graph.NewThemeSet(graph.ThemePrudence, graph.ThemeFortune))
	_, err := searched.SelectNode(4)
	require.NoError(t, err)
	matches := searched.Search("")

	cleared := NewSynchronizer(store)
	cleared.FilterByThemes(graph.NewThemeSet(graph.ThemePrudence, graph.ThemeFortune))
	_, err = cleared.SelectNode(4)
	require.NoError(t, err)
	cleared.ClearSelection()

	assert.Empty(t, matches)
	assert.Equal(t, cleared.Overlay(), searched.Overlay())
	assert.Equal(t, graph.NewThemeSet(graph.ThemePrudence, graph.ThemeFortune), searched.ActiveThemes())
}

func TestSearch_NoMatchDimsEverything(t *testing.T) {
	s := NewSynchronizer(chainStore(t))

	matches := s.Search("xyz-not-present")

	assert.Len(t, matches, 0)
	assert.Nil(t, s.Viewport())
	for _, n := range s.Overlay().Nodes {
		assert.Equal(t, constants.UnmatchedNodeOpacity, n.Opacity)
		assert.Equal(t, 0, n.FontSize)
	}
	for _, e := range s.Overlay().Edges {
		assert.Equal(t, constants.UnmatchedEdgeOpacity, e.Opacity)
		assert.Equal(t, constants.UnmatchedEdgeWidth, e.Width)
	}
}

func TestSearch_Matches(t *testing.T) {
	s := NewSynchronizer(chainStore(t))

	// "know" hits the titles of 1 and 5; "KNOW" checks case folding
	matches := s.Search("KNOW")
	assert.Equal(t, []int{1, 5}, matches)
	assert.Equal(t, ModeSearch, s.Mode())
	assert.Equal(t, "KNOW", s.Query())

	for _, n := range s.Overlay().Nodes {
		if n.ID == 1 || n.ID == 5 {
			assert.Equal(t, constants.MatchNodeOpacity, n.Opacity)
			assert.Equal(t, constants.MatchNodeFontSize, n.FontSize)
		} else {
			assert.Equal(t, constants.UnmatchedNodeOpacity, n.Opacity)
		}
	}

	vp := s.Viewport()
	require.NotNil(t, vp)
	assert.Equal(t, "fit", vp.Action)
	assert.Equal(t, []int{1, 5}, vp.NodeIDs)
	assert.Equal(t, int64(500), vp.AnimationMs)
}

func TestSearch_EdgesBetweenMatches(t *testing.T) {
	s := NewSynchronizer(chainStore(t))

	// only the numerals "ii" and "iii" contain "ii"
	matches := s.Search("ii")
	require.Equal(t, []int{2, 3}, matches)

	for _, e := range s.Overlay().Edges {
		if e.ID == 1 {
			assert.Equal(t, constants.MatchEdgeOpacity, e.Opacity)
			assert.Equal(t, constants.MatchEdgeWidth, e.Width)
		} else {
			assert.Equal(t, constants.UnmatchedEdgeOpacity, e.Opacity, "edge %d", e.ID)
			assert.Equal(t, constants.UnmatchedEdgeWidth, e.Width, "edge %d", e.ID)
		}
	}
}

func TestSearch_MatchesBody(t *testing.T) {
	s := NewSynchronizer(chainStore(t))
	assert.Equal(t, []int{4}, s.Search("speak with"))
}

func TestFilterByThemes_MembershipIndependentOfOverlay(t *testing.T) {
	store := chainStore(t)
	active := graph.NewThemeSet(graph.ThemePrudence, graph.ThemeCommunication)

	prepare := map[string]func(*Synchronizer){
		"neutral": func(*Synchronizer) {},
		"selected": func(s *Synchronizer) {
			_, _ = s.SelectNode(3)
		},
		"searched": func(s *Synchronizer) {
			s.Search("know")
		},
		"empty search": func(s *Synchronizer) {
			s.Search("nothing at all")
		},
	}

	for name, prep := range prepare {
		t.Run(name, func(t *testing.T) {
			s := NewSynchronizer(store)
			prep(s)
			before := s.Overlay()

			s.FilterByThemes(active)

			after := s.Overlay()
			for i, n := range store.Nodes() {
				assert.Equal(t, !active.Has(n.PrimaryTheme), after.Nodes[i].Hidden, "node %d", n.ID)
				assert.Equal(t, before.Nodes[i].Opacity, after.Nodes[i].Opacity, "node %d", n.ID)
				assert.Equal(t, before.Nodes[i].FontSize, after.Nodes[i].FontSize, "node %d", n.ID)
			}
			assert.Equal(t, before.Edges, after.Edges)
		})
	}
}

func TestFilterByThemes_SurvivesLaterInteraction(t *testing.T) {
	s := NewSynchronizer(chainStore(t))
	s.FilterByThemes(graph.NewThemeSet(graph.ThemeFortune))

	_, err := s.SelectNode(1)
	require.NoError(t, err)
	s.Search("know")
	s.ClearSelection()

	for _, n := range s.Overlay().Nodes {
		assert.Equal(t, n.ID != 5, n.Hidden, "node %d", n.ID)
	}
}

func TestFilterByThemes_CopiesSet(t *testing.T) {
	s := NewSynchronizer(chainStore(t))
	active := graph.NewThemeSet(graph.ThemePrudence)
	s.FilterByThemes(active)

	active.Toggle(graph.ThemeFortune)

	n5, _ := s.NodeOverlay(5)
	assert.True(t, n5.Hidden)
}

func TestCompute_IsPure(t *testing.T) {
	store := chainStore(t)
	st := State{Mode: ModeSelection, Selected: 2, Active: graph.FullThemeSet()}

	assert.Equal(t, Compute(store, st), Compute(store, st))
}

func TestOverlay_SnapshotIsCopy(t *testing.T) {
	s := NewSynchronizer(pairStore(t))
	snap := s.Overlay()
	snap.Nodes[0].Opacity = 0

	n, _ := s.NodeOverlay(1)
	assert.Equal(t, 1.0, n.Opacity)
}

func TestFocus(t *testing.T) {
	vp := Focus(7)
	assert.Equal(t, "focus", vp.Action)
	assert.Equal(t, []int{7}, vp.NodeIDs)
	assert.Equal(t, 1.2, vp.Scale)
}
