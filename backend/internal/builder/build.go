package builder

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"maxim-atlas/backend/internal/graph"
)

// RelatedLabel names edges whose endpoints share no theme
const RelatedLabel = "related"

type candidate struct {
	from, to int
	score    float64
	shared   []graph.Theme
}

// Truncate shortens s to max runes, ending in an ellipsis when cut
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// NodeLabel is the two-line canvas label: upper-case numeral, then title
func NodeLabel(numeral, title string, maxTitle int) string {
	return strings.ToUpper(numeral) + "\n" + Truncate(title, maxTitle)
}

// Build turns categorised maxims into a graph document. Pairs whose TF-IDF
// cosine similarity exceeds the threshold become edges, strongest first,
// while neither endpoint has reached MaxEdgesPerNode.
func Build(maxims []Maxim, opts *Options) (*graph.Data, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	seen := make(map[int]bool, len(maxims))
	for _, m := range maxims {
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate maxim id %d", m.ID)
		}
		seen[m.ID] = true
		if m.PrimaryTheme == "" {
			return nil, fmt.Errorf("maxim %d has no primary theme; categorize first", m.ID)
		}
	}

	data := &graph.Data{
		Nodes: make([]graph.Node, 0, len(maxims)),
		Edges: []graph.Edge{},
	}
	for _, m := range maxims {
		secondary := m.SecondaryThemes
		if secondary == nil {
			secondary = []graph.Theme{}
		}
		data.Nodes = append(data.Nodes, graph.Node{
			ID:              m.ID,
			Label:           NodeLabel(m.Numeral, m.Title, opts.Labels.MaxTitleLength),
			Title:           m.Title,
			Group:           m.PrimaryTheme,
			FullTitle:       m.Title,
			Body:            m.Body,
			Numeral:         m.Numeral,
			PrimaryTheme:    m.PrimaryTheme,
			SecondaryThemes: secondary,
		})
	}

	candidates := similarPairs(maxims, opts.Similarity)

	counts := make(map[int]int)
	for _, c := range candidates {
		if counts[c.from] >= opts.Similarity.MaxEdgesPerNode || counts[c.to] >= opts.Similarity.MaxEdgesPerNode {
			continue
		}
		data.Edges = append(data.Edges, edgeFor(len(data.Edges), c))
		counts[c.from]++
		counts[c.to]++
	}

	return data, nil
}

func similarPairs(maxims []Maxim, opts SimilarityOptions) []candidate {
	docs := make([]string, len(maxims))
	for i, m := range maxims {
		docs[i] = m.Title + " " + m.Body
	}
	_, vectors := FitTFIDF(docs, opts.MaxFeatures)

	var out []candidate
	for i := range maxims {
		for j := i + 1; j < len(maxims); j++ {
			score := Cosine(vectors[i], vectors[j])
			if score <= opts.Threshold {
				continue
			}
			out = append(out, candidate{
				from:   maxims[i].ID,
				to:     maxims[j].ID,
				score:  score,
				shared: sharedThemes(maxims[i], maxims[j]),
			})
		}
	}

	// stable, so equal scores keep pair order
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].score > out[b].score
	})
	return out
}

func sharedThemes(a, b Maxim) []graph.Theme {
	inA := make(map[graph.Theme]bool)
	for _, t := range a.Themes() {
		inA[t] = true
	}
	var shared []graph.Theme
	added := make(map[graph.Theme]bool)
	for _, t := range b.Themes() {
		if inA[t] && !added[t] {
			shared = append(shared, t)
			added[t] = true
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })
	return shared
}

func edgeFor(id int, c candidate) graph.Edge {
	label := RelatedLabel
	names := make([]string, len(c.shared))
	for i, t := range c.shared {
		names[i] = string(t)
	}
	if len(names) > 0 {
		label = names[0]
	}
	return graph.Edge{
		ID:    id,
		From:  c.from,
		To:    c.to,
		Label: label,
		Title: fmt.Sprintf("Similarity: %.2f\nShared: %s", c.score, strings.Join(names, ", ")),
	}
}
