package builder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"maxim-atlas/backend/internal/graph"
)

type keyword struct {
	text    string
	pattern *regexp.Regexp
	weight  float64
}

// Categorizer assigns themes by weighted keyword counts
type Categorizer struct {
	opts     ThemeOptions
	keywords map[graph.Theme][]keyword
}

// ThemeScore is one theme's score for a maxim
type ThemeScore struct {
	Theme graph.Theme `json:"theme"`
	Score float64     `json:"score"`
}

// NewCategorizer compiles the keyword lists
func NewCategorizer(opts ThemeOptions) (*Categorizer, error) {
	c := &Categorizer{opts: opts, keywords: make(map[graph.Theme][]keyword)}

	for _, theme := range graph.AllThemes() {
		words := defaultKeywords[theme]
		if override, ok := opts.Keywords[string(theme)]; ok {
			words = override
		}
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(w) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("invalid keyword %q: %w", w, err)
			}
			c.keywords[theme] = append(c.keywords[theme], keyword{
				text:    w,
				pattern: re,
				// longer phrases are more specific
				weight: 1 + float64(len(strings.Fields(w))-1)*0.5,
			})
		}
	}
	return c, nil
}

// Scores ranks every theme for m, highest first. Ties keep the canonical
// theme order.
func (c *Categorizer) Scores(m Maxim) []ThemeScore {
	text := strings.ToLower(m.Title + " " + m.Body)
	title := strings.ToLower(m.Title)

	themes := graph.AllThemes()
	scores := make([]ThemeScore, 0, len(themes))
	for _, theme := range themes {
		score := 0.0
		for _, kw := range c.keywords[theme] {
			score += float64(len(kw.pattern.FindAllStringIndex(text, -1))) * kw.weight
			// substring match, so "self" also rewards "yourself"
			if strings.Contains(title, kw.text) {
				score += c.opts.TitleBonus
			}
		}
		scores = append(scores, ThemeScore{Theme: theme, Score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// Categorize picks the primary theme and up to MaxSecondary runners-up that
// score at least max(SecondaryRatio * primary, SecondaryFloor).
func (c *Categorizer) Categorize(m Maxim) (graph.Theme, []graph.Theme) {
	scores := c.Scores(m)
	primary := scores[0]

	threshold := primary.Score * c.opts.SecondaryRatio
	if threshold < c.opts.SecondaryFloor {
		threshold = c.opts.SecondaryFloor
	}

	secondary := []graph.Theme{}
	for i := 1; i < len(scores) && i <= c.opts.MaxSecondary; i++ {
		if scores[i].Score >= threshold {
			secondary = append(secondary, scores[i].Theme)
		}
	}
	return primary.Theme, secondary
}

// CategorizeAll returns a copy of maxims with themes assigned
func (c *Categorizer) CategorizeAll(maxims []Maxim) []Maxim {
	out := make([]Maxim, len(maxims))
	for i, m := range maxims {
		m.PrimaryTheme, m.SecondaryThemes = c.Categorize(m)
		out[i] = m
	}
	return out
}
