package graph

import "sort"

// Theme is one of the twelve fixed maxim categories
type Theme string

const (
	ThemeSelfKnowledge  Theme = "Self-Knowledge"
	ThemePrudence       Theme = "Prudence"
	ThemeSocialStrategy Theme = "Social Strategy"
	ThemeLeadership     Theme = "Leadership & Power"
	ThemeCharacter      Theme = "Character & Virtue"
	ThemeIntelligence   Theme = "Intelligence & Wit"
	ThemeCommunication  Theme = "Communication"
	ThemeFortune        Theme = "Fortune & Timing"
	ThemeAppearances    Theme = "Appearances"
	ThemeAmbition       Theme = "Ambition & Achievement"
	ThemeDealing        Theme = "Dealing with Others"
	ThemeModeration     Theme = "Moderation & Balance"
)

// UnknownThemeColor is used for badges whose theme is not one of the twelve
const UnknownThemeColor = "#666"

var allThemes = []Theme{
	ThemeSelfKnowledge,
	ThemePrudence,
	ThemeSocialStrategy,
	ThemeLeadership,
	ThemeCharacter,
	ThemeIntelligence,
	ThemeCommunication,
	ThemeFortune,
	ThemeAppearances,
	ThemeAmbition,
	ThemeDealing,
	ThemeModeration,
}

var themeColors = map[Theme]string{
	ThemeSelfKnowledge:  "#E2504C",
	ThemePrudence:       "#4DA6FF",
	ThemeSocialStrategy: "#FFA726",
	ThemeLeadership:     "#AB47BC",
	ThemeCharacter:      "#66BB6A",
	ThemeIntelligence:   "#FFEE58",
	ThemeCommunication:  "#26C6DA",
	ThemeFortune:        "#EC407A",
	ThemeAppearances:    "#8D6E63",
	ThemeAmbition:       "#FF7043",
	ThemeDealing:        "#78909C",
	ThemeModeration:     "#9CCC65",
}

// AllThemes returns the twelve themes in canonical order
func AllThemes() []Theme {
	out := make([]Theme, len(allThemes))
	copy(out, allThemes)
	return out
}

// Valid reports whether t is one of the twelve themes
func (t Theme) Valid() bool {
	_, ok := themeColors[t]
	return ok
}

// Color returns the display colour of the theme
func (t Theme) Color() string {
	if c, ok := themeColors[t]; ok {
		return c
	}
	return UnknownThemeColor
}

// ThemeSet is a set of active themes. The zero value is empty.
type ThemeSet map[Theme]struct{}

// NewThemeSet builds a set from the given themes
func NewThemeSet(themes ...Theme) ThemeSet {
	s := make(ThemeSet, len(themes))
	for _, t := range themes {
		s[t] = struct{}{}
	}
	return s
}

// FullThemeSet returns a set holding every theme
func FullThemeSet() ThemeSet {
	return NewThemeSet(allThemes...)
}

// Has reports membership
func (s ThemeSet) Has(t Theme) bool {
	_, ok := s[t]
	return ok
}

// Toggle flips membership of t and reports whether it is now present
func (s ThemeSet) Toggle(t Theme) bool {
	if s.Has(t) {
		delete(s, t)
		return false
	}
	s[t] = struct{}{}
	return true
}

// Clone returns an independent copy
func (s ThemeSet) Clone() ThemeSet {
	out := make(ThemeSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Sorted lists members, known themes first in canonical order, then any
// unknown ones alphabetically.
func (s ThemeSet) Sorted() []Theme {
	out := make([]Theme, 0, len(s))
	for _, t := range allThemes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	var extra []Theme
	for t := range s {
		if !t.Valid() {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
