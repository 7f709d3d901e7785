package builder

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// Options holds the graph build parameters.
type Options struct {
	Similarity SimilarityOptions `toml:"similarity"`
	Labels     LabelOptions      `toml:"labels"`
	Themes     ThemeOptions      `toml:"themes"`
}

// SimilarityOptions controls which similarity edges are kept.
type SimilarityOptions struct {
	Threshold       float64 `toml:"threshold"`
	MaxEdgesPerNode int     `toml:"max_edges_per_node"`
	MaxFeatures     int     `toml:"max_features"`
}

// LabelOptions controls node labels.
type LabelOptions struct {
	MaxTitleLength int `toml:"max_title_length"`
}

// ThemeOptions controls keyword categorisation. Keywords replaces the built-in
// keyword list of each theme it names.
type ThemeOptions struct {
	TitleBonus     float64             `toml:"title_bonus"`
	SecondaryRatio float64             `toml:"secondary_ratio"`
	SecondaryFloor float64             `toml:"secondary_floor"`
	MaxSecondary   int                 `toml:"max_secondary"`
	Keywords       map[string][]string `toml:"keywords"`
}

// DefaultOptions returns the parameters the published graph was built with.
func DefaultOptions() *Options {
	return &Options{
		Similarity: SimilarityOptions{Threshold: 0.12, MaxEdgesPerNode: 8, MaxFeatures: 500},
		Labels:     LabelOptions{MaxTitleLength: 25},
		Themes: ThemeOptions{
			TitleBonus:     3,
			SecondaryRatio: 0.3,
			SecondaryFloor: 1.0,
			MaxSecondary:   3,
		},
	}
}

// LoadOptions reads a TOML options file over the defaults. An empty path
// returns the defaults.
func LoadOptions(path string) (*Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	if err := toml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks the options are usable
func (o *Options) Validate() error {
	if o.Similarity.Threshold < 0 || o.Similarity.Threshold >= 1 {
		return apperrors.NewConfigValidationFailed("similarity.threshold", "must be in [0, 1)")
	}
	if o.Similarity.MaxEdgesPerNode <= 0 {
		return apperrors.NewConfigValidationFailed("similarity.max_edges_per_node", "must be positive")
	}
	if o.Similarity.MaxFeatures <= 0 {
		return apperrors.NewConfigValidationFailed("similarity.max_features", "must be positive")
	}
	if o.Labels.MaxTitleLength < 2 {
		return apperrors.NewConfigValidationFailed("labels.max_title_length", "must be at least 2")
	}
	if o.Themes.MaxSecondary < 0 {
		return apperrors.NewConfigValidationFailed("themes.max_secondary", "must not be negative")
	}
	for name := range o.Themes.Keywords {
		if !graph.Theme(name).Valid() {
			return apperrors.NewConfigValidationFailed("themes.keywords", fmt.Sprintf("unknown theme %q", name))
		}
	}
	return nil
}
