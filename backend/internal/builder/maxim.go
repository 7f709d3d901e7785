// Package builder produces the graph document from extracted maxims: keyword
// theme categorisation, then TF-IDF similarity edges.
package builder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"maxim-atlas/backend/internal/graph"
)

// Maxim is one extracted maxim, before or after categorisation
type Maxim struct {
	ID              int           `json:"id"`
	Numeral         string        `json:"numeral"`
	Title           string        `json:"title"`
	Body            string        `json:"body"`
	PrimaryTheme    graph.Theme   `json:"primaryTheme,omitempty"`
	SecondaryThemes []graph.Theme `json:"secondaryThemes,omitempty"`
}

// Themes returns the primary theme followed by the secondary themes
func (m Maxim) Themes() []graph.Theme {
	return append([]graph.Theme{m.PrimaryTheme}, m.SecondaryThemes...)
}

// ReadMaxims decodes a JSON array of maxims
func ReadMaxims(r io.Reader) ([]Maxim, error) {
	var maxims []Maxim
	if err := json.NewDecoder(r).Decode(&maxims); err != nil {
		return nil, fmt.Errorf("failed to decode maxims: %w", err)
	}
	return maxims, nil
}

// ReadMaximsFile reads a JSON array of maxims from path
func ReadMaximsFile(path string) ([]Maxim, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMaxims(f)
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteJSONFile writes v as indented JSON to path
func WriteJSONFile(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CheckNumerals reports maxims whose numeral does not match their id
func CheckNumerals(maxims []Maxim) []error {
	var problems []error
	for _, m := range maxims {
		n, err := ParseNumeral(m.Numeral)
		if err != nil {
			problems = append(problems, fmt.Errorf("maxim %d: %w", m.ID, err))
			continue
		}
		if n != m.ID {
			problems = append(problems, fmt.Errorf("maxim %d: numeral %q is %d", m.ID, m.Numeral, n))
		}
	}
	return problems
}
