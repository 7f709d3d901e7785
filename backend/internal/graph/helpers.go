package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// row reads typed columns from a query record. Missing or null columns read
// as zero values.
type row struct {
	record *neo4j.Record
}

func (r row) str(key string) string {
	val, ok := r.record.Get(key)
	if !ok || val == nil {
		return ""
	}
	s, _ := val.(string)
	return s
}

func (r row) number(key string) int {
	val, ok := r.record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func (r row) themes(key string) []Theme {
	val, ok := r.record.Get(key)
	if !ok || val == nil {
		return nil
	}
	list, ok := val.([]interface{})
	if !ok {
		return nil
	}
	out := make([]Theme, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, Theme(s))
		}
	}
	return out
}

func nodeFromRow(r row) Node {
	primary := Theme(r.str("primary_theme"))
	return Node{
		ID:              r.number("id"),
		Label:           r.str("label"),
		Title:           r.str("title"),
		Group:           primary,
		FullTitle:       r.str("full_title"),
		Body:            r.str("body"),
		Numeral:         r.str("numeral"),
		PrimaryTheme:    primary,
		SecondaryThemes: r.themes("secondary_themes"),
	}
}

func edgeFromRow(r row) Edge {
	return Edge{
		ID:    r.number("id"),
		From:  r.number("from_id"),
		To:    r.number("to_id"),
		Label: r.str("label"),
		Title: r.str("title"),
	}
}
