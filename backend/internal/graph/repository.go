package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "maxim-atlas/backend/pkg/errors"
	"maxim-atlas/backend/pkg/logger"
)

// Repository reads and writes the maxim graph in Neo4j. Maxims are
// (:Maxim) nodes joined by [:RELATED] relationships.
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

func (r *Repository) String() string {
	return "neo4j"
}

// Load implements Source by reading the whole graph
func (r *Repository) Load(ctx context.Context) (*Data, error) {
	return r.FetchGraph(ctx)
}

// FetchGraph reads every maxim and relationship
func (r *Repository) FetchGraph(ctx context.Context) (*Data, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	nodeQuery := `
		MATCH (m:Maxim)
		RETURN
			m.id as id,
			m.label as label,
			m.title as title,
			m.full_title as full_title,
			m.body as body,
			m.numeral as numeral,
			m.primary_theme as primary_theme,
			m.secondary_themes as secondary_themes
		ORDER BY m.id
	`

	result, err := session.Run(ctx, nodeQuery, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailed("node query", err)
	}

	data := &Data{Nodes: []Node{}, Edges: []Edge{}}
	for result.Next(ctx) {
		data.Nodes = append(data.Nodes, nodeFromRow(row{result.Record()}))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailed("read nodes", err)
	}

	edgeQuery := `
		MATCH (a:Maxim)-[r:RELATED]->(b:Maxim)
		RETURN r.id as id, a.id as from_id, b.id as to_id, r.label as label, r.title as title
		ORDER BY r.id
	`

	result, err = session.Run(ctx, edgeQuery, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailed("edge query", err)
	}
	for result.Next(ctx) {
		data.Edges = append(data.Edges, edgeFromRow(row{result.Record()}))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailed("read edges", err)
	}

	r.logger.Debug("Graph fetched from Neo4j",
		zap.Int("nodes", len(data.Nodes)),
		zap.Int("edges", len(data.Edges)),
	)
	return data, nil
}

// CreateConstraints ensures maxim and relationship ids are unique
func (r *Repository) CreateConstraints(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT maxim_id IF NOT EXISTS FOR (m:Maxim) REQUIRE m.id IS UNIQUE",
		"CREATE CONSTRAINT related_id IF NOT EXISTS FOR ()-[r:RELATED]-() REQUIRE r.id IS UNIQUE",
	}
	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return apperrors.NewDatabaseQueryFailed("create constraint", err)
		}
	}
	return nil
}

// Clear removes every maxim and relationship
func (r *Repository) Clear(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "MATCH (m:Maxim) DETACH DELETE m", nil); err != nil {
		return apperrors.NewDatabaseQueryFailed("clear graph", err)
	}
	return nil
}

// SaveNodes upserts maxim nodes
func (r *Repository) SaveNodes(ctx context.Context, nodes []Node) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	rows := make([]map[string]interface{}, 0, len(nodes))
	for _, n := range nodes {
		secondary := make([]string, 0, len(n.SecondaryThemes))
		for _, t := range n.SecondaryThemes {
			secondary = append(secondary, string(t))
		}
		rows = append(rows, map[string]interface{}{
			"id":               int64(n.ID),
			"label":            n.Label,
			"title":            n.Title,
			"full_title":       n.FullTitle,
			"body":             n.Body,
			"numeral":          n.Numeral,
			"primary_theme":    string(n.PrimaryTheme),
			"secondary_themes": secondary,
		})
	}

	query := `
		UNWIND $rows as row
		MERGE (m:Maxim {id: row.id})
		SET m.label = row.label,
		    m.title = row.title,
		    m.full_title = row.full_title,
		    m.body = row.body,
		    m.numeral = row.numeral,
		    m.primary_theme = row.primary_theme,
		    m.secondary_themes = row.secondary_themes
	`

	if _, err := session.Run(ctx, query, map[string]interface{}{"rows": rows}); err != nil {
		return apperrors.NewDatabaseQueryFailed("save nodes", err)
	}

	r.logger.Info("Maxims saved", zap.Int("count", len(nodes)))
	return nil
}

// SaveEdges upserts relationships. Endpoints must already exist.
func (r *Repository) SaveEdges(ctx context.Context, edges []Edge) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	rows := make([]map[string]interface{}, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, map[string]interface{}{
			"id":    int64(e.ID),
			"from":  int64(e.From),
			"to":    int64(e.To),
			"label": e.Label,
			"title": e.Title,
		})
	}

	query := `
		UNWIND $rows as row
		MATCH (a:Maxim {id: row.from})
		MATCH (b:Maxim {id: row.to})
		MERGE (a)-[r:RELATED {id: row.id}]->(b)
		SET r.label = row.label,
		    r.title = row.title
	`

	if _, err := session.Run(ctx, query, map[string]interface{}{"rows": rows}); err != nil {
		return apperrors.NewDatabaseQueryFailed("save edges", err)
	}

	r.logger.Info("Relationships saved", zap.Int("count", len(edges)))
	return nil
}
