package main

import (
	"fmt"
	"net/http"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/pkg/config"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// openSource picks the graph source named by the configuration. The returned
// func releases whatever the source holds open.
func openSource(cfg *config.Config) (graph.Source, func(), error) {
	switch cfg.GraphSource {
	case config.SourceFile:
		return graph.FileSource{Path: cfg.GraphPath}, func() {}, nil

	case config.SourceHTTP:
		client := &http.Client{Timeout: cfg.GraphLoadTimeout}
		return graph.HTTPSource{URL: cfg.GraphURL, Client: client}, func() {}, nil

	case config.SourceNeo4j:
		driver, err := neo4j.NewDriverWithContext(
			cfg.Neo4jURI,
			neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
		)
		if err != nil {
			return nil, nil, apperrors.NewDatabaseConnectionFailed(cfg.Neo4jURI, err)
		}
		repo := graph.NewRepository(driver)
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, apperrors.NewConfigValidationFailed("GRAPH_SOURCE", fmt.Sprintf("unsupported source %q", cfg.GraphSource))
	}
}
