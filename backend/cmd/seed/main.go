package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/pkg/config"
	"maxim-atlas/backend/pkg/logger"
)

const (
	edgeBatchSize  = 200
	edgeWriteLimit = 4
)

func main() {
	path := flag.String("file", "", "Graph document to import (defaults to GRAPH_PATH)")
	reset := flag.Bool("reset", false, "Delete every maxim before importing")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development", ""); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting graph import...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if *path == "" {
		*path = cfg.GraphPath
	}

	ctx := context.Background()

	// Validate the document before touching the database
	store, err := graph.Open(ctx, graph.FileSource{Path: *path})
	if err != nil {
		log.Fatal("Failed to read graph document", zap.String("path", *path), zap.Error(err))
	}
	data := store.Data()

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(ctx)

	// Verify connection
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver)

	log.Info("Creating constraints...")
	if err := repo.CreateConstraints(ctx); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	if *reset {
		log.Info("Clearing existing graph...")
		if err := repo.Clear(ctx); err != nil {
			log.Fatal("Failed to clear graph", zap.Error(err))
		}
	}

	if err := repo.SaveNodes(ctx, data.Nodes); err != nil {
		log.Fatal("Failed to save maxims", zap.Error(err))
	}

	if err := saveEdges(ctx, repo, data.Edges); err != nil {
		log.Fatal("Failed to save relationships", zap.Error(err))
	}

	log.Info("Graph import complete",
		zap.String("path", *path),
		zap.Int("maxims", len(data.Nodes)),
		zap.Int("relationships", len(data.Edges)),
	)
}

// saveEdges writes relationships in batches, a few at a time
func saveEdges(ctx context.Context, repo *graph.Repository, edges []graph.Edge) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(edgeWriteLimit)

	for _, batch := range batches(edges, edgeBatchSize) {
		batch := batch
		g.Go(func() error {
			return repo.SaveEdges(gctx, batch)
		})
	}
	return g.Wait()
}

func batches(edges []graph.Edge, size int) [][]graph.Edge {
	var out [][]graph.Edge
	for start := 0; start < len(edges); start += size {
		end := start + size
		if end > len(edges) {
			end = len(edges)
		}
		out = append(out, edges[start:end])
	}
	return out
}
