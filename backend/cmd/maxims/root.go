package main

import (
	"context"

	"github.com/spf13/cobra"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/ui"
)

const defaultGraphPath = "data/graph.json"

func newRootCmd() *cobra.Command {
	var graphPath string

	root := &cobra.Command{
		Use:   "maxims",
		Short: "Build and inspect the maxim graph",
		Long: ui.Brand.Sprint("maxims") + " · build and inspect the maxim graph\n" +
			ui.Subtle.Sprint("Extract and categorise maxims, build similarity edges, and query the result"),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&graphPath, "graph", defaultGraphPath, "Graph document to read")

	load := func(ctx context.Context) (*graph.Store, error) {
		return graph.Open(ctx, graph.FileSource{Path: graphPath})
	}

	root.AddCommand(
		extractCmd(),
		categorizeCmd(),
		buildCmd(),
		statsCmd(load),
		searchCmd(load),
		showCmd(load),
		validateCmd(&graphPath),
	)
	return root
}

type storeLoader func(ctx context.Context) (*graph.Store, error)
