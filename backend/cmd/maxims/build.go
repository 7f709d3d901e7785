package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"maxim-atlas/backend/internal/builder"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/ui"
)

func extractCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Split the source document into numbered maxims",
		Long: `Read the source text as a .docx document or a plain-text export with
one paragraph per line, and write one record per maxim with its id,
numeral, title and body.

  maxims extract --in AWW.docx --out data/maxims_raw.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			maxims, err := builder.ExtractFile(in)
			if err != nil {
				return fmt.Errorf("failed to extract %s: %w", in, err)
			}
			if err := builder.WriteJSONFile(out, maxims); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			ui.Banner(w, fmt.Sprintf("extracted %d maxims → %s", len(maxims), out))
			missing, duplicates := builder.NumberingGaps(maxims, builder.MaximCount)
			if len(missing) > 0 {
				fmt.Fprintf(w, "  %s Missing ids: %s\n", ui.WarnIcon(), joinInts(missing))
			}
			if len(duplicates) > 0 {
				fmt.Fprintf(w, "  %s Duplicate ids: %s\n", ui.WarnIcon(), joinInts(duplicates))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "AWW.docx", "Source document (.docx or plain text)")
	cmd.Flags().StringVar(&out, "out", "data/maxims_raw.json", "Where to write extracted maxims")
	return cmd
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func categorizeCmd() *cobra.Command {
	var in, out, optionsPath string

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Assign primary and secondary themes by keyword scoring",
		Long: `Score each maxim against the keyword lists of the twelve themes and
write the maxims back with primaryTheme and secondaryThemes set.

  maxims categorize --in data/maxims_raw.json --out data/maxims.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			opts, err := builder.LoadOptions(optionsPath)
			if err != nil {
				return err
			}
			maxims, err := builder.ReadMaximsFile(in)
			if err != nil {
				return err
			}
			for _, problem := range builder.CheckNumerals(maxims) {
				fmt.Fprintf(w, "  %s %v\n", ui.WarnIcon(), problem)
			}

			c, err := builder.NewCategorizer(opts.Themes)
			if err != nil {
				return err
			}
			maxims = c.CategorizeAll(maxims)

			if err := builder.WriteJSONFile(out, maxims); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			counts := make(map[graph.Theme]int)
			for _, m := range maxims {
				counts[m.PrimaryTheme]++
			}
			ui.Banner(w, fmt.Sprintf("categorized %d maxims", len(maxims)))
			ui.Table(w, []string{"Theme", "Maxims"}, themeRows(counts))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "data/maxims_raw.json", "Extracted maxims")
	cmd.Flags().StringVar(&out, "out", "data/maxims.json", "Where to write categorised maxims")
	cmd.Flags().StringVar(&optionsPath, "options", "", "TOML build options")
	return cmd
}

func buildCmd() *cobra.Command {
	var in, out, optionsPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the graph document from categorised maxims",
		Long: `Connect maxims whose TF-IDF cosine similarity exceeds the threshold,
strongest pairs first, capped per node, and write the graph document.

  maxims build --in data/maxims.json --out data/graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			opts, err := builder.LoadOptions(optionsPath)
			if err != nil {
				return err
			}
			maxims, err := builder.ReadMaximsFile(in)
			if err != nil {
				return err
			}

			data, err := builder.Build(maxims, opts)
			if err != nil {
				return err
			}
			store, err := graph.NewStore(data)
			if err != nil {
				return fmt.Errorf("built graph is invalid: %w", err)
			}
			if err := builder.WriteJSONFile(out, data); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			ui.Banner(w, "graph built → "+out)
			printStats(w, store.Stats())
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "data/maxims.json", "Categorised maxims")
	cmd.Flags().StringVar(&out, "out", defaultGraphPath, "Where to write the graph document")
	cmd.Flags().StringVar(&optionsPath, "options", "", "TOML build options")
	return cmd
}

func themeRows(counts map[graph.Theme]int) [][]string {
	themes := graph.AllThemes()
	sort.SliceStable(themes, func(i, j int) bool {
		return counts[themes[i]] > counts[themes[j]]
	})
	var rows [][]string
	for _, t := range themes {
		if counts[t] == 0 {
			continue
		}
		rows = append(rows, []string{ui.Swatch(t), strconv.Itoa(counts[t])})
	}
	return rows
}
