package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"maxim-atlas/backend/internal/builder"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/panel"
	"maxim-atlas/backend/internal/ui"
	"maxim-atlas/backend/internal/view"
)

func statsCmd(load storeLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the graph document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ui.Banner(w, "graph stats")
			printStats(w, store.Stats())
			return nil
		},
	}
}

func printStats(w io.Writer, st graph.Stats) {
	fmt.Fprintf(w, "  %d nodes, %d edges\n", st.NodeCount, st.EdgeCount)
	fmt.Fprintf(w, "  Isolated nodes: %d\n", len(st.IsolatedNodes))
	if len(st.IsolatedNodes) > 0 {
		ids := make([]string, 0, len(st.IsolatedNodes))
		for _, id := range st.IsolatedNodes {
			ids = append(ids, strconv.Itoa(id))
		}
		fmt.Fprintf(w, "  %s\n", ui.Subtle.Sprint("IDs: "+strings.Join(ids, ", ")))
	}
	fmt.Fprintln(w)

	ui.Table(w, []string{"Theme", "Maxims"}, themeRows(st.NodesByTheme))
	fmt.Fprintln(w)

	labels := make([]string, 0, len(st.EdgesByLabel))
	for l := range st.EdgesByLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if st.EdgesByLabel[labels[i]] != st.EdgesByLabel[labels[j]] {
			return st.EdgesByLabel[labels[i]] > st.EdgesByLabel[labels[j]]
		}
		return labels[i] < labels[j]
	})
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []string{l, strconv.Itoa(st.EdgesByLabel[l])})
	}
	ui.Table(w, []string{"Edge label", "Edges"}, rows)
}

func searchCmd(load storeLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find maxims whose title, body or numeral contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			query := view.NormalizeQuery(strings.Join(args, " "))
			ids := store.Match(query)
			sort.Ints(ids)

			ui.Banner(w, fmt.Sprintf("%d found for %q", len(ids), query))
			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				n, _ := store.Node(id)
				rows = append(rows, []string{strings.ToUpper(n.Numeral), n.FullTitle, string(n.PrimaryTheme)})
			}
			ui.Table(w, []string{"Maxim", "Title", "Theme"}, rows)
			return nil
		},
	}
}

func showCmd(load storeLoader) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a maxim as the detail panel shows it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}

			p := panel.NewPresenter(store)
			detail, err := p.Open(id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asHTML {
				html, err := panel.Render(detail)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, html)
				return nil
			}
			printDetail(w, detail)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the rendered panel markup")
	return cmd
}

// parseID accepts a decimal id or a roman numeral
func parseID(arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return id, nil
	}
	id, err := builder.ParseNumeral(arg)
	if err != nil {
		return 0, fmt.Errorf("not an id or numeral: %q", arg)
	}
	return id, nil
}

func printDetail(w io.Writer, d panel.Detail) {
	fmt.Fprintf(w, "%s\n", ui.Brand.Sprint(d.Heading))
	fmt.Fprintf(w, "%s\n\n", ui.Info.Sprint(d.Title))
	fmt.Fprintf(w, "%s\n\n", d.Body)

	badges := make([]string, 0, len(d.Badges))
	for _, b := range d.Badges {
		badges = append(badges, ui.Swatch(b.Theme))
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(badges, "  "))

	fmt.Fprintln(w, ui.Subtle.Sprint(d.ConnectionsHeader))
	for _, c := range d.Connections {
		fmt.Fprintf(w, "  %s %-6s %s\n", ui.Subtle.Sprint("──"), c.Numeral, c.Title)
	}
}

func validateCmd(graphPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the graph document loads and numerals match ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			store, err := graph.Open(cmd.Context(), graph.FileSource{Path: *graphPath})
			if err != nil {
				fmt.Fprintf(w, "  %s %v\n", ui.StatusIcon(false), err)
				return err
			}
			fmt.Fprintf(w, "  %s %d nodes, %d edges load cleanly\n", ui.StatusIcon(true), store.Len(), len(store.Edges()))

			maxims := make([]builder.Maxim, 0, store.Len())
			for _, n := range store.Nodes() {
				maxims = append(maxims, builder.Maxim{ID: n.ID, Numeral: n.Numeral})
			}
			problems := builder.CheckNumerals(maxims)
			for _, p := range problems {
				fmt.Fprintf(w, "  %s %v\n", ui.WarnIcon(), p)
			}
			if len(problems) == 0 {
				fmt.Fprintf(w, "  %s numerals match ids\n", ui.StatusIcon(true))
			}
			return nil
		},
	}
}
