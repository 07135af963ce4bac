package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/ui"
)

// filterFlags are the view-state flags shared by ls and show.
type filterFlags struct {
	status   string
	search   string
	category string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", catalog.All, "status pill: all, new, available, reserved or taken")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVarP(&f.category, "category", "c", catalog.All, "category (case-insensitive)")
}

func (f *filterFlags) state() (catalog.ViewState, error) {
	st, err := catalog.ParseStatusFilter(f.status)
	if err != nil {
		return catalog.ViewState{}, UsageError{Err: err}
	}
	return catalog.DefaultViewState().WithStatus(st).WithSearch(f.search).WithCategory(f.category), nil
}

func newListCmd(app *App) *cobra.Command {
	var (
		filters filterFlags
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the catalog grouped the way the browser shows it",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := filters.state()
			if err != nil {
				return err
			}
			store := catalog.NewStore(app.load(cmd.Context()))
			tree := catalog.Build(store, v, app.catalogOptions())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), treeJSON(tree))
			}
			printTree(cmd.OutOrStdout(), store, v, tree)
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the grouped catalog as JSON")
	return cmd
}

func printTree(w io.Writer, store *catalog.Store, v catalog.ViewState, tree catalog.Tree) {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s",
		ui.C(t.Title, "Giveaway"),
		ui.C(t.Muted, fmt.Sprintf("%d items", store.Len())),
	)
	lines := []string{header, ui.PillsLine(v.Status, catalog.Counts(store, v))}
	if fl := ui.FilterLine(v); fl != "" {
		lines = append(lines, fl)
	}
	lines = append(lines, "")
	lines = append(lines, ui.TreeLines(tree)...)
	ui.Panel(w, lines)
}

func newShowCmd(app *App) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "show <n>",
		Short: "Open the n-th card of `ls` (same filters) and print its details",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return usagef("show: not a number: %s", args[0])
			}
			v, err := filters.state()
			if err != nil {
				return err
			}
			store := catalog.NewStore(app.load(cmd.Context()))
			cards := catalog.Build(store, v, app.catalogOptions()).Cards()
			if n < 1 || n > len(cards) {
				return usagef("index out of range: have %d, got %d", len(cards), n)
			}
			modal := catalog.Modal{Placeholder: app.cfg.PlaceholderImage}
			card := cards[n-1]
			if !modal.Open(store, card) {
				return fmt.Errorf("%q is taken and has no details", card.Title)
			}
			ui.Panel(cmd.OutOrStdout(), ui.DetailLines(modal.Detail()))
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List distinct categories with item counts",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := catalog.NewStore(app.load(cmd.Context())).Categories()
			w := cmd.OutOrStdout()
			if asJSON {
				if cats == nil {
					cats = []catalog.Category{}
				}
				return writeJSON(w, cats)
			}
			if len(cats) == 0 {
				fmt.Fprintln(w, ui.C(ui.Current().Muted, "no categories"))
				return nil
			}
			for _, c := range cats {
				fmt.Fprintf(w, "%s %s %s\n", ui.Current().Bullet, c.Label, ui.C(ui.Current().Muted, fmt.Sprintf("(%d)", c.Count)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

type sectionJSON struct {
	Bucket string     `json:"bucket"`
	Label  string     `json:"label"`
	Count  int        `json:"count"`
	Items  []cardJSON `json:"items"`
}

type cardJSON struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Badge       string `json:"badge"`
	Meta        string `json:"meta,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Image       string `json:"image,omitempty"`
	Interactive bool   `json:"interactive"`
}

func treeJSON(tree catalog.Tree) []sectionJSON {
	out := []sectionJSON{}
	for _, n := range tree.Nodes {
		switch n.Kind {
		case catalog.NodeHeading:
			out = append(out, sectionJSON{
				Bucket: n.Heading.Bucket.String(),
				Label:  n.Heading.Label,
				Count:  n.Heading.Count,
				Items:  []cardJSON{},
			})
		case catalog.NodeCard:
			c := n.Card
			last := &out[len(out)-1]
			last.Items = append(last.Items, cardJSON{
				Index:       c.Index,
				Title:       c.Title,
				Badge:       c.Badge,
				Meta:        c.Meta,
				Notes:       c.Notes,
				Image:       c.Image,
				Interactive: c.Interactive,
			})
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
