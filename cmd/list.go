package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/bookstore/internal/collection"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/spf13/cobra"
)

var (
	listSearch string
	listSort   string
	listDesc   bool
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the books in the collection",
	Long: `Fetch the whole collection and print it filtered and sorted.

The search text matches any field, case-insensitively. Sorting compares
numbers inside values by their numeric value, so year 9 comes before 10.

Examples:
  bookstore list
  bookstore list --search herbert --sort year --desc
  bookstore list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		opts := listOptions{
			search: listSearch,
			key:    cfg.SortKey,
			dir:    cfg.Direction,
			json:   listJSON,
		}

		if cmd.Flags().Changed("sort") {
			key, err := model.ParseField(listSort)
			if err != nil {
				return err
			}

			opts.key = key
		}

		if cmd.Flags().Changed("desc") {
			opts.dir = model.Ascending
			if listDesc {
				opts.dir = model.Descending
			}
		}

		view, err := openCollection(cfg, slog.Default())
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		return runList(ctx, cmd.OutOrStdout(), view, opts)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show books with a field containing this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort column: title, author, year, isbn or price (default from config)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort in descending order")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

type listOptions struct {
	search string
	key    model.Field
	dir    model.Direction
	json   bool
}

func runList(ctx context.Context, w io.Writer, view *collection.View, opts listOptions) error {
	if err := view.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to list collection: %w", err)
	}

	view.SetSearchQuery(opts.search)
	view.SetSortKey(opts.key)

	if _, dir := view.Sort(); dir != opts.dir {
		view.ToggleSortDirection()
	}

	rows := view.Rows()

	if opts.json {
		return printJSON(w, rows)
	}

	if len(rows) == 0 {
		if opts.search != "" {
			_, _ = fmt.Fprintf(w, "No books match %q.\n", opts.search)
			return nil
		}

		_, _ = fmt.Fprintln(w, "The collection is empty.")
		_, _ = fmt.Fprintln(w, "\nAdd a book with: bookstore add --title <title> --author <author>")

		return nil
	}

	if err := printRecords(w, rows, view.Columns()); err != nil {
		return err
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	_, _ = fmt.Fprintln(w, "\n"+countStyle.Render(fmt.Sprintf("%d of %d books", len(rows), len(view.Snapshot()))))

	return nil
}
