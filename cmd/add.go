package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/inovacc/bookstore/internal/collection"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/spf13/cobra"
)

var addDraft model.Draft

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the collection",
	Long: `Create a new book in the remote collection. The store assigns the id.

Year, ISBN and price are free text and are stored as given.

Examples:
  bookstore add --title Dune --author "Frank Herbert" --year 1965 --price 9.99`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openCollection(loadConfig(), slog.Default())
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		return runAdd(ctx, cmd.OutOrStdout(), view, addDraft)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDraft.Title, "title", "", "Book title")
	addCmd.Flags().StringVar(&addDraft.Author, "author", "", "Book author")
	addCmd.Flags().StringVar(&addDraft.Year, "year", "", "Publication year")
	addCmd.Flags().StringVar(&addDraft.ISBN, "isbn", "", "ISBN")
	addCmd.Flags().StringVar(&addDraft.Price, "price", "", "Price")

	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("author")
}

func runAdd(ctx context.Context, w io.Writer, view *collection.View, draft model.Draft) error {
	if err := view.AddRecord(ctx, draft); err != nil {
		return fmt.Errorf("failed to add %q: %w", draft.Title, err)
	}

	_, _ = fmt.Fprintf(w, "✓ Added %q (%d books in the collection)\n", draft.Title, len(view.Snapshot()))

	return nil
}
