package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/bookstore/internal/cli"
	"github.com/inovacc/bookstore/internal/collection"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Remove a book from the collection",
	Long: `Delete a book from the remote collection by id.

Without an id on a terminal, pick the book from an interactive list.
Ids are shown by 'bookstore list'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openCollection(loadConfig(), slog.Default())
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		// Non-interactive mode: id provided as argument
		if len(args) > 0 {
			return runRemove(ctx, cmd.OutOrStdout(), view, args[0])
		}

		if !isInteractive() {
			return fmt.Errorf("an id is required when not running on a terminal")
		}

		// Interactive mode
		if err := view.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to list collection: %w", err)
		}

		rows := view.Rows()
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "The collection is empty.")
			return nil
		}

		p := tea.NewProgram(cli.NewPicker("Remove a book", rows), tea.WithContext(ctx))

		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		selected := finalModel.(cli.PickerModel).Selected()
		if selected == nil {
			return nil
		}

		return runRemove(ctx, cmd.OutOrStdout(), view, selected.ID)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(ctx context.Context, w io.Writer, view *collection.View, id string) error {
	if err := view.RemoveRecord(ctx, id); err != nil {
		return fmt.Errorf("failed to remove %s: %w", id, err)
	}

	_, _ = fmt.Fprintf(w, "✓ Removed %s (%d books left)\n", id, len(view.Snapshot()))

	return nil
}
