package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/bookstore/internal/application"
	"github.com/inovacc/bookstore/internal/cli"
	"github.com/inovacc/bookstore/internal/config"
	"github.com/spf13/cobra"
)

const browseLogFile = "browse.log"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the collection interactively",
	Long: `Open the interactive browser.

Keys:
  /      search any field
  1-5    sort by title, author, year, isbn or price (again to reverse)
  a      add a book
  d      delete the selected book
  r      refresh
  q      quit

Logs are written to browse.log in the application directory.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	logFile, err := openBrowseLog()
	if err != nil {
		return err
	}

	defer func() { _ = logFile.Close() }()

	// The terminal belongs to the UI while it runs.
	logger, err := newLogger(logFile, rootLogLevel, rootLogFormat)
	if err != nil {
		return err
	}

	cfg := loadConfig()

	view, err := openCollection(cfg, logger)
	if err != nil {
		return err
	}

	url, _ := config.ResolveURL(rootURL, cfg)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	m := cli.NewBrowseModel(ctx, view, cli.BrowseOptions{Logger: logger, URL: url})

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("browser exited: %w", err)
	}

	return nil
}

func openBrowseLog() (*os.File, error) {
	dir, err := application.EnsureApplicationDirectory()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, browseLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return f, nil
}
