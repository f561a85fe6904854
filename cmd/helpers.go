package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/inovacc/bookstore/internal/collection"
	"github.com/inovacc/bookstore/internal/config"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/inovacc/bookstore/internal/remote"
)

// loadConfig reads the config file. A broken file is reported and the
// defaults are used so that flags and env still work.
func loadConfig() model.Config {
	cfg, err := config.LoadDefault()
	if err != nil {
		slog.Warn("using default configuration", slog.Any("error", err))
	}

	return cfg
}

// openCollection resolves the collection URL and builds the view over it.
func openCollection(cfg model.Config, logger *slog.Logger) (*collection.View, error) {
	url, source := config.ResolveURL(rootURL, cfg)
	logger.Debug("resolved collection url", slog.String("url", url), slog.String("source", string(source)))

	client, err := remote.New(url, remote.Options{Logger: logger})
	if err != nil {
		return nil, err
	}

	view := collection.NewView(client, collection.ViewOptions{
		Logger:    logger,
		SortKey:   cfg.SortKey,
		Direction: cfg.Direction,
	})

	return view, nil
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// printRecords writes records as an aligned table with the sort indicator on
// the active column.
func printRecords(w io.Writer, records []model.Record, columns []model.Column) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, 0, len(columns)+1)

	for _, c := range columns {
		header := strings.ToUpper(c.Label)
		if c.Active {
			if c.Direction == model.Descending {
				header += " ▼"
			} else {
				header += " ▲"
			}
		}

		headers = append(headers, header)
	}

	headers = append(headers, "ID")

	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Title, r.Author, r.Year, r.ISBN, r.Price, r.ID)
	}

	return tw.Flush()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
