package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/gops/agent"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/inovacc/bookstore/internal/server"
	"github.com/inovacc/bookstore/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr        string
	serveBackend     string
	serveDB          string
	serveDiagnostics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local development document store",
	Long: `Run a small document store that speaks the same HTTP JSON protocol as
the Firebase Realtime Database REST API:

  GET    /<collection>.json        whole collection, null when empty
  POST   /<collection>.json        new document, answers {"name": "<id>"}
  DELETE /<collection>/<id>.json   remove a document, answers null

Documents are kept in bbolt (default), SQLite or memory. Point the client
at http://<addr>/books, which is the default collection URL.

The server stops on Ctrl+C or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := resolveServeOptions(cmd, loadConfig())

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		return runServe(ctx, opts, slog.Default())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:9000)")
	serveCmd.Flags().StringVar(&serveBackend, "backend", "", "Storage backend: bolt, sqlite or memory (default from config, bolt)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "Database file (default in the application directory)")
	serveCmd.Flags().BoolVar(&serveDiagnostics, "diagnostics", false, "Start a gops agent for runtime diagnostics")
}

type serveOptions struct {
	addr        string
	backend     string
	db          string
	diagnostics bool
}

// resolveServeOptions lets explicit flags win over the [server] section.
func resolveServeOptions(cmd *cobra.Command, cfg model.Config) serveOptions {
	opts := serveOptions{
		addr:        cfg.ServerAddr,
		backend:     cfg.Backend,
		db:          cfg.DBPath,
		diagnostics: serveDiagnostics,
	}

	if cmd.Flags().Changed("addr") {
		opts.addr = serveAddr
	}

	if cmd.Flags().Changed("backend") {
		opts.backend = serveBackend
	}

	if cmd.Flags().Changed("db") {
		opts.db = serveDB
	}

	if opts.addr == "" {
		opts.addr = server.DefaultConfig().Addr
	}

	return opts
}

// runServe opens the store and serves until ctx is cancelled.
func runServe(ctx context.Context, opts serveOptions, logger *slog.Logger) error {
	if opts.diagnostics {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("failed to start diagnostics agent: %w", err)
		}

		defer agent.Close()

		logger.Info("diagnostics agent started")
	}

	st, err := store.Open(opts.backend, opts.db)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", opts.backend, err)
	}

	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close store", slog.Any("error", err))
		}
	}()

	logger.Info("starting development store",
		slog.String("backend", opts.backend),
		slog.String("db", opts.db),
	)

	srv := server.New(st, server.Config{Addr: opts.addr, Logger: logger})

	return srv.Start(ctx)
}
