package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/bookstore/internal/application"
	"github.com/inovacc/bookstore/internal/process"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

var (
	serviceStart     bool
	serviceStop      bool
	serviceInstall   bool
	serviceUninstall bool
	serviceStatus    bool
	serviceRun       bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the development store as a system service",
	Long: `Install, uninstall, start, stop, or check the status of the development
store ('bookstore serve') as a system service.

On Windows, this creates/manages a Windows Service.
On Linux/macOS, this creates/manages a systemd/launchd service.

The service uses the [server] section of the config file. Set it first with
'bookstore config set server.addr ...'.`,
	Args: cobra.NoArgs,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().BoolVar(&serviceStart, "start", false, "Start the store service")
	serviceCmd.Flags().BoolVar(&serviceStop, "stop", false, "Stop the store service")
	serviceCmd.Flags().BoolVar(&serviceInstall, "install", false, "Install the store as a system service")
	serviceCmd.Flags().BoolVar(&serviceUninstall, "uninstall", false, "Uninstall the store system service")
	serviceCmd.Flags().BoolVar(&serviceStatus, "status", false, "Check the store service status")

	// Used by the service manager to run the store in the foreground.
	serviceCmd.Flags().BoolVar(&serviceRun, "run", false, "Run the store under the service manager")
	_ = serviceCmd.Flags().MarkHidden("run")
}

// program implements service.Interface by running the store in-process.
type program struct {
	opts   serveOptions
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(_ service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	// Start should not block.
	go func() {
		defer close(p.done)

		if err := runServe(ctx, p.opts, p.logger); err != nil {
			p.logger.Error("store exited with error", slog.Any("error", err))
		}
	}()

	return nil
}

func (p *program) Stop(_ service.Service) error {
	if p.cancel == nil {
		return nil
	}

	p.cancel()
	<-p.done

	return nil
}

func runService(cmd *cobra.Command, _ []string) error {
	// Count how many flags are set
	flagCount := 0

	for _, set := range []bool{serviceStart, serviceStop, serviceInstall, serviceUninstall, serviceStatus, serviceRun} {
		if set {
			flagCount++
		}
	}

	if flagCount == 0 {
		return fmt.Errorf("please specify one of: --start, --stop, --install, --uninstall, --status")
	}

	if flagCount > 1 {
		return fmt.Errorf("please specify only one operation at a time")
	}

	svcConfig := &service.Config{
		Name:        application.ServiceName,
		DisplayName: "Bookstore Development Store",
		Description: "Local Firebase compatible JSON document store for bookstore",
		Arguments:   []string{"service", "--run"},
	}

	prg := &program{
		opts:   resolveServeOptions(serveCmd, loadConfig()),
		logger: slog.Default(),
	}

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	w := cmd.OutOrStdout()

	switch {
	case serviceRun:
		return s.Run()
	case serviceInstall:
		if err := s.Install(); err != nil {
			return fmt.Errorf("failed to install service: %w", err)
		}

		_, _ = fmt.Fprintln(w, "✓ Service installed successfully!")
		_, _ = fmt.Fprintf(w, "  Address: %s\n  Backend: %s\n", prg.opts.addr, prg.opts.backend)
		_, _ = fmt.Fprintln(w, "\nTo start the service, run:")
		_, _ = fmt.Fprintln(w, "  bookstore service --start")
	case serviceUninstall:
		// Try to stop first
		_ = s.Stop()

		if err := s.Uninstall(); err != nil {
			return fmt.Errorf("failed to uninstall service: %w", err)
		}

		_, _ = fmt.Fprintln(w, "✓ Service uninstalled successfully!")
	case serviceStart:
		if err := s.Start(); err != nil {
			return fmt.Errorf("failed to start service: %w", err)
		}

		_, _ = fmt.Fprintln(w, "✓ Service started successfully!")
		_, _ = fmt.Fprintf(w, "\nStore is listening on %s\n", prg.opts.addr)
	case serviceStop:
		if err := s.Stop(); err != nil {
			return fmt.Errorf("failed to stop service: %w", err)
		}

		_, _ = fmt.Fprintln(w, "✓ Service stopped successfully!")
	case serviceStatus:
		return printServiceStatus(cmd, s)
	}

	return nil
}

func printServiceStatus(cmd *cobra.Command, s service.Service) error {
	w := cmd.OutOrStdout()

	status, err := s.Status()
	if err != nil && !errors.Is(err, service.ErrNotInstalled) {
		return fmt.Errorf("failed to get service status: %w", err)
	}

	_, _ = fmt.Fprint(w, "Service Status: ")

	switch {
	case errors.Is(err, service.ErrNotInstalled):
		_, _ = fmt.Fprintln(w, "Not installed")
	case status == service.StatusRunning:
		_, _ = fmt.Fprintln(w, "Running ✓")
	case status == service.StatusStopped:
		_, _ = fmt.Fprintln(w, "Stopped")
	default:
		_, _ = fmt.Fprintln(w, "Unknown")
	}

	// Stores started by hand with 'bookstore serve' are not known to the
	// service manager.
	self := os.Getpid()

	for _, p := range process.Find(application.AppName) {
		if p.PID == self {
			continue
		}

		note := ""
		if p.Agent {
			note = " (diagnostics agent)"
		}

		_, _ = fmt.Fprintf(w, "Running process: PID %d %s%s\n", p.PID, p.Path, note)
	}

	return nil
}
