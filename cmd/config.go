package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/inovacc/bookstore/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
	Long: `Show or change the settings stored in config.ini in the application directory.

Keys:
  remote.url       collection URL, e.g. https://example.firebaseio.com/books
  ui.sort          initial sort column (title, author, year, isbn, price)
  ui.direction     initial sort direction (asc, desc)
  server.addr      listen address of 'bookstore serve'
  server.backend   storage of 'bookstore serve' (bolt, sqlite, memory)
  server.db        database file of 'bookstore serve'`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		w := cmd.OutOrStdout()

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range config.Entries(cfg) {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.Key, e.Value)
		}

		if err := tw.Flush(); err != nil {
			return err
		}

		url, source := config.ResolveURL(rootURL, cfg)
		_, _ = fmt.Fprintf(w, "\nCollection URL in use: %s (from %s)\n", url, source)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Example: `  bookstore config set remote.url https://example.firebaseio.com/books
  bookstore config set ui.sort year`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		if err := config.Set(&cfg, args[0], args[1]); err != nil {
			return err
		}

		if err := config.Save(path, cfg); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
