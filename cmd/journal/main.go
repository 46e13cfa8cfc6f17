// Package main provides the entry point for the journal CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-journal/internal/config"
	"github.com/treykane/cli-journal/internal/journal"
	"github.com/treykane/cli-journal/internal/prefs"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	logFileName = "journal.log"
	prefsDir    = "state"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(buildVersion())); err != nil {
		return 1
	}
	return 0
}

// newRootCmd creates the root command. Without a subcommand it starts the
// terminal UI.
func newRootCmd() *cobra.Command {
	var opts tuiOptions
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "A terminal journal for dated markdown entries",
		Long: `journal keeps a folder of markdown entries named <title>_<MM-DD-YYYY>.md.

Entries are listed newest first. The selected entry is edited on the left
and previewed as rendered markdown on the right; switching entries saves
the one you were editing.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "journal directory to open (remembered for next time)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs here instead of "+logFileName+" in the config directory")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the settings file. A missing file is not an error.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNotConfigured) {
		return cfg, err
	}
	return cfg, nil
}

func newRepository(cfg config.Config) *journal.Repository {
	return journal.NewRepository(journal.Options{
		Extension:  cfg.Extension,
		DateLayout: cfg.DateLayout,
	})
}

func openPrefs() (*prefs.Store, error) {
	dir := config.Dir()
	if dir == "" {
		return nil, errors.New("cannot resolve config directory")
	}
	return prefs.Open(filepath.Join(dir, prefsDir))
}

// resolveDir picks the directory for one-shot commands: the explicit value,
// then the directory remembered by the UI, then the configured default.
func resolveDir(explicit string, cfg config.Config) (string, error) {
	dir := explicit
	if dir == "" {
		if store, err := openPrefs(); err == nil {
			dir, _ = store.LastDirectory()
		}
	}
	if dir == "" {
		dir = cfg.DefaultDir
	}
	if dir == "" {
		return "", errors.New("no journal directory: pass one, set default_dir, or open one in the UI")
	}
	return config.NormalizeDir(dir)
}
