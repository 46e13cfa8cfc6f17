package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-journal/internal/app"
	"github.com/treykane/cli-journal/internal/config"
	"github.com/treykane/cli-journal/internal/logging"
	"github.com/treykane/cli-journal/internal/session"
	"github.com/treykane/cli-journal/internal/shell"
)

type tuiOptions struct {
	dir     string
	logFile string
}

func runTUI(cmd *cobra.Command, opts tuiOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logPath := opts.logFile
	if logPath == "" {
		logPath = filepath.Join(config.Dir(), logFileName)
	}
	logFile, err := openLogFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logging.Configure(logFile, "")

	store, err := openPrefs()
	if err != nil {
		return err
	}
	if opts.dir != "" {
		dir, err := config.NormalizeDir(opts.dir)
		if err != nil {
			return fmt.Errorf("--dir: %w", err)
		}
		if err := store.SetLastDirectory(dir); err != nil {
			return err
		}
	}

	repo := newRepository(cfg)
	ctrl := session.New(repo)
	m, err := app.New(app.Options{
		Controller:   ctrl,
		Bridge:       shell.New(ctrl, repo, store, cfg.DefaultDir),
		DateLayout:   repo.DateLayout(),
		GlamourStyle: cfg.GlamourStyle,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	return err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
