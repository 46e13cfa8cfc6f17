package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/treykane/cli-journal/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			exists, err := config.Exists()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			state := "not created yet, run `journal config init`"
			if exists {
				state = "loaded"
			}
			fmt.Fprintf(out, "# %s (%s)\n", path, state)
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		dir, extension, layout, style string
		force                         bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file",
		Example: `
journal config init --default-dir ~/journal
journal config init --date-layout 2006-01-02 --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exists, err := config.Exists()
			if err != nil {
				return err
			}
			if exists && !force {
				return errors.New("config already exists, use --force to overwrite")
			}
			cfg, err := loadConfig()
			if err != nil {
				if !force {
					return err
				}
				cfg = config.Defaults()
			}
			if cmd.Flags().Changed("default-dir") {
				cfg.DefaultDir = dir
			}
			if cmd.Flags().Changed("extension") {
				cfg.Extension = extension
			}
			if cmd.Flags().Changed("date-layout") {
				cfg.DateLayout = layout
			}
			if cmd.Flags().Changed("glamour-style") {
				cfg.GlamourStyle = style
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			path, _ := config.ConfigPath()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "default-dir", "", "directory opened when none is remembered")
	cmd.Flags().StringVar(&extension, "extension", config.DefaultExtension, "entry file extension")
	cmd.Flags().StringVar(&layout, "date-layout", config.DefaultDateLayout, "date layout in Go reference-time notation")
	cmd.Flags().StringVar(&style, "glamour-style", config.DefaultGlamourStyle, "preview style: dark, light, notty or auto")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}
