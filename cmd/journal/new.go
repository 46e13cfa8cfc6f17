package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create an empty entry dated today",
		Example: `
journal new Groceries
journal new "Trip planning" --dir ~/journal
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			target, err := resolveDir(dir, cfg)
			if err != nil {
				return err
			}
			entry, err := newRepository(cfg).Create(target, strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), entry.Path)
			return err
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "journal directory (defaults to the last one opened)")
	return cmd
}
