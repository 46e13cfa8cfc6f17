package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List entries newest first",
		Example: `
journal list
journal list ~/journal
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			explicit := ""
			if len(args) == 1 {
				explicit = args[0]
			}
			dir, err := resolveDir(explicit, cfg)
			if err != nil {
				return err
			}

			repo := newRepository(cfg)
			entries, err := repo.List(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintf(out, "No entries in %s\n", dir)
				return err
			}

			header := color.New(color.Bold)
			faint := color.New(color.Faint)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(header.Sprint("DATE"), header.Sprint("TITLE"), header.Sprint("FILE"))
			for _, e := range entries {
				if !e.IsParsed() {
					tbl.AddRow(faint.Sprint("-"), faint.Sprint(e.Title), faint.Sprint(e.Filename))
					continue
				}
				tbl.AddRow(e.DateLabel(repo.DateLayout()), e.Title, e.Filename)
			}
			_, err = fmt.Fprintln(out, tbl)
			return err
		},
	}
	return cmd
}
