package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashishact/ramblefix/internal/entity"
)

func newCatalogCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the entity catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newCatalogLintCommand(cctx))
	return cmd
}

func newCatalogLintCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [catalog-file]",
		Short: "Check catalog entries for missing fields and likely duplicates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cctx.cfg.Catalog.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no catalog file given and catalog.path is not configured")
			}

			cf, err := entity.LoadCatalogFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := 0
			for i, rec := range cf.Entities {
				if err := entity.Validate(rec); err != nil {
					fmt.Fprintf(out, "entities[%d] (%s): %v\n", i, rec.Name, err)
					problems++
				}
				if rec.Type != "" && !rec.Type.IsWellKnown() {
					fmt.Fprintf(out, "entities[%d] (%s): uncommon type %q\n", i, rec.Name, rec.Type)
				}
			}

			for _, c := range entity.NearDuplicates(cf.Entities) {
				fmt.Fprintf(out, "likely duplicate: %q and %q (%.3f)\n", c.NameA, c.NameB, c.Score)
				problems++
			}

			if problems > 0 {
				return fmt.Errorf("%d problem(s) found in %s", problems, path)
			}
			fmt.Fprintf(out, "%s: %d entities, no problems found\n", path, len(cf.Entities))
			return nil
		},
	}
}
