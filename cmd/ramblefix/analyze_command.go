package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ashishact/ramblefix/internal/review"
)

// analyzeConcurrency bounds how many transcript files are processed at once.
const analyzeConcurrency = 4

type fileResult struct {
	path        string
	text        string
	suggestions []review.Suggestion
}

func newAnalyzeCommand(cctx *commandContext) *cobra.Command {
	var applyFlag bool

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Propose corrections for transcript files",
		Long: `Analyze reads each transcript file, matches its words against the entity
catalog and the learned-correction store, and lists the corrections it would
make. With --apply the corrected text is printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entities, err := cctx.loadCatalog(ctx)
			if err != nil {
				return err
			}
			store, closeStore, err := cctx.openLearnStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			reviewer := cctx.newReviewer(store)

			results := make([]fileResult, len(args))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(analyzeConcurrency)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					text := string(data)
					suggestions, err := reviewer.Suggest(gctx, text, entities)
					if err != nil {
						return fmt.Errorf("analyze %s: %w", path, err)
					}
					results[i] = fileResult{path: path, text: text, suggestions: suggestions}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				if applyFlag {
					fmt.Fprint(out, reviewer.Apply(ctx, res.text, res.suggestions))
					continue
				}
				for _, s := range res.suggestions {
					fmt.Fprintf(out, "%s:%d-%d: %q -> %q (%s, %.2f)\n",
						res.path, s.Correction.Start, s.Correction.End,
						s.Correction.Original, s.Correction.Replacement,
						s.Source, s.Confidence,
					)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&applyFlag, "apply", false, "Print corrected text instead of the suggestion list")
	return cmd
}
