package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDiffCommand(cctx *commandContext) *cobra.Command {
	var saveFlag bool

	cmd := &cobra.Command{
		Use:   "diff <shown-file> <submitted-file>",
		Short: "Show what a user changed in a reviewed transcript",
		Long: `Diff compares the transcript that was shown to the user with the version
they submitted and lists the word-level changes, folding split run-on words
into single corrections. With --save each change is persisted to the
learned-correction store so it is applied automatically next time.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			shown, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			submitted, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			out := cmd.OutOrStdout()

			if !saveFlag {
				changes := cctx.newDiffer().Compare(string(shown), string(submitted))
				for _, ch := range changes {
					fmt.Fprintf(out, "%q -> %q (context: %s | %s)\n",
						ch.Original, ch.Corrected,
						strings.Join(ch.LeftContext, " "), strings.Join(ch.RightContext, " "),
					)
				}
				return nil
			}

			store, closeStore, err := cctx.openLearnStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			reviewer := cctx.newReviewer(store)
			changes, err := reviewer.Accept(ctx, string(shown), string(submitted))
			if err != nil {
				return fmt.Errorf("save changes: %w", err)
			}
			for _, ch := range changes {
				fmt.Fprintf(out, "learned %q -> %q\n", ch.Original, ch.Corrected)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&saveFlag, "save", false, "Persist each detected change to the learned-correction store")
	return cmd
}
