package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lborak/cleftmeter/internal/history"
	"github.com/lborak/cleftmeter/internal/session"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> [out]",
	Short: "Rewrite a points file in the canonical grammar",
	Long: `Read a points file in any of the supported grammars and write it back
in the canonical tab-separated sectioned format.

Measurement values are recomputed from the coordinates before writing.
Without an output path the file is rewritten in place.

Examples:
  # Upgrade a legacy file in place
  cleftmeter convert old_case.txt

  # Write the canonical form next to the original
  cleftmeter convert old_case.txt case01.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		in := args[0]
		out := in
		if len(args) == 2 {
			out = args[1]
		}

		ctx := context.Background()
		s := session.New()
		defer s.Close()

		if err := s.Load(ctx, in); err != nil {
			return err
		}
		if err := s.Save(ctx, out); err != nil {
			return err
		}

		if repo := openHistory(); repo != nil {
			defer func() { _ = repo.Close() }()
			recordHistory(repo, s, history.ActionLoad, in)
			recordHistory(repo, s, history.ActionSave, out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
