package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/lborak/cleftmeter/internal/codec"
	"github.com/lborak/cleftmeter/internal/session"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two points files",
	Long: `Compare two points files after normalizing both to the canonical
grammar with recomputed measurement values.

Because both sides are normalized first, files in different grammars or with
stale stored values compare by content, not by formatting.

Example:
  cleftmeter diff before.txt after.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := canonicalText(ctx, args[0])
		if err != nil {
			return err
		}
		b, err := canonicalText(ctx, args[1])
		if err != nil {
			return err
		}

		if a == b {
			fmt.Println("Files are equivalent.")
			return nil
		}

		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(a, b, true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		_, err = fmt.Fprint(os.Stdout, dmp.DiffPrettyText(diffs))
		return err
	},
}

// canonicalText loads a points file and renders it in the canonical grammar
// with freshly computed values.
func canonicalText(ctx context.Context, path string) (string, error) {
	s := session.New()
	defer s.Close()

	if err := s.Load(ctx, path); err != nil {
		return "", err
	}

	doc := &codec.Document{
		ModelName: s.ModelName(),
		Landmarks: s.Registry().Landmarks(),
		Distances: s.Set().Distances(),
		Angles:    s.Set().Angles(),
		Results:   s.Results(),
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
