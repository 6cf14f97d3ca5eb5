package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/lborak/cleftmeter/internal/presentation"
	"github.com/lborak/cleftmeter/internal/session"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the points and measurements of a file",
	Long: `Load a points file, recompute every measurement from the stored
coordinates and print the result.

Stored measurement values in the file are ignored: values always come from
the coordinates. All four historical file grammars are accepted.

Examples:
  # Print as text tables
  cleftmeter show case01.txt

  # Print as JSON
  cleftmeter show case01.txt --json

  # Parse specific fields with jq
  cleftmeter show case01.txt --json | jq '.distances[].value'`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		s := session.New()
		defer s.Close()

		if err := s.Load(context.Background(), args[0]); err != nil {
			return err
		}

		formatter := presentation.NewFormatter(os.Stdout)
		formatter.CoordinateDecimals = cfg.UI.CoordinateDecimals
		formatter.ShowValues = cfg.UI.ShowValues

		dto := presentation.FromSession(s)
		if showJSON {
			return formatter.FormatJSON(dto)
		}
		return formatter.FormatText(dto)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}
