package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lborak/cleftmeter/internal/history"
	"github.com/lborak/cleftmeter/internal/infrastructure/sqlite"
)

var (
	sessionsLimit  int
	sessionsAction string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List the save/load history",
	Long: `List the audit trail of save and load operations, newest first.

Examples:
  # Show the last 20 operations
  cleftmeter sessions

  # Only saves
  cleftmeter sessions --action save

  # Everything
  cleftmeter sessions --limit 0`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		repo, err := sqlite.NewHistoryRepository(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()

		records, err := repo.List(history.ListFilter{
			Action: history.Action(sessionsAction),
			Limit:  sessionsLimit,
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No history yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tACTION\tPOINTS\tFILE\tSESSION")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				rec.CreatedAt.Format("2006-01-02 15:04:05"),
				rec.Action, rec.Points, rec.Path, rec.SessionGUID)
		}
		return w.Flush()
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "maximum records to show (0 for all)")
	sessionsCmd.Flags().StringVar(&sessionsAction, "action", "", "filter by action: save or load")
	rootCmd.AddCommand(sessionsCmd)
}
