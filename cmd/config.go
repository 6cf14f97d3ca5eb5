package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lborak/cleftmeter/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configSetHistoryDBCmd = &cobra.Command{
	Use:   "set-history-db <path>",
	Short: "Relocate the history database",
	Long: `Point the history database at a new location and persist the choice in
the config file. Existing records are not migrated; the old database file is
left in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := configWritePath()
		if err := config.SaveHistoryDB(path, args[0]); err != nil {
			return fmt.Errorf("updating %s: %w", path, err)
		}
		fmt.Printf("history_db set to %s in %s\n", args[0], path)
		return nil
	},
}

// configWritePath resolves the config file that setting changes are written
// to: the --config flag, then the file viper loaded, then the project-local
// default (which SaveHistoryDB creates if missing).
func configWritePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return ".cleftmeter/config.yaml"
}

func init() {
	configCmd.AddCommand(configSetHistoryDBCmd)
	rootCmd.AddCommand(configCmd)
}
