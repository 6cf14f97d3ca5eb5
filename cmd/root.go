// Package cmd implements the cleftmeter command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lborak/cleftmeter/internal/config"
	"github.com/lborak/cleftmeter/internal/history"
	"github.com/lborak/cleftmeter/internal/infrastructure/sqlite"
	"github.com/lborak/cleftmeter/internal/log"
	"github.com/lborak/cleftmeter/internal/session"
	"github.com/lborak/cleftmeter/internal/tracing"
	"github.com/lborak/cleftmeter/internal/ui/annotate"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	traceFlag bool
	cfg       config.Config

	traceProvider *tracing.Provider
	logCleanup    func()
)

var rootCmd = &cobra.Command{
	Use:   "cleftmeter [file]",
	Short: "Annotate anatomical landmarks and compute cleft measurements",
	Long: `An interactive tool for marking anatomical landmarks on cleft palate cases
and computing the distances and angles between them.

Running with a points file opens the annotation view over it. The file is
created on the first save if it does not exist yet.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runAnnotate,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/cleftmeter/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to debug.log")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false,
		"enable span tracing regardless of config")

	rootCmd.PersistentPreRunE = setupRuntime
	rootCmd.PersistentPostRunE = teardownRuntime
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("history_db", defaults.HistoryDB)
	viper.SetDefault("ui.show_values", defaults.UI.ShowValues)
	viper.SetDefault("ui.coordinate_decimals", defaults.UI.CoordinateDecimals)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .cleftmeter/config.yaml (current directory)
		// 2. ~/.config/cleftmeter/config.yaml (user config)
		if _, err := os.Stat(".cleftmeter/config.yaml"); err == nil {
			viper.SetConfigFile(".cleftmeter/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "cleftmeter"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .cleftmeter/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".cleftmeter/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setupRuntime initializes logging and tracing before any command runs.
func setupRuntime(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debug := os.Getenv("CLEFTMETER_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("CLEFTMETER_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "CleftMeter starting", "version", version, "logPath", logPath)
	}

	tcfg := cfg.Tracing
	if traceFlag {
		tcfg.Enabled = true
	}
	if tcfg.Enabled && tcfg.Exporter == "file" && tcfg.FilePath == "" {
		home, _ := os.UserHomeDir()
		tcfg.FilePath = filepath.Join(home, ".config", "cleftmeter", "traces", "traces.jsonl")
	}
	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	traceProvider = provider
	return nil
}

func teardownRuntime(_ *cobra.Command, _ []string) error {
	var err error
	if traceProvider != nil {
		err = traceProvider.Shutdown(context.Background())
	}
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// openHistory opens the history repository, returning nil when unavailable.
// History is an audit convenience and never blocks annotation work.
func openHistory() history.Repository {
	repo, err := sqlite.NewHistoryRepository(cfg.HistoryDB)
	if err != nil {
		log.ErrorErr(log.CatDB, "History database unavailable", err, "path", cfg.HistoryDB)
		return nil
	}
	return repo
}

// recordHistory appends one audit record, best effort.
func recordHistory(repo history.Repository, s *session.Session, action history.Action, path string) {
	if repo == nil {
		return
	}
	rec := &history.Record{
		SessionGUID: s.ID().String(),
		Action:      action,
		Path:        path,
		Points:      len(s.Registry().DefinedLabels()),
	}
	if err := repo.Append(rec); err != nil {
		log.ErrorErr(log.CatDB, "Failed to record history", err, "path", path)
	}
}

func runAnnotate(_ *cobra.Command, args []string) error {
	path := "points.txt"
	if len(args) == 1 {
		path = args[0]
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := session.New()
	defer s.Close()

	loaded := false
	if _, err := os.Stat(path); err == nil {
		if err := s.Load(ctx, path); err != nil {
			return err
		}
		loaded = true
	}

	repo := openHistory()
	if repo != nil {
		defer func() { _ = repo.Close() }()
		if loaded {
			recordHistory(repo, s, history.ActionLoad, path)
		}
		// Record every save made from inside the annotation view.
		go func() {
			for ev := range s.Subscribe(ctx) {
				if ev.Payload.Kind == session.ChangeSaved {
					recordHistory(repo, s, history.ActionSave, ev.Payload.Detail)
				}
			}
		}()
	}

	model := annotate.New(s, path)
	p := tea.NewProgram(annotate.NewApp(model), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
