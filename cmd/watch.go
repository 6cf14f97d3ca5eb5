package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lborak/cleftmeter/internal/log"
	"github.com/lborak/cleftmeter/internal/presentation"
	"github.com/lborak/cleftmeter/internal/session"
	"github.com/lborak/cleftmeter/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reload and reprint measurements when a points file changes",
	Long: `Watch a points file and reprint its measurements on every change.

Useful alongside an external editor or a digitizer exporting coordinates:
every save triggers a reload and a fresh computation. Bursts of writes are
debounced (watch.debounce_ms). Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := args[0]

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := session.New()
		defer s.Close()

		formatter := presentation.NewFormatter(os.Stdout)
		formatter.CoordinateDecimals = cfg.UI.CoordinateDecimals
		formatter.ShowValues = cfg.UI.ShowValues

		reload := func() {
			if err := s.Load(ctx, path); err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
				return
			}
			fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
			if err := formatter.FormatText(presentation.FromSession(s)); err != nil {
				fmt.Fprintf(os.Stderr, "print failed: %v\n", err)
			}
		}
		reload()

		w, err := watcher.New(watcher.Config{
			Path:        path,
			DebounceDur: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		})
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		onChange, err := w.Start()
		if err != nil {
			return err
		}
		log.Info(log.CatWatcher, "Watching points file", "path", path)

		for {
			select {
			case <-onChange:
				log.Debug(log.CatWatcher, "Points file changed", "path", path)
				reload()
			case <-ctx.Done():
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
