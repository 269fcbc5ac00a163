package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lblanes25/tabvalid/internal/datasource/jsonsource"
	"github.com/lblanes25/tabvalid/internal/engine"
	"github.com/lblanes25/tabvalid/internal/rules"
	"github.com/lblanes25/tabvalid/internal/telemetry"
)

const watchDebounceDelay = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run an analytic every time its configuration or dataset file changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		if runDataPath == "" {
			return fmt.Errorf("--data is required")
		}

		tp, err := telemetry.New()
		if err != nil {
			logger.Warn("telemetry setup failed, continuing without it", "error", err)
			tp = nil
		}
		registry := rules.NewRegistry()
		e := engine.New(registry, tp, logger)

		runOnce := func() {
			cfg, _, _, err := loadAndValidate(cfgPath)
			if err != nil {
				fmt.Println(render(dncStyle, fmt.Sprintf("configuration error: %v", err)))
				return
			}
			f, err := os.Open(runDataPath)
			if err != nil {
				fmt.Println(render(dncStyle, fmt.Sprintf("dataset error: %v", err)))
				return
			}
			ds, err := jsonsource.Load(f)
			f.Close()
			if err != nil {
				fmt.Println(render(dncStyle, fmt.Sprintf("dataset error: %v", err)))
				return
			}
			result, err := e.Run(context.Background(), cfg, ds, time.Now())
			if err != nil {
				fmt.Println(render(dncStyle, fmt.Sprintf("run error: %v", err)))
				return
			}
			printResult(result)
			fmt.Fprintln(os.Stderr, render(mutedText, "watching for changes... (Ctrl+C to exit)"))
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		for _, dir := range []string{filepath.Dir(cfgPath), filepath.Dir(runDataPath)} {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
		}

		runOnce()

		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				name := filepath.Base(event.Name)
				if name != filepath.Base(cfgPath) && !strings.HasSuffix(name, filepath.Ext(runDataPath)) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(watchDebounceDelay, runOnce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watcher error", "error", err)
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&runDataPath, "data", "", "path to a JSON dataset (array of row objects)")
}
