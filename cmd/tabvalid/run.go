package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lblanes25/tabvalid/internal/config"
	"github.com/lblanes25/tabvalid/internal/datasource/jsonsource"
	"github.com/lblanes25/tabvalid/internal/engine"
	"github.com/lblanes25/tabvalid/internal/lang"
	"github.com/lblanes25/tabvalid/internal/rules"
	"github.com/lblanes25/tabvalid/internal/telemetry"
)

var runDataPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate an analytic's configured validations against a dataset",
	Long: `Evaluate an analytic's configured validations against a dataset.

--data names a JSON file holding an array of row objects. Spreadsheet or
CSV ingestion is not provided by this tool; use internal/datasource/sqlsource
against a live database, or export your data to JSON first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		if runDataPath == "" {
			return fmt.Errorf("--data is required")
		}

		cfg, registry, _, err := loadAndValidate(cfgPath)
		if err != nil {
			return err
		}

		f, err := os.Open(runDataPath)
		if err != nil {
			return fmt.Errorf("opening dataset: %w", err)
		}
		defer f.Close()
		ds, err := jsonsource.Load(f)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}

		tp, err := telemetry.New()
		if err != nil {
			logger.Warn("telemetry setup failed, continuing without it", "error", err)
			tp = nil
		}

		e := engine.New(registry, tp, logger)
		result, err := e.Run(context.Background(), cfg, ds, time.Now())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(result)
		}
		printResult(result)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runDataPath, "data", "", "path to a JSON dataset (array of row objects)")
}

func loadAndValidate(cfgPath string) (*config.Configuration, *rules.Registry, *lang.Cache, error) {
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	registry := rules.NewRegistry()
	cache := lang.NewCache()
	if err := cfg.Validate(registry, cache); err != nil {
		return nil, nil, nil, err
	}
	return cfg, registry, cache, nil
}

func printResult(result *engine.Result) {
	fmt.Println(render(boldText, fmt.Sprintf("Analytic: %s (run %s)", result.AnalyticID, result.RunID)))
	fmt.Println(render(boldText, fmt.Sprintf("Overall: %s", result.Report.Overall)))
	fmt.Println()

	header := fmt.Sprintf("%-20s %6s %6s %6s %6s %8s", "GROUP", "GC", "PC", "DNC", "TOTAL", "NC %")
	fmt.Println(render(mutedText, header))
	for _, g := range result.Report.Groups {
		line := fmt.Sprintf("%-20s %6d %6d %6d %6d %7.1f%%", g.Key, g.GC, g.PC, g.DNC, g.Total, g.DNCPercentage)
		style := gcStyle
		if g.Exceeded {
			style = dncStyle
		} else if g.PC > 0 || g.DNC > 0 {
			style = pcStyle
		}
		fmt.Println(render(style, line))
	}

	for _, ro := range result.Rules {
		if ro.Err != nil {
			fmt.Println(render(dncStyle, fmt.Sprintf("rule %s failed: %v", ro.Rule, ro.Err)))
		}
	}
	for _, w := range result.Warnings {
		fmt.Println(render(mutedText, fmt.Sprintf("warning: %s", w.Msg)))
	}
}
