package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	logLevel   string
	jsonOutput bool
	noColor    bool
	logger     *slog.Logger
)

var (
	gcStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"})
	pcStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"})
	dncStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"})
	mutedText = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"})
	boldText  = lipgloss.NewStyle().Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "tabvalid",
	Short: "Run tabular validation analytics against a dataset",
	Long: `tabvalid evaluates configured validation rules against a dataset of
rows and reports a per-row verdict, grouped and judged against a
non-conformance threshold.

Configuration is a YAML (or TOML) document naming the validations to
run, the columns the dataset must provide, and the grouping/threshold
used for reporting.

Examples:
  tabvalid run --config analytic.yaml --data requests.json
  tabvalid lint --config analytic.yaml
  tabvalid explain --config analytic.yaml --rule segregation_of_duties
  tabvalid watch --config analytic.yaml --data requests.json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML or TOML analytic configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON instead of a styled table")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	viper.SetEnvPrefix("TABVALID")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd, lintCmd, explainCmd, watchCmd)
}

func initLogger() error {
	level := logLevel
	if v := viper.GetString("log-level"); v != "" {
		level = v
	}

	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger = slog.New(handler)
	return nil
}

// render applies a style unless --no-color was given, in which case the
// text is printed as-is.
func render(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

func resolvedConfigPath() (string, error) {
	path := cfgFile
	if path == "" {
		path = viper.GetString("config")
	}
	if path == "" {
		return "", fmt.Errorf("--config is required")
	}
	return path, nil
}
