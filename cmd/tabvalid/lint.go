package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate an analytic configuration without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		cfg, _, _, err := loadAndValidate(cfgPath)
		if err != nil {
			return err
		}
		fmt.Println(render(gcStyle, fmt.Sprintf("%s: %d validations, group by %q, threshold %.1f%%",
			cfg.AnalyticID, len(cfg.Validations), cfg.Reporting.GroupBy, cfg.Thresholds.ErrorPercentage)))
		return nil
	},
}
