package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lblanes25/tabvalid/internal/lang"
	"github.com/lblanes25/tabvalid/internal/rules"
)

var (
	explainRule string
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the columns and parsed structure a configured validation touches",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		cfg, _, cache, err := loadAndValidate(cfgPath)
		if err != nil {
			return err
		}

		for _, v := range cfg.Validations {
			if explainRule != "" && v.Rule != explainRule {
				continue
			}
			fields, err := rules.ReferencedFields(v.Rule, rules.Params(v.Parameters), cache)
			if err != nil {
				return err
			}
			fmt.Println(render(boldText, v.Rule))
			if v.Description != "" {
				fmt.Println(render(mutedText, "  "+v.Description))
			}
			fmt.Printf("  columns: %v\n", fields)
			if formula, ok := v.Parameters["original_formula"].(string); ok {
				tree, err := cache.Parse(formula)
				if err != nil {
					fmt.Println(render(dncStyle, fmt.Sprintf("  formula error: %v", err)))
					continue
				}
				fmt.Printf("  parsed: %s\n", lang.Print(tree))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainRule, "rule", "", "limit output to one rule name")
}
