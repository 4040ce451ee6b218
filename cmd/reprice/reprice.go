// Package reprice handles the price redistribution command
package reprice

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/xact-rollup/cmd/root"
	"fjacquet/xact-rollup/internal/jsonestimate"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the reprice command
var Cmd = &cobra.Command{
	Use:   "reprice",
	Short: "Redistribute user-entered category totals across line items",
	Long: `Redistribute one or more user-entered category totals proportionally
across that category's line items. The input is a processed estimate JSON
document (the output of the process command); each item keeps its share of
the category total, with the original values recorded alongside.

Example:
  xact-rollup reprice -i processed.json -s "CLEANING=1200.00" -s "DRYWALL=3500" -o repriced.json`,
	Run: repriceFunc,
}

var setFlags []string

func init() {
	Cmd.Flags().StringArrayVarP(&setFlags, "set", "s", nil, `Category total override as "CATEGORY=AMOUNT" (repeatable)`)
	_ = Cmd.MarkFlagRequired("set")
}

func repriceFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Reprice command called")

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (use -i)")
	}
	if err := validation.IsValidPath(root.SharedFlags.Input); err != nil {
		root.Log.Fatalf("Invalid input file: %v", err)
	}

	overrides, err := parseOverrides(setFlags)
	if err != nil {
		root.Log.Fatalf("Invalid override: %v", err)
	}

	// A processed estimate document carries the same header/line_items keys
	// as the raw payload, so the JSON parser reads either; categories and
	// totals are rebuilt from the revised items anyway.
	estimate, err := jsonestimate.ParseFileWithLogger(root.SharedFlags.Input, root.Log)
	if err != nil {
		root.Log.Fatalf("Error reading estimate: %v", err)
	}

	processed := &models.ProcessedEstimate{
		Header:    estimate.Header,
		LineItems: estimate.LineItems,
		Metadata:  models.EstimateMetadata{Warnings: estimate.Warnings},
	}

	c := root.App()
	revised, count, err := c.GetEngine().Reprice(cmd.Context(), processed, overrides)
	if err != nil {
		root.Log.Fatalf("Error repricing estimate: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := c.GetReportGenerator().WriteReport(revised, models.FormatJSON, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error writing report: %v", err)
		}
		root.Log.Infof("Repriced estimate written to %s", root.SharedFlags.Output)
	} else {
		data, err := json.MarshalIndent(revised, "", "  ")
		if err != nil {
			root.Log.Fatalf("Error rendering report: %v", err)
		}
		fmt.Println(string(data))
	}

	root.Log.Infof("Repricing completed: %d line items revised", count)
}

// parseOverrides turns repeated "CATEGORY=AMOUNT" flags into the override
// map. Category names are upper-cased to match the vocabulary.
func parseOverrides(entries []string) (map[string]decimal.Decimal, error) {
	overrides := make(map[string]decimal.Decimal, len(entries))
	for _, entry := range entries {
		idx := strings.LastIndex(entry, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("expected CATEGORY=AMOUNT, got %q", entry)
		}

		name := strings.ToUpper(strings.TrimSpace(entry[:idx]))
		amount, err := decimal.NewFromString(strings.TrimSpace(entry[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("amount in %q: %w", entry, err)
		}

		overrides[name] = amount
	}
	return overrides, nil
}
