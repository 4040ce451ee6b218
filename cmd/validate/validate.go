// Package validate handles the estimate review command
package validate

import (
	"encoding/json"
	"fmt"
	"os"

	"fjacquet/xact-rollup/cmd/common"
	"fjacquet/xact-rollup/cmd/root"
	"fjacquet/xact-rollup/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Run quality checks over an estimate file",
	Long: `Run rule-based quality checks over an estimate file: coerced values,
uncategorized items, ACV/RCV mismatches, missing claim fields and dropped
duplicates. Exits non-zero when the estimate has error-severity findings.

Example:
  xact-rollup validate -i estimate.json`,
	Run: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Validate command called")

	c := root.App()

	processed, err := common.ProcessEstimateFile(cmd.Context(), c.GetEngine(),
		root.SharedFlags.Input, root.SharedFlags.Format, root.SharedFlags.Validate, root.Log)

	var report *models.ReviewReport
	if err != nil {
		report = c.GetReviewer().ReviewFailure(root.SharedFlags.Input, err)
	} else {
		report = c.GetReviewer().Review(processed, root.SharedFlags.Input)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error rendering review report: %v", err)
	}
	fmt.Println(string(data))

	if !report.Valid {
		root.Log.Error("Estimate failed validation")
		root.CloseApp()
		os.Exit(1)
	}
	root.Log.Info("Estimate validation completed successfully!")
}
