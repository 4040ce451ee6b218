// Package batch handles batch processing of estimate files
package batch

import (
	"fjacquet/xact-rollup/cmd/root"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process estimate files from a directory",
	Long: `Batch process every estimate file in a directory through the full
pipeline and write one JSON report per input plus a run summary into the
output directory. A file that fails to parse is recorded in the summary and
skipped; it never aborts the run.

Example:
  xact-rollup batch -d estimates/ -o reports/`,
	Run: batchFunc,
}

var reportFormat string

func init() {
	Cmd.Flags().StringVarP(&root.InputDir, "input-dir", "d", "", "Directory of estimate files to process")
	Cmd.Flags().StringVar(&reportFormat, "report-format", models.FormatJSON, "Report format (json or xml)")
	_ = Cmd.MarkFlagRequired("input-dir")
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")
	root.Log.Infof("Input directory: %s", root.InputDir)
	root.Log.Infof("Output directory: %s", root.SharedFlags.Output)

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output directory is required (use -o)")
	}
	if err := validation.IsValidPath(root.InputDir); err != nil {
		root.Log.Fatalf("Invalid input directory: %v", err)
	}
	if err := validation.IsValidReportFormat(reportFormat); err != nil {
		root.Log.Fatalf("Invalid report format: %v", err)
	}

	runner := root.App().GetBatchRunner()
	summary, err := runner.Run(cmd.Context(), root.InputDir, root.SharedFlags.Output,
		root.SharedFlags.Format, reportFormat)
	if err != nil {
		root.Log.Fatalf("Batch run failed: %v", err)
	}

	root.Log.Infof("Batch run %s finished: %d processed, %d failed",
		summary.RunID, summary.Processed, summary.Failed)
	if summary.Failed > 0 && summary.Processed == 0 {
		root.Log.Fatal("Every file in the batch failed")
	}
}
