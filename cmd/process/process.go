// Package process handles the full estimate pipeline command
package process

import (
	"encoding/json"
	"fmt"

	"fjacquet/xact-rollup/cmd/common"
	"fjacquet/xact-rollup/cmd/root"
	estimatecsv "fjacquet/xact-rollup/internal/common"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/xlsxestimate"

	"github.com/spf13/cobra"
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process an estimate file into categorized totals",
	Long: `Process an estimate file (csv, json, xlsx or xml) through the full
pipeline: deduplicate line items, categorize each one, aggregate per-category
financial totals and order the categories. The result is written as a JSON
report (or to stdout when no output file is given).

Example:
  xact-rollup process -i estimate.json -o processed.json --csv items.csv`,
	Run: processFunc,
}

var (
	csvOut  string
	xlsxOut string
	xmlOut  string
)

func init() {
	Cmd.Flags().StringVar(&csvOut, "csv", "", "Also export the categorized line items as CSV")
	Cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Also export a summary workbook (XLSX)")
	Cmd.Flags().StringVar(&xmlOut, "xml", "", "Also write the report as XML")
}

func processFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Process command called")

	c := root.App()
	processed, err := common.ProcessEstimateFile(cmd.Context(), c.GetEngine(),
		root.SharedFlags.Input, root.SharedFlags.Format, root.SharedFlags.Validate, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing estimate: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := c.GetReportGenerator().WriteReport(processed, models.FormatJSON, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error writing report: %v", err)
		}
		root.Log.Infof("Report written to %s", root.SharedFlags.Output)
	} else {
		data, err := json.MarshalIndent(processed, "", "  ")
		if err != nil {
			root.Log.Fatalf("Error rendering report: %v", err)
		}
		fmt.Println(string(data))
	}

	if csvOut != "" {
		if err := estimatecsv.ExportLineItemsToCSV(processed.LineItems, csvOut); err != nil {
			root.Log.Fatalf("Error exporting CSV: %v", err)
		}
		root.Log.Infof("Line items exported to %s", csvOut)
	}

	if xlsxOut != "" {
		if err := xlsxestimate.WriteWorkbookWithLogger(processed, xlsxOut, root.Log); err != nil {
			root.Log.Fatalf("Error writing workbook: %v", err)
		}
		root.Log.Infof("Summary workbook written to %s", xlsxOut)
	}

	if xmlOut != "" {
		if err := c.GetReportGenerator().WriteReport(processed, models.FormatXML, xmlOut); err != nil {
			root.Log.Fatalf("Error writing XML report: %v", err)
		}
		root.Log.Infof("XML report written to %s", xmlOut)
	}

	c.GetEngine().LogStats()
	root.Log.Info("Estimate processing completed successfully!")
}
