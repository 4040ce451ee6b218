// Package analyze handles the category summary command
package analyze

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"fjacquet/xact-rollup/cmd/common"
	"fjacquet/xact-rollup/cmd/root"
	"fjacquet/xact-rollup/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print a per-category summary table for an estimate file",
	Long: `Run the pipeline over an estimate file and print a per-category
summary table: item counts and rcv, depreciation and acv totals, in the
operational category order (emergency-response categories first).

Example:
  xact-rollup analyze -i estimate.json`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Analyze command called")

	c := root.App()
	processed, err := common.ProcessEstimateFile(cmd.Context(), c.GetEngine(),
		root.SharedFlags.Input, root.SharedFlags.Format, root.SharedFlags.Validate, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing estimate: %v", err)
	}

	printSummary(os.Stdout, processed)
	root.Log.Info("Estimate analysis completed successfully!")
}

func printSummary(out io.Writer, processed *models.ProcessedEstimate) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "CATEGORY\tITEMS\tRCV\tDEPRECIATION\tACV")
	for _, cat := range processed.Categories {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			cat.Name, cat.ItemCount,
			cat.RCV.StringFixed(2), cat.Depreciation.StringFixed(2), cat.ACV.StringFixed(2))
	}

	t := processed.Totals
	fmt.Fprintf(w, "TOTAL\t%d\t%s\t%s\t%s\n",
		processed.Metadata.TotalLineItems,
		t.RCV.StringFixed(2), t.Depreciation.StringFixed(2), t.ACV.StringFixed(2))
	w.Flush()

	fmt.Fprintf(out, "\nDeductible: %s\n", t.Deductible.StringFixed(2))
	fmt.Fprintf(out, "Net claim:  %s\n", t.NetClaim.StringFixed(2))
	if processed.Metadata.DuplicatesRemoved > 0 {
		fmt.Fprintf(out, "Duplicates removed: %d\n", processed.Metadata.DuplicatesRemoved)
	}
}
