// Package categorize handles single-description categorization commands
package categorize

import (
	"fmt"

	"fjacquet/xact-rollup/cmd/root"
	"fjacquet/xact-rollup/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single line item description",
	Long: `Categorize a single line item description with the priority-ordered
keyword rule table (and the AI suggestion strategy when enabled).

Example:
  xact-rollup categorize -d "R&R exterior insulated door with new hardware"`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Line item description to categorize")
	Cmd.Flags().StringVarP(&root.Room, "room", "r", "", "Room or location label (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Categorize command called")

	if root.Description == "" {
		root.Log.Fatal("Description is required for categorization")
	}

	item := models.LineItem{
		Description: root.Description,
		Room:        root.Room,
	}

	category, err := root.App().GetCategorizer().Categorize(cmd.Context(), item)
	if err != nil {
		root.Log.Fatalf("Error categorizing line item: %v", err)
	}

	root.Log.Infof("Description categorized as: %s", category)
	fmt.Println(category)
}
