package categorizer

import (
	"context"

	"fjacquet/xact-rollup/internal/models"
)

// Strategy defines a method for assigning a category to a line item.
// Each strategy implements a specific approach (keyword rules, AI suggestion).
type Strategy interface {
	// Categorize attempts to categorize a line item using this strategy.
	//
	// Returns:
	//   - string: the category label (meaningful even when matched is false,
	//     where it carries the strategy's fallback proposal)
	//   - bool: whether this strategy claims the item; a later strategy may
	//     refine an unclaimed result
	//   - error: any error encountered during the attempt
	Categorize(ctx context.Context, item models.LineItem) (string, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
