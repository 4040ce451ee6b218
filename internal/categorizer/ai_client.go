package categorizer

import (
	"context"

	"fjacquet/xact-rollup/internal/models"
)

// AIClient defines the interface for AI-based category suggestion services.
// This abstraction allows the core categorization logic to be tested
// independently of external API calls and provides flexibility in choosing
// AI providers.
type AIClient interface {
	// SuggestCategory returns a single category label for the line item, or
	// an error if the suggestion service fails. Callers are responsible for
	// validating the label against the category vocabulary.
	SuggestCategory(ctx context.Context, item models.LineItem) (string, error)
}
