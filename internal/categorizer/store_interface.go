package categorizer

import "fjacquet/xact-rollup/internal/models"

// CategoryStoreInterface defines the interface for keyword extension storage.
// This allows for dependency injection and easier testing.
type CategoryStoreInterface interface {
	LoadCategories() (models.CategoriesConfig, error)
}
