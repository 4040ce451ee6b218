package store

import (
	"fjacquet/xact-rollup/internal/models"
)

// MockRuleStore is a mock implementation of RuleStore for testing.
type MockRuleStore struct {
	Config models.CategoriesConfig

	// Error flags for testing error conditions
	LoadCategoriesError error
	SaveCategoriesError error
}

// LoadCategories returns the mock category extensions.
func (m *MockRuleStore) LoadCategories() (models.CategoriesConfig, error) {
	if m.LoadCategoriesError != nil {
		return models.CategoriesConfig{}, m.LoadCategoriesError
	}
	return m.Config, nil
}

// SaveCategories replaces the mock category extensions.
func (m *MockRuleStore) SaveCategories(cfg models.CategoriesConfig) error {
	if m.SaveCategoriesError != nil {
		return m.SaveCategoriesError
	}
	m.Config = cfg
	return nil
}

// FindConfigFile is a mock implementation that returns a dummy path.
func (m *MockRuleStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}
