package categorizer

import (
	"context"

	"fjacquet/xact-rollup/internal/models"
)

// MockAIClient is a mock implementation of AIClient for testing.
type MockAIClient struct {
	Suggestion string
	Err        error
	Calls      int
}

// SuggestCategory returns the canned suggestion and records the call.
func (m *MockAIClient) SuggestCategory(ctx context.Context, item models.LineItem) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Suggestion, nil
}
