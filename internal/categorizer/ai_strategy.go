package categorizer

import (
	"context"
	"strings"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
)

// AIStrategy refines line items the keyword rules could not claim by asking
// an AI service for a label out of the closed category vocabulary. Failures
// and out-of-vocabulary answers degrade to "no match"; this strategy never
// errors the pipeline.
type AIStrategy struct {
	aiClient AIClient
	logger   logging.Logger
}

// NewAIStrategy creates a new AIStrategy instance.
func NewAIStrategy(aiClient AIClient, logger logging.Logger) *AIStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AIStrategy{
		aiClient: aiClient,
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize asks the AI client for a suggestion and validates it against the
// category vocabulary.
func (s *AIStrategy) Categorize(ctx context.Context, item models.LineItem) (string, bool, error) {
	if s.aiClient == nil {
		return "", false, nil
	}

	if strings.TrimSpace(item.Description) == "" {
		return "", false, nil
	}

	suggestion, err := s.aiClient.SuggestCategory(ctx, item)
	if err != nil {
		s.logger.WithError(err).Warn("AI suggestion failed, keeping keyword result",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber})
		return "", false, nil
	}

	suggestion = strings.ToUpper(strings.TrimSpace(suggestion))
	if suggestion == "" || suggestion == models.CategoryGeneral {
		return "", false, nil
	}

	if !models.IsValidCategory(suggestion) {
		s.logger.Warn("Discarding AI suggestion outside the category vocabulary",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldCategory, Value: suggestion},
			logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber})
		return "", false, nil
	}

	s.logger.Debug("Line item refined by AI suggestion",
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldCategory, Value: suggestion},
		logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber})

	return suggestion, true, nil
}
