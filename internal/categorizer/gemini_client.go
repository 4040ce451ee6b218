package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient implements the AIClient interface against the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient creates a Gemini-backed suggestion client.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// SuggestCategory asks Gemini for one label out of the category vocabulary.
func (c *GeminiClient) SuggestCategory(ctx context.Context, item models.LineItem) (string, error) {
	prompt := buildSuggestionPrompt(item)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	suggestion := extractCategoryFromResponse(responseText)

	c.logger.Debug("Gemini suggested a category",
		logging.Field{Key: logging.FieldCategory, Value: suggestion},
		logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber})

	return suggestion, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// buildSuggestionPrompt renders the line item and the closed category list
// into a single-answer prompt.
func buildSuggestionPrompt(item models.LineItem) string {
	return fmt.Sprintf(`Assign the following insurance estimate line item to a repair category:
Description: %s
Quantity: %s %s
Room: %s

Choose exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		item.Description,
		item.Quantity.String(),
		item.Unit,
		item.Room,
		strings.Join(models.AllCategories, ", "))
}

// extractCategoryFromResponse parses the model response for the category line.
// When the structured line is missing, the response text is scanned for any
// vocabulary member instead. Returns an empty string when nothing is found.
func extractCategoryFromResponse(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			name = strings.Trim(name, "[]")
			return strings.ToUpper(strings.TrimSpace(name))
		}
	}

	// Longest match wins so overlapping labels (DOORS inside
	// MIRRORS & SHOWER DOORS) resolve to the specific one.
	upper := strings.ToUpper(response)
	best := ""
	for _, name := range models.AllCategories {
		if strings.Contains(upper, name) && len(name) > len(best) {
			best = name
		}
	}

	return best
}
