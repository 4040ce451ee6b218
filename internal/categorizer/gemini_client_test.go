package categorizer

import (
	"context"
	"strings"
	"testing"

	"fjacquet/xact-rollup/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExtractCategoryFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{"structured line", "Category: PLUMBING", models.CategoryPlumbing},
		{"bracketed", "Category: [DOORS]", models.CategoryDoors},
		{"lowercase", "category ignored\nCategory: cabinetry", models.CategoryCabinetry},
		{"loose text picks longest label", "I would file this under MIRRORS & SHOWER DOORS.", models.CategoryMirrorsShowerDoors},
		{"loose specific flooring", "This looks like FLOOR COVERING - CERAMIC TILE work", models.CategoryFloorCeramicTile},
		{"nothing recognizable", "I am not sure about this one.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCategoryFromResponse(tt.response))
		})
	}
}

func TestBuildSuggestionPrompt(t *testing.T) {
	item := models.LineItem{
		Description: "Custom alabaster feature",
		Quantity:    decimal.NewFromInt(4),
		Unit:        "EA",
		Room:        "Foyer",
	}

	prompt := buildSuggestionPrompt(item)

	assert.Contains(t, prompt, "Custom alabaster feature")
	assert.Contains(t, prompt, "4 EA")
	assert.Contains(t, prompt, "Foyer")
	assert.Contains(t, prompt, "Category:")
	for _, name := range models.AllCategories {
		assert.True(t, strings.Contains(prompt, name), "prompt must offer %s", name)
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "", nil)
	assert.Error(t, err)
}
