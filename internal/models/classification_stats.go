// Package models provides the data structures used throughout the application.
package models

import (
	"fjacquet/xact-rollup/internal/logging"
)

// ClassificationStats tracks statistics for line-item classification
type ClassificationStats struct {
	Total    int // Total number of line items classified
	Keyword  int // Number matched by a keyword rule
	AI       int // Number refined by the AI suggestion strategy
	Fallback int // Number left in the GENERAL category
}

// LogSummary logs a summary of classification statistics
func (cs ClassificationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Classification summary",
		logging.Field{Key: "total_items", Value: cs.Total},
		logging.Field{Key: "keyword_matched", Value: cs.Keyword},
		logging.Field{Key: "ai_refined", Value: cs.AI},
		logging.Field{Key: "general_fallback", Value: cs.Fallback},
		logging.Field{Key: "match_rate", Value: cs.GetMatchRate()},
	)
}

// GetMatchRate calculates the non-fallback rate as a percentage
func (cs ClassificationStats) GetMatchRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.Total-cs.Fallback) / float64(cs.Total) * 100.0
}

// IncrementTotal increments the total classified count
func (cs *ClassificationStats) IncrementTotal() {
	cs.Total++
}

// IncrementKeyword increments the keyword-matched count
func (cs *ClassificationStats) IncrementKeyword() {
	cs.Keyword++
}

// IncrementAI increments the AI-refined count
func (cs *ClassificationStats) IncrementAI() {
	cs.AI++
}

// IncrementFallback increments the GENERAL fallback count
func (cs *ClassificationStats) IncrementFallback() {
	cs.Fallback++
}

// NewClassificationStats creates a new ClassificationStats instance
func NewClassificationStats() *ClassificationStats {
	return &ClassificationStats{}
}
