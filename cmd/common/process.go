// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"

	"fjacquet/xact-rollup/internal/engine"
	"fjacquet/xact-rollup/internal/factory"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/validation"
)

// LoadEstimate resolves a parser for the input file (an explicit format wins
// over the file extension), optionally validates the format first, and
// parses the file into a raw estimate.
func LoadEstimate(inputFile, format string, validate bool, log logging.Logger) (*models.Estimate, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("input file is required (use -i)")
	}
	if err := validation.IsValidPath(inputFile); err != nil {
		return nil, err
	}

	p, err := factory.GetParserForFile(inputFile, format, log)
	if err != nil {
		return nil, err
	}

	if validate {
		log.Info("Validating format...",
			logging.Field{Key: logging.FieldFile, Value: inputFile})
		valid, err := p.ValidateFormat(inputFile)
		if err != nil {
			return nil, fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return nil, fmt.Errorf("file %s is not in a valid format", inputFile)
		}
		log.Info("Validation successful.")
	}

	return p.ParseFile(inputFile)
}

// ProcessEstimateFile loads the input file and runs the full pipeline over
// it: deduplicate, classify, aggregate, sequence and total.
func ProcessEstimateFile(ctx context.Context, eng *engine.Engine, inputFile, format string, validate bool, log logging.Logger) (*models.ProcessedEstimate, error) {
	estimate, err := LoadEstimate(inputFile, format, validate, log)
	if err != nil {
		return nil, err
	}
	return eng.Process(ctx, estimate)
}
