// Package batch runs the estimate pipeline over every file in a directory
// and writes one report per input plus a run summary.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/xact-rollup/internal/engine"
	"fjacquet/xact-rollup/internal/factory"
	"fjacquet/xact-rollup/internal/fileutils"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/report"
	"fjacquet/xact-rollup/internal/scanner"

	"github.com/google/uuid"
)

// SummaryFilename is where Run records the outcome of the whole run inside
// the output directory.
const SummaryFilename = "summary.json"

// Result records the outcome for one input file.
type Result struct {
	InputFile  string `json:"input_file"`
	OutputFile string `json:"output_file,omitempty"`
	LineItems  int    `json:"line_items"`
	Categories int    `json:"categories"`
	Error      string `json:"error,omitempty"`
}

// Summary describes one batch run.
type Summary struct {
	RunID     string    `json:"run_id"`
	InputDir  string    `json:"input_dir"`
	OutputDir string    `json:"output_dir"`
	StartedAt time.Time `json:"started_at"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Results   []Result  `json:"results"`
}

// Runner drives the full pipeline over directories of estimate files.
type Runner struct {
	logger  logging.Logger
	scanner *scanner.EstimateScanner
	engine  *engine.Engine
	reports *report.ReportGenerator
}

// NewRunner creates a batch Runner around the given engine.
func NewRunner(eng *engine.Engine, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Runner{
		logger:  logger.WithField("component", "BatchRunner"),
		scanner: scanner.NewEstimateScanner(logger),
		engine:  eng,
		reports: report.NewReportGenerator(logger),
	}
}

// Run processes every estimate file under inputDir and writes one report per
// input into outputDir, then the run summary. An explicit inputFormat
// overrides extension detection for every file; reportFormat selects json or
// xml reports and defaults to json. A file that fails to parse or process is
// recorded in the summary and skipped, it never aborts the run.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir, inputFormat, reportFormat string) (*Summary, error) {
	if reportFormat == "" {
		reportFormat = models.FormatJSON
	}

	files, err := r.scanner.ScanDirectory(inputDir)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     uuid.New().String(),
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: time.Now(),
		Results:   []Result{},
	}

	r.logger.Info("Starting batch run",
		logging.Field{Key: logging.FieldRequestID, Value: summary.RunID},
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: "input_dir", Value: inputDir})

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch run %s interrupted: %w", summary.RunID, err)
		}

		result := r.processFile(ctx, file, outputDir, inputFormat, reportFormat)
		if result.Error != "" {
			summary.Failed++
		} else {
			summary.Processed++
		}
		summary.Results = append(summary.Results, result)
	}

	if err := r.writeSummary(summary); err != nil {
		return nil, err
	}

	r.logger.Info("Batch run complete",
		logging.Field{Key: logging.FieldRequestID, Value: summary.RunID},
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "failed", Value: summary.Failed})
	return summary, nil
}

// processFile runs one input through parse, process and report.
func (r *Runner) processFile(ctx context.Context, file scanner.EstimateFile, outputDir, inputFormat, reportFormat string) Result {
	result := Result{InputFile: file.Path}

	r.logger.Debug("Processing file",
		logging.Field{Key: logging.FieldInputFile, Value: file.Path},
		logging.Field{Key: logging.FieldFormat, Value: file.Format})

	p, err := factory.GetParserForFile(file.Path, inputFormat, r.logger)
	if err != nil {
		return r.failResult(result, file.Path, err)
	}

	estimate, err := p.ParseFile(file.Path)
	if err != nil {
		return r.failResult(result, file.Path, err)
	}

	r.engine.ResetStats()
	processed, err := r.engine.Process(ctx, estimate)
	if err != nil {
		return r.failResult(result, file.Path, err)
	}
	r.engine.LogStats()

	outPath := filepath.Join(outputDir, outputFilename(file.Path, reportFormat))
	if err := r.reports.WriteReport(processed, reportFormat, outPath); err != nil {
		return r.failResult(result, file.Path, err)
	}

	result.OutputFile = outPath
	result.LineItems = processed.Metadata.TotalLineItems
	result.Categories = processed.Metadata.TotalCategories
	return result
}

func (r *Runner) failResult(result Result, path string, err error) Result {
	r.logger.WithError(err).WithField(logging.FieldInputFile, path).Error("Failed to process file")
	result.Error = err.Error()
	return result
}

// writeSummary records the run outcome inside the output directory.
func (r *Runner) writeSummary(summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch summary: %w", err)
	}
	path := filepath.Join(summary.OutputDir, SummaryFilename)
	if err := fileutils.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write batch summary: %w", err)
	}
	return nil
}

// outputFilename maps an input path to its report name, replacing the source
// extension with the report format.
func outputFilename(inputPath, reportFormat string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + reportFormat
}
