// Package scanner discovers estimate files on disk for batch processing.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fjacquet/xact-rollup/internal/factory"
	"fjacquet/xact-rollup/internal/fileutils"
	"fjacquet/xact-rollup/internal/logging"
)

// EstimateFile is one discovered input file with its detected format.
type EstimateFile struct {
	Path   string
	Format string
}

// EstimateScanner provides functionality to locate estimate files under
// files and directories.
type EstimateScanner struct {
	logger logging.Logger
}

// NewEstimateScanner creates a new instance of EstimateScanner.
func NewEstimateScanner(logger logging.Logger) *EstimateScanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &EstimateScanner{
		logger: logger.WithField("component", "EstimateScanner"),
	}
}

// ScanPaths scans the given paths (files or directories) and returns the
// estimate files found. Directories are walked recursively. Files with an
// unrecognized extension are skipped inside directories but rejected when
// listed explicitly.
func (s *EstimateScanner) ScanPaths(paths []string) ([]EstimateFile, error) {
	var files []EstimateFile

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			s.logger.WithError(err).WithField("path", p).Error("Failed to stat path")
			return nil, fmt.Errorf("failed to stat path %s: %w", p, err)
		}

		if info.IsDir() {
			dirFiles, err := s.scanDirectory(p)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else {
			file, err := s.scanFile(p)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}

	return files, nil
}

// ScanDirectory walks a single directory tree for estimate files.
func (s *EstimateScanner) ScanDirectory(dirPath string) ([]EstimateFile, error) {
	if !fileutils.DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}
	return s.scanDirectory(dirPath)
}

// scanDirectory recursively collects files whose extension maps to a parser.
func (s *EstimateScanner) scanDirectory(dirPath string) ([]EstimateFile, error) {
	var files []EstimateFile

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.WithError(err).WithField("path", path).Warn("Error walking path")
			return nil // Continue walking even if one entry is unreadable
		}

		if d.IsDir() {
			return nil
		}

		format, err := factory.DetectType(path)
		if err != nil {
			s.logger.Debug("Skipping file with unrecognized extension",
				logging.Field{Key: logging.FieldFile, Value: path})
			return nil
		}
		files = append(files, EstimateFile{Path: path, Format: string(format)})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	s.logger.Info("Scanned directory for estimate files",
		logging.Field{Key: "path", Value: dirPath},
		logging.Field{Key: logging.FieldCount, Value: len(files)})
	return files, nil
}

// scanFile resolves the format of one explicitly named file.
func (s *EstimateScanner) scanFile(filePath string) (EstimateFile, error) {
	format, err := factory.DetectType(filePath)
	if err != nil {
		s.logger.WithError(err).WithField(logging.FieldFile, filePath).Error("Unrecognized estimate file")
		return EstimateFile{}, err
	}
	return EstimateFile{Path: filePath, Format: string(format)}, nil
}
