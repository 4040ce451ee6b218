// Package store loads user-supplied rule data from YAML files.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"

	"gopkg.in/yaml.v3"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore manages loading of category keyword extensions
type RuleStore struct {
	CategoriesFile string
}

// NewRuleStore creates a new store for rule-related data
func NewRuleStore(categoriesFile string) *RuleStore {
	return &RuleStore{
		CategoriesFile: categoriesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	// Try each location
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/xact-rollup/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "xact-rollup", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads category keyword extensions from the YAML file.
// A missing file is not an error: the built-in rule table stands on its own,
// so an empty config is returned.
func (s *RuleStore) LoadCategories() (models.CategoriesConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Categories file not found, using built-in rules only",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return models.CategoriesConfig{}, nil
		}
		return models.CategoriesConfig{}, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.CategoriesConfig{}, fmt.Errorf("error reading categories file: %w", err)
	}

	// Proper structure first: "categories: [...]"
	var cfg models.CategoriesConfig
	err = yaml.Unmarshal(data, &cfg)
	if err == nil && len(cfg.Categories) > 0 {
		log.Debug("Loaded category keyword extensions",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)})
		return cfg, nil
	}

	// Fallback 1: bare array without the top-level key
	var categories []models.CategoryConfig
	err = yaml.Unmarshal(data, &categories)
	if err == nil && len(categories) > 0 {
		log.Debug("Loaded category keyword extensions from bare array",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(categories)})
		return models.CategoriesConfig{Categories: categories}, nil
	}

	// Fallback 2: map of category name to keyword list
	return s.parseCategoriesMap(data)
}

// parseCategoriesMap handles the loose map form, category names as keys and
// keyword lists (or anything else, ignored) as values.
func (s *RuleStore) parseCategoriesMap(data []byte) (models.CategoriesConfig, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return models.CategoriesConfig{}, fmt.Errorf("error parsing categories file: %w", err)
	}

	var cfg models.CategoriesConfig
	for name, value := range raw {
		category := models.CategoryConfig{Name: name}

		switch v := value.(type) {
		case []interface{}:
			for _, k := range v {
				if keyword, ok := k.(string); ok {
					category.Keywords = append(category.Keywords, strings.ToUpper(keyword))
				}
			}
		case map[string]interface{}:
			if keywordsVal, ok := v["keywords"]; ok {
				if keywordsList, ok := keywordsVal.([]interface{}); ok {
					for _, k := range keywordsList {
						if keyword, ok := k.(string); ok {
							category.Keywords = append(category.Keywords, strings.ToUpper(keyword))
						}
					}
				}
			}
		}

		cfg.Categories = append(cfg.Categories, category)
	}

	log.Debug("Parsed category keyword extensions from map form",
		logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)})
	return cfg, nil
}

// SaveCategories writes the canonical categories form back to the configured
// file, creating parent directories as needed. Used to scaffold a starting
// extensions file for users to edit.
func (s *RuleStore) SaveCategories(cfg models.CategoriesConfig) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("error resolving categories file: %w", err)
		}
		filePath = filename
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	log.Debug("Saved category keyword extensions",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)})
	return nil
}
