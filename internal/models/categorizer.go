// Package models provides the data structures used throughout the application.
package models

// CategoryConfig represents a category keyword extension in the YAML file.
// Keywords are appended to the named category's inclusion list; extensions
// never change rule priority or introduce new categories.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
