// Package rules defines the ordered keyword rule table that assigns estimate
// categories to line-item descriptions. Order encodes priority: the first rule
// whose inclusion patterns match, and whose exclusion patterns do not, wins.
package rules

import (
	"strings"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Rule is one entry of the ordered table.
type Rule struct {
	Category string
	Include  []string
	Exclude  []string
}

// matches reports whether the upper-cased description satisfies this rule.
func (r *Rule) matches(desc string) bool {
	hit := false
	for _, kw := range r.Include {
		if strings.Contains(desc, kw) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, kw := range r.Exclude {
		if strings.Contains(desc, kw) {
			return false
		}
	}
	return true
}

// skipPatterns route deduction and credit notes straight to GENERAL before any
// rule runs: a deduction note that mentions cabinets is not cabinetry work.
var skipPatterns = []string{"DEDUCTION", "DEDUCT FOR", "LESS ", "SUBTRACT", "CREDIT FOR"}

// Table is an immutable-after-construction ordered rule list.
type Table struct {
	rules []Rule
}

// NewTable returns a table holding the built-in rules in priority order.
func NewTable() *Table {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return &Table{rules: rules}
}

// Extend appends user-supplied keywords to the inclusion list of the first
// rule carrying each named category. Extensions never add rules or change
// priority. Unknown category names are skipped with a warning.
func (t *Table) Extend(cfg models.CategoriesConfig) {
	for _, cc := range cfg.Categories {
		name := strings.ToUpper(strings.TrimSpace(cc.Name))
		if name == "" || len(cc.Keywords) == 0 {
			continue
		}

		idx := -1
		for i := range t.rules {
			if t.rules[i].Category == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			log.Warn("Ignoring keyword extension for unknown category",
				logging.Field{Key: logging.FieldCategory, Value: cc.Name})
			continue
		}

		for _, kw := range cc.Keywords {
			kw = strings.ToUpper(strings.TrimSpace(kw))
			if kw != "" {
				t.rules[idx].Include = append(t.rules[idx].Include, kw)
			}
		}
		log.Debug("Extended category keywords",
			logging.Field{Key: logging.FieldCategory, Value: name},
			logging.Field{Key: logging.FieldCount, Value: len(cc.Keywords)})
	}
}

// Match returns the category for a description. It never returns "no match":
// unclaimed descriptions fall to GENERAL with matched=false, so callers can
// tell a deliberate GENERAL routing (deduction notes, matched=true) from an
// unrecognized description.
func (t *Table) Match(description string) (category string, matched bool) {
	desc := strings.ToUpper(description)

	for _, pattern := range skipPatterns {
		if strings.Contains(desc, pattern) {
			return models.CategoryGeneral, true
		}
	}

	for i := range t.rules {
		if t.rules[i].matches(desc) {
			return t.rules[i].Category, true
		}
	}

	return models.CategoryGeneral, false
}

// Rules returns a copy of the ordered rule list.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}
