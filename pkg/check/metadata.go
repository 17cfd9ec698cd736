package check

import (
	"errors"
	"fmt"
	"slices"
)

// ID identifies a check. IDs are unique across the registry.
type ID string

// Category groups checks for separate weighted aggregation.
type Category string

const (
	CategoryCode      Category = "code"
	CategoryCodeLite  Category = "code-lite"
	CategoryCommunity Category = "community"
	CategoryIncubator Category = "incubator"
)

// Categories lists every known category.
var Categories = []Category{CategoryCode, CategoryCodeLite, CategoryCommunity, CategoryIncubator}

// Metadata is the static registry information attached to a check.
type Metadata struct {
	ID           ID
	Weight       int        // relative scoring weight, > 0
	Categories   []Category // at least one
	ExternalName string     // name of the matching scorecard entry, empty if none
}

// Validate reports whether m is well-formed.
func (m Metadata) Validate() error {
	if m.ID == "" {
		return errors.New("empty check id")
	}
	if m.Weight <= 0 {
		return fmt.Errorf("check %s: weight %d must be positive", m.ID, m.Weight)
	}
	if len(m.Categories) == 0 {
		return fmt.Errorf("check %s: no categories", m.ID)
	}
	for _, c := range m.Categories {
		if !slices.Contains(Categories, c) {
			return fmt.Errorf("check %s: unknown category %q", m.ID, c)
		}
	}
	return nil
}

// InCategory returns true if the check contributes to category c.
func (m Metadata) InCategory(c Category) bool {
	return slices.Contains(m.Categories, c)
}
