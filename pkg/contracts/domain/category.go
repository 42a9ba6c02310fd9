package domain

import (
	"fmt"
	"strings"
)

// Category represents a class of recorded crime tracked in the snapshot.
type Category string

const (
	CategoryAssault          Category = "assault"
	CategoryAutoTheft        Category = "autotheft"
	CategoryBikeTheft        Category = "biketheft"
	CategoryBreakAndEnter    Category = "breakenter"
	CategoryHomicide         Category = "homicide"
	CategoryRobbery          Category = "robbery"
	CategoryShooting         Category = "shooting"
	CategoryTheftFromVehicle Category = "theftfrommv"
	CategoryTheftOver        Category = "theftover"
)

// Categories returns the canonical category set in a fixed order.
// The order matters for deterministic column layout in exported tables.
func Categories() []Category {
	return []Category{
		CategoryAssault,
		CategoryAutoTheft,
		CategoryBikeTheft,
		CategoryBreakAndEnter,
		CategoryHomicide,
		CategoryRobbery,
		CategoryShooting,
		CategoryTheftFromVehicle,
		CategoryTheftOver,
	}
}

// categoryLabels maps categories to their human-readable display labels.
var categoryLabels = map[Category]string{
	CategoryAssault:          "Assault",
	CategoryAutoTheft:        "Auto Theft",
	CategoryBikeTheft:        "Bike Theft",
	CategoryBreakAndEnter:    "Break and Enter",
	CategoryHomicide:         "Homicide",
	CategoryRobbery:          "Robbery",
	CategoryShooting:         "Shooting",
	CategoryTheftFromVehicle: "Theft from Vehicle",
	CategoryTheftOver:        "Theft Over",
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// Label returns the human-readable label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ColumnPrefix returns the prefix used by the yearly columns of this
// category in the source snapshot, e.g. "HOMICIDE" for homicide so that
// the 2014 column is named "HOMICIDE_2014".
func (c Category) ColumnPrefix() string {
	return strings.ToUpper(string(c))
}

// YearColumn returns the source column name holding this category's count
// for the given year.
func (c Category) YearColumn(year int) string {
	return fmt.Sprintf("%s_%d", c.ColumnPrefix(), year)
}

// TotalColumn returns the derived column name holding this category's
// decade total in the processed snapshot cache.
func (c Category) TotalColumn() string {
	return fmt.Sprintf("Total_%s", c.Label())
}

// IsValid reports whether the category belongs to the canonical set.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory resolves a user-supplied category name. It accepts the
// canonical identifier, the display label, and the column prefix,
// case-insensitively.
func ParseCategory(name string) (Category, bool) {
	trimmed := strings.TrimSpace(name)
	candidate := Category(strings.ToLower(trimmed))
	if candidate.IsValid() {
		return candidate, true
	}
	for cat, label := range categoryLabels {
		if strings.EqualFold(trimmed, label) || strings.EqualFold(trimmed, cat.ColumnPrefix()) {
			return cat, true
		}
	}
	return "", false
}
