// Package category holds the rules shared by every category write path.
package category

import (
	"errors"
	"regexp"
)

var (
	// ErrCategoryNotFound covers both a missing row and one owned by somebody else.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNameTaken is returned when the owner already has a category with that name.
	ErrNameTaken = errors.New("category name already exists")
)

// ColorPattern matches #RGB and #RRGGBB.
var ColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsColor reports whether s is a hex color accepted for a category.
func IsColor(s string) bool {
	return ColorPattern.MatchString(s)
}
