package enums

import "fmt"

// CategoryDisposition is the caller's choice for items left behind when a
// category is deleted. Absent a choice, the deletion is refused.
type CategoryDisposition string

const (
	CategoryDispositionReassign    CategoryDisposition = "reassign"
	CategoryDispositionDeleteItems CategoryDisposition = "delete_items"
)

var validCategoryDispositions = []CategoryDisposition{
	CategoryDispositionReassign,
	CategoryDispositionDeleteItems,
}

// IsValid reports whether the value matches a supported disposition.
func (d CategoryDisposition) IsValid() bool {
	for _, candidate := range validCategoryDispositions {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseCategoryDisposition converts raw input into a CategoryDisposition.
func ParseCategoryDisposition(value string) (CategoryDisposition, error) {
	for _, candidate := range validCategoryDispositions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category disposition %q", value)
}
