package models

// FilterAll is the facet value that disables the platform or difficulty
// restriction.
const FilterAll = "All"

// FilterSelection holds the three catalog facets picked by the user. It is
// ephemeral UI state and is never persisted.
type FilterSelection struct {
	// Platform is FilterAll or one of the platform values.
	Platform string
	// Difficulty is FilterAll or one of the difficulty values.
	Difficulty string
	// Search is free text matched case-insensitively against title and tags.
	Search string
}

// NewFilterSelection returns the selection that matches every writeup.
func NewFilterSelection() FilterSelection {
	return FilterSelection{Platform: FilterAll, Difficulty: FilterAll}
}
