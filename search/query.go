package search

import (
	"strings"

	"profile_search/models"
)

// ParseQuery trims raw and splits it on runs of whitespace.
func ParseQuery(raw string, mode models.SearchMode) models.SearchQuery {
	trimmed := strings.TrimSpace(raw)
	return models.SearchQuery{
		Raw:   trimmed,
		Terms: strings.Fields(trimmed),
		Mode:  mode,
	}
}
