package models

import (
	"errors"
	"strings"
	"time"
)

// SearchMode selects which profile fields a query is matched against.
type SearchMode string

const (
	SearchByName      SearchMode = "name"
	SearchByInterests SearchMode = "interests"
)

var ErrInvalidSearchMode = errors.New("invalid search mode")

// ParseSearchMode maps the `type` query parameter to a SearchMode. An empty
// value means name search.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchByName:
		return SearchByName, nil
	case SearchByInterests:
		return SearchByInterests, nil
	default:
		return "", ErrInvalidSearchMode
	}
}

// SearchQuery is built per keystroke or submit and never stored.
type SearchQuery struct {
	Raw   string     `json:"query"`
	Terms []string   `json:"terms"`
	Mode  SearchMode `json:"type"`
}

// Empty reports whether the query has nothing to search for.
func (q SearchQuery) Empty() bool {
	return q.Raw == ""
}

// SearchResult 搜索结果条目
type SearchResult struct {
	Profile
	RelevanceScore *int   `json:"relevanceScore,omitempty"`
	Suggestion     string `json:"suggestion,omitempty"`
}

// SearchLogEntry 搜索历史记录
type SearchLogEntry struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Query       string     `db:"query" json:"query"`
	Mode        SearchMode `db:"mode" json:"type"`
	Live        bool       `db:"live" json:"live"`
	ResultCount int        `db:"result_count" json:"result_count"`
	DurationMs  int64      `db:"duration_ms" json:"duration_ms"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
