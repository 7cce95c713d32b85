// Package search ranks profiles against a free-text query. Scoring is pure
// and safe for concurrent use.
package search

import (
	"errors"
	"strings"

	"profile_search/models"
)

// ErrInvalidProfile is returned for name search when a profile lacks a first
// or last name.
var ErrInvalidProfile = errors.New("invalid profile shape")

// Name-search bonuses.
const (
	nameFullMatch   = 100
	namePartMatch   = 50
	nameTermExact   = 30
	nameTermPrefix  = 20
	nameTermContain = 10
)

// Interest-search bonuses.
const (
	interestQueryMatch  = 100
	interestTermExact   = 50
	interestTermContain = 30
	interestTermPrefix  = 20
)

// Score returns the relevance of profile for the given query. terms are the
// whitespace-separated pieces of fullQuery. The per-term bonuses stack: a term
// equal to a name part also counts as a prefix and a substring of it.
func Score(profile models.Profile, terms []string, fullQuery string, mode models.SearchMode) (int, error) {
	switch mode {
	case models.SearchByName:
		return scoreName(profile, terms, fullQuery)
	case models.SearchByInterests:
		return scoreInterests(profile.Interests, terms, fullQuery), nil
	default:
		return 0, models.ErrInvalidSearchMode
	}
}

func scoreName(profile models.Profile, terms []string, fullQuery string) (int, error) {
	if profile.FirstName == nil || profile.LastName == nil {
		return 0, ErrInvalidProfile
	}

	firstName := strings.ToLower(*profile.FirstName)
	lastName := strings.ToLower(*profile.LastName)
	fullName := firstName + " " + lastName
	query := strings.ToLower(fullQuery)
	score := 0

	if fullName == query {
		score += nameFullMatch
	}
	if firstName == query || lastName == query {
		score += namePartMatch
	}

	for _, term := range terms {
		t := strings.ToLower(term)
		if firstName == t || lastName == t {
			score += nameTermExact
		}
		if strings.HasPrefix(firstName, t) || strings.HasPrefix(lastName, t) {
			score += nameTermPrefix
		}
		if strings.Contains(firstName, t) || strings.Contains(lastName, t) {
			score += nameTermContain
		}
	}

	return score, nil
}

func scoreInterests(interests models.Interests, terms []string, fullQuery string) int {
	if len(interests) == 0 {
		return 0
	}

	lowered := make([]string, len(interests))
	for i, interest := range interests {
		lowered[i] = strings.ToLower(interest)
	}
	query := strings.ToLower(fullQuery)
	score := 0

	for _, interest := range lowered {
		if interest == query {
			score += interestQueryMatch
			break
		}
	}

	for _, term := range terms {
		t := strings.ToLower(term)
		for _, interest := range lowered {
			if interest == t {
				score += interestTermExact
			}
			if strings.Contains(interest, t) {
				score += interestTermContain
			}
			if strings.HasPrefix(interest, t) {
				score += interestTermPrefix
			}
		}
	}

	return score
}
