package search

import (
	"fmt"
	"sort"

	"profile_search/models"
)

// Scored pairs a profile with its relevance score.
type Scored struct {
	Profile models.Profile
	Score   int
}

// Rank scores every profile against q and sorts them by descending score.
// Equal scores keep their input order. The first scoring failure aborts the
// whole ranking.
func Rank(profiles []models.Profile, q models.SearchQuery) ([]Scored, error) {
	out := make([]Scored, 0, len(profiles))
	for _, p := range profiles {
		score, err := Score(p, q.Terms, q.Raw, q.Mode)
		if err != nil {
			return nil, fmt.Errorf("score profile %q: %w", p.UserID, err)
		}
		out = append(out, Scored{Profile: p, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
