package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"profile_search/config"
	"profile_search/logger"
	"profile_search/metrics"
	"profile_search/models"
	"profile_search/search"
)

// SearchService runs the candidate fetch, ranking and history bookkeeping for
// profile searches. Every call is independent; nothing is cached between
// keystrokes.
type SearchService struct {
	cfg      *config.Config
	profiles ProfileStore
	logs     SearchLogStore
	now      func() time.Time
}

func NewSearchService(cfg *config.Config, profiles ProfileStore, logs SearchLogStore) *SearchService {
	return &SearchService{
		cfg:      cfg,
		profiles: profiles,
		logs:     logs,
		now:      time.Now,
	}
}

// LiveSearch serves the type-ahead dropdown: a small candidate set, results
// keep their relevance score and carry the text to fill into the search box.
func (s *SearchService) LiveSearch(ctx context.Context, currentUserID, raw string, mode models.SearchMode) []models.SearchResult {
	q := search.ParseQuery(raw, mode)
	ranked := s.run(ctx, currentUserID, q, s.cfg.Search.LiveLimit, true)

	results := make([]models.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		score := r.Score
		results = append(results, models.SearchResult{
			Profile:        r.Profile,
			RelevanceScore: &score,
			Suggestion:     suggestion(r.Profile, mode),
		})
	}
	return results
}

// Search serves a submitted query. Results are ordered by relevance but the
// scores themselves are not returned.
func (s *SearchService) Search(ctx context.Context, currentUserID, raw string, mode models.SearchMode) []models.SearchResult {
	q := search.ParseQuery(raw, mode)
	ranked := s.run(ctx, currentUserID, q, s.cfg.Search.MaxResults, false)

	results := make([]models.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, models.SearchResult{Profile: r.Profile})
	}
	return results
}

// RecentSearches returns the caller's latest distinct submitted queries.
func (s *SearchService) RecentSearches(ctx context.Context, currentUserID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.cfg.Search.RecentLimit
	}
	return s.logs.ListRecentQueries(ctx, currentUserID, limit)
}

// run fetches and ranks candidates. Store and scoring failures are logged and
// reported as an empty result.
func (s *SearchService) run(ctx context.Context, currentUserID string, q models.SearchQuery, limit int, live bool) []search.Scored {
	if q.Empty() {
		return nil
	}

	start := s.now()
	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Search.QueryTimeoutSec)*time.Second)
	defer cancel()

	candidates, err := s.profiles.FindCandidates(fetchCtx, q, limit)
	if err != nil {
		logger.Error("Error fetching profiles", "query", q.Raw, "type", q.Mode, "error", err)
		metrics.RecordSearchFailure("fetch")
		return nil
	}

	ranked, err := search.Rank(candidates, q)
	if err != nil {
		logger.Error("Error ranking profiles", "query", q.Raw, "type", q.Mode, "error", err)
		metrics.RecordSearchFailure("score")
		return nil
	}

	elapsed := s.now().Sub(start)
	metrics.RecordSearch(string(q.Mode), live, len(candidates), elapsed)
	logger.Debug("Search completed",
		"user_id", currentUserID,
		"query", q.Raw,
		"type", q.Mode,
		"live", live,
		"results", len(ranked),
		"duration_ms", elapsed.Milliseconds())

	s.record(ctx, currentUserID, q, live, len(ranked), elapsed)
	return ranked
}

func (s *SearchService) record(ctx context.Context, currentUserID string, q models.SearchQuery, live bool, count int, elapsed time.Duration) {
	if currentUserID == "" || s.logs == nil {
		return
	}
	entry := &models.SearchLogEntry{
		ID:          uuid.NewString(),
		UserID:      currentUserID,
		Query:       q.Raw,
		Mode:        q.Mode,
		Live:        live,
		ResultCount: count,
		DurationMs:  elapsed.Milliseconds(),
		CreatedAt:   s.now(),
	}
	if err := s.logs.InsertSearchLog(ctx, entry); err != nil {
		logger.Warn("Failed to save search log", "user_id", currentUserID, "error", err)
	}
}

// suggestion is the text the dropdown puts into the search box when a result
// is picked.
func suggestion(p models.Profile, mode models.SearchMode) string {
	if mode == models.SearchByInterests {
		return strings.Join(p.Interests, ", ")
	}
	return p.FullName()
}

// PruneSearchLogs deletes search history older than the configured retention.
func PruneSearchLogs(ctx context.Context, cfg *config.Config, store SearchLogStore, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -cfg.Search.LogRetentionDays)
	n, err := store.DeleteSearchLogsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.RecordPrunedLogs(n)
	logger.Info("Pruned search logs", "deleted", n, "cutoff", cutoff.Format(time.RFC3339))
	return n, nil
}
