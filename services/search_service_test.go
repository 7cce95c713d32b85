package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile_search/config"
	"profile_search/models"
)

type fakeStore struct {
	mu         sync.Mutex
	profiles   []models.Profile
	fetchErr   error
	insertErr  error
	lastQuery  models.SearchQuery
	lastLimit  int
	fetchCalls int
	logs       []*models.SearchLogEntry
	recent     []string
	cutoff     time.Time
	deleted    int64
}

func (f *fakeStore) FindCandidates(_ context.Context, q models.SearchQuery, limit int) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	f.lastQuery = q
	f.lastLimit = limit
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]models.Profile(nil), f.profiles...), nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) InsertSearchLog(_ context.Context, e *models.SearchLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.logs = append(f.logs, e)
	return nil
}

func (f *fakeStore) ListRecentQueries(_ context.Context, _ string, limit int) ([]string, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeStore) DeleteSearchLogsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, nil
}

func str(s string) *string { return &s }

func profile(id, first, last string, interests ...string) models.Profile {
	return models.Profile{UserID: id, FirstName: str(first), LastName: str(last), Interests: interests}
}

func testConfig() *config.Config {
	cfg, err := config.Parse([]byte("search:\n  live_limit: 5\n  max_results: 0\n"))
	if err != nil {
		panic(err)
	}
	return cfg
}

func newService(store *fakeStore) *SearchService {
	svc := NewSearchService(testConfig(), store, store)
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	return svc
}

func ids(results []models.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.UserID
	}
	return out
}

func TestLiveSearchRanksAndKeepsScores(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{
		profile("u1", "Janet", "Smith"),
		profile("u2", "Jane", "Doe"),
		profile("u3", "Bob", "Jones"),
	}}
	svc := newService(store)

	results := svc.LiveSearch(context.Background(), "me", "  jane ", models.SearchByName)

	assert.Equal(t, []string{"u2", "u1", "u3"}, ids(results))
	require.NotNil(t, results[0].RelevanceScore)
	assert.Equal(t, 110, *results[0].RelevanceScore)
	assert.Equal(t, "Jane Doe", results[0].Suggestion)

	assert.Equal(t, 5, store.lastLimit)
	assert.Equal(t, "jane", store.lastQuery.Raw)
	assert.Equal(t, []string{"jane"}, store.lastQuery.Terms)

	require.Len(t, store.logs, 1)
	assert.True(t, store.logs[0].Live)
	assert.Equal(t, "me", store.logs[0].UserID)
	assert.Equal(t, 3, store.logs[0].ResultCount)
	assert.NotEmpty(t, store.logs[0].ID)
}

func TestLiveSearchInterestsSuggestion(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{
		profile("u1", "A", "B", "hiking", "chess"),
	}}
	svc := newService(store)

	results := svc.LiveSearch(context.Background(), "", "chess", models.SearchByInterests)
	require.Len(t, results, 1)
	assert.Equal(t, "hiking, chess", results[0].Suggestion)
	assert.Equal(t, 200, *results[0].RelevanceScore)
	assert.Empty(t, store.logs, "anonymous searches are not recorded")
}

func TestSearchStripsScores(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{
		profile("u1", "John", "Smith", "go"),
		profile("u2", "Jane", "Doe", "chess"),
	}}
	svc := newService(store)

	results := svc.Search(context.Background(), "me", "Jane Doe", models.SearchByName)

	assert.Equal(t, []string{"u2", "u1"}, ids(results))
	for _, r := range results {
		assert.Nil(t, r.RelevanceScore)
		assert.Empty(t, r.Suggestion)
	}
	assert.Equal(t, 0, store.lastLimit)
	require.Len(t, store.logs, 1)
	assert.False(t, store.logs[0].Live)
}

func TestSearchEmptyQuerySkipsFetch(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{profile("u1", "Jane", "Doe")}}
	svc := newService(store)

	assert.Empty(t, svc.Search(context.Background(), "me", "   ", models.SearchByName))
	assert.Empty(t, svc.LiveSearch(context.Background(), "me", "", models.SearchByName))
	assert.Zero(t, store.fetchCalls)
	assert.Empty(t, store.logs)
}

func TestSearchFetchErrorReturnsEmpty(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("db down")}
	svc := newService(store)

	results := svc.Search(context.Background(), "me", "jane", models.SearchByName)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, store.logs)
}

func TestSearchInvalidProfileReturnsEmpty(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{
		profile("u1", "Jane", "Doe"),
		{UserID: "u2", FirstName: str("Jane")},
	}}
	svc := newService(store)

	assert.Empty(t, svc.Search(context.Background(), "me", "jane", models.SearchByName))
	assert.Empty(t, svc.LiveSearch(context.Background(), "me", "jane", models.SearchByName))
}

func TestSearchInterestsToleratesMissingNames(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{
		{UserID: "u1", Interests: models.Interests{"chess"}},
		{UserID: "u2"},
	}}
	svc := newService(store)

	results := svc.Search(context.Background(), "me", "chess", models.SearchByInterests)
	assert.Equal(t, []string{"u1", "u2"}, ids(results))
}

func TestSearchLogFailureDoesNotFailSearch(t *testing.T) {
	store := &fakeStore{
		profiles:  []models.Profile{profile("u1", "Jane", "Doe")},
		insertErr: errors.New("log table missing"),
	}
	svc := newService(store)

	results := svc.Search(context.Background(), "me", "jane", models.SearchByName)
	assert.Len(t, results, 1)
}

func TestRecentSearchesDefaultLimit(t *testing.T) {
	recent := make([]string, 15)
	for i := range recent {
		recent[i] = string(rune('a' + i))
	}
	store := &fakeStore{recent: recent}
	svc := newService(store)

	got, err := svc.RecentSearches(context.Background(), "me", 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = svc.RecentSearches(context.Background(), "me", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestPruneSearchLogs(t *testing.T) {
	store := &fakeStore{deleted: 12}
	now := time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC)

	n, err := PruneSearchLogs(context.Background(), testConfig(), store, now)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, time.Date(2026, 9, 16, 3, 0, 0, 0, time.UTC), store.cutoff)
}

func TestLoadProfile(t *testing.T) {
	store := &fakeStore{profiles: []models.Profile{profile("u1", "Jane", "Doe")}}
	svc := NewProfileService(store)

	p, err := svc.LoadProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName())

	p, err = svc.LoadProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}
