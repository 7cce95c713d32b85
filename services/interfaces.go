package services

import (
	"context"
	"time"

	"profile_search/models"
	"profile_search/repository"
)

// ProfileStore 用户资料存储接口
type ProfileStore interface {
	// 按子串匹配取出候选资料，limit<=0 表示不限制
	FindCandidates(ctx context.Context, q models.SearchQuery, limit int) ([]models.Profile, error)

	// 按 user_id 查询资料，不存在时返回 sql.ErrNoRows
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// SearchLogStore 搜索历史存储接口
type SearchLogStore interface {
	InsertSearchLog(ctx context.Context, e *models.SearchLogEntry) error
	ListRecentQueries(ctx context.Context, userID string, limit int) ([]string, error)
	DeleteSearchLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MySQLStore 基于 repository 包的 MySQL 实现
type MySQLStore struct{}

var (
	_ ProfileStore   = MySQLStore{}
	_ SearchLogStore = MySQLStore{}
)

func (MySQLStore) FindCandidates(ctx context.Context, q models.SearchQuery, limit int) ([]models.Profile, error) {
	return repository.FindCandidates(ctx, q, limit)
}

func (MySQLStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return repository.GetProfile(ctx, userID)
}

func (MySQLStore) InsertSearchLog(ctx context.Context, e *models.SearchLogEntry) error {
	return repository.InsertSearchLog(ctx, e)
}

func (MySQLStore) ListRecentQueries(ctx context.Context, userID string, limit int) ([]string, error) {
	return repository.ListRecentQueries(ctx, userID, limit)
}

func (MySQLStore) DeleteSearchLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return repository.DeleteSearchLogsBefore(ctx, cutoff)
}
