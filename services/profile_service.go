package services

import (
	"context"
	"database/sql"
	"errors"

	"profile_search/models"
)

// ProfileService 用户资料只读服务
type ProfileService struct {
	store ProfileStore
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// LoadProfile 查询用户资料，不存在时返回 nil, nil
func (s *ProfileService) LoadProfile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
