package repository

import (
	"context"
	"errors"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.Profile, error)
	GetByUsername(ctx context.Context, username string) (*model.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []uint64) ([]*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uint64, updates map[string]interface{}) error
	UpdateAvatar(ctx context.Context, userID uint64, avatarURL string) error
	ListProfiles(ctx context.Context, limit, offset int) ([]*model.Profile, error)
}

type ProfileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &ProfileRepoImpl{db}
}

func (s *ProfileRepoImpl) GetByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileRepoImpl) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserIDs 批量拉取资料，用于视图装配
func (s *ProfileRepoImpl) GetByUserIDs(ctx context.Context, userIDs []uint64) ([]*model.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []*model.Profile
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	return profiles, err
}

func (s *ProfileRepoImpl) UpdateProfile(ctx context.Context, userID uint64, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (s *ProfileRepoImpl) UpdateAvatar(ctx context.Context, userID uint64, avatarURL string) error {
	return s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

func (s *ProfileRepoImpl) ListProfiles(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	return profiles, err
}
