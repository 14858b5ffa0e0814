package repository

import (
	"context"
	"errors"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID uint64) error
	GetFollow(ctx context.Context, followerID, followingID uint64) (*model.Follow, error)
	GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error)
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db}
}

func (s *UserFollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *UserFollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

func (s *UserFollowRepoImpl) GetFollow(ctx context.Context, followerID, followingID uint64) (*model.Follow, error) {
	var follow model.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// GetFollowingIDs 拉取关注集合，用于主页时间线圈定作者范围
func (s *UserFollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (s *UserFollowRepoImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	err := s.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&follows).Error
	return follows, err
}

func (s *UserFollowRepoImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&follows).Error
	return follows, err
}

func (s *UserFollowRepoImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
