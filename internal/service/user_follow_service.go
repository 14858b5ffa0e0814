package service

import (
	"context"
	log "log/slog"
	"time"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/kafka"
	"fluxo/internal/repository"
)

type UserFollowService interface {
	Follow(ctx context.Context, followerID, followingID uint64) error
	Unfollow(ctx context.Context, followerID, followingID uint64) error
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.ProfileCardDTO, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.ProfileCardDTO, error)
}

type userFollowServiceImpl struct {
	followRepo  repository.UserFollowRepo
	profileRepo repository.ProfileRepo
	producer    kafka.Publisher
	viewCache   cache.ViewCache
}

func NewUserFollowService(
	followRepo repository.UserFollowRepo,
	profileRepo repository.ProfileRepo,
	producer kafka.Publisher,
	viewCache cache.ViewCache,
) UserFollowService {
	return &userFollowServiceImpl{
		followRepo:  followRepo,
		profileRepo: profileRepo,
		producer:    producer,
		viewCache:   viewCache,
	}
}

func (s *userFollowServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrUserFollowSelf
	}
	target, err := s.profileRepo.GetByUserID(ctx, followingID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	err = s.followRepo.CreateFollow(ctx, &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrUserFollowExist
		}
		return err
	}

	// 关注通知的接收方必然不是发起方，无需自通知判断
	s.publish(ctx, &kafka.NotificationEvent{
		Type:        model.NotificationTypeFollow,
		ActorID:     followerID,
		RecipientID: followingID,
	})
	s.invalidate(ctx, cache.TagFollows(followerID), cache.TagProfile(followerID), cache.TagProfile(followingID))
	return nil
}

// Unfollow 幂等，未关注时直接成功
func (s *userFollowServiceImpl) Unfollow(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrUserFollowSelf
	}
	if err := s.followRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
		return err
	}

	s.invalidate(ctx, cache.TagFollows(followerID), cache.TagProfile(followerID), cache.TagProfile(followingID))
	return nil
}

func (s *userFollowServiceImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.ProfileCardDTO, error) {
	follows, err := s.followRepo.GetFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(follows))
	for _, follow := range follows {
		ids = append(ids, follow.FollowerID)
	}
	return s.buildCards(ctx, ids)
}

func (s *userFollowServiceImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.ProfileCardDTO, error) {
	follows, err := s.followRepo.GetFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(follows))
	for _, follow := range follows {
		ids = append(ids, follow.FollowingID)
	}
	return s.buildCards(ctx, ids)
}

// buildCards 保持关注时间倒序，资料缺失的用户跳过
func (s *userFollowServiceImpl) buildCards(ctx context.Context, userIDs []uint64) ([]*dto.ProfileCardDTO, error) {
	profiles, err := s.profileRepo.GetByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	profileMap := buildProfileMap(profiles)

	cards := make([]*dto.ProfileCardDTO, 0, len(userIDs))
	for _, id := range userIDs {
		if card := toProfileCard(profileMap[id]); card != nil {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func (s *userFollowServiceImpl) publish(ctx context.Context, event *kafka.NotificationEvent) {
	if err := s.producer.PublishNotification(ctx, event); err != nil {
		log.ErrorContext(ctx, "publish notification event failed", "type", event.Type, "err", err)
	}
}

func (s *userFollowServiceImpl) invalidate(ctx context.Context, tags ...string) {
	if err := s.viewCache.Invalidate(ctx, tags...); err != nil {
		log.WarnContext(ctx, "invalidate view cache failed", "tags", tags, "err", err)
	}
}
