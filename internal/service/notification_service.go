package service

import (
	"context"
	log "log/slog"
	"strconv"

	"fluxo/internal/api/dto"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/repository"

	"github.com/goccy/go-json"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uint64) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error)
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	profileRepo      repository.ProfileRepo
	viewCache        cache.ViewCache
}

func NewNotificationService(
	notificationRepo repository.NotificationRepo,
	profileRepo repository.ProfileRepo,
	viewCache cache.ViewCache,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		viewCache:        viewCache,
	}
}

// ListNotifications 最新 50 条，发起者资料批量拉取
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, userID uint64) ([]*dto.NotificationDTO, error) {
	key := consts.NotificationKey + strconv.FormatUint(userID, 10)
	if raw, ok := s.viewCache.Get(ctx, key); ok {
		var views []*dto.NotificationDTO
		if err := json.Unmarshal(raw, &views); err == nil {
			return views, nil
		}
	}

	notifications, err := s.notificationRepo.ListByUserID(ctx, userID, consts.NotificationLimit, 0)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]uint64, 0, len(notifications))
	seen := make(map[uint64]struct{}, len(notifications))
	for _, n := range notifications {
		if _, ok := seen[n.ActorID]; ok {
			continue
		}
		seen[n.ActorID] = struct{}{}
		actorIDs = append(actorIDs, n.ActorID)
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, actorIDs)
	if err != nil {
		return nil, err
	}
	profileMap := buildProfileMap(profiles)

	views := make([]*dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, &dto.NotificationDTO{
			ID:        n.ID,
			Type:      n.Type,
			Actor:     toProfileCard(profileMap[n.ActorID]),
			PostID:    n.PostID,
			IsRead:    n.IsRead,
			CreatedAt: formatTime(n.CreatedAt),
		})
	}

	if raw, err := json.Marshal(views); err == nil {
		if err := s.viewCache.Set(ctx, key, raw, []string{cache.TagNotifications(userID)}); err != nil {
			log.WarnContext(ctx, "set view cache failed", "key", key, "err", err)
		}
	}
	return views, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{Count: count}, nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	if err := s.viewCache.Invalidate(ctx, cache.TagNotifications(userID)); err != nil {
		log.WarnContext(ctx, "invalidate view cache failed", "user_id", userID, "err", err)
	}
	return nil
}
