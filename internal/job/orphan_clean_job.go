package job

import (
	"context"
	log "log/slog"
	"time"

	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/redis"
	"fluxo/internal/repository"
)

// OrphanCleanJob 回收被删帖子遗留的点赞、评论与通知行。
// 多实例部署时用分布式锁保证同一轮只跑一次
type OrphanCleanJob struct {
	actionRepo       repository.PostActionRepo
	notificationRepo repository.NotificationRepo
}

func NewOrphanCleanJob(actionRepo repository.PostActionRepo, notificationRepo repository.NotificationRepo) *OrphanCleanJob {
	return &OrphanCleanJob{
		actionRepo:       actionRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *OrphanCleanJob) Run() {
	ctx := context.Background()
	log.Info("start orphan cleanup job")

	locked, err := redis.TryLock(ctx, consts.OrphanCleanLock, 1, 10*time.Minute, 1)
	if err != nil {
		log.Error("acquire orphan cleanup lock failed", "err", err)
		return
	}
	if !locked {
		log.Info("orphan cleanup already running elsewhere, skip")
		return
	}
	defer redis.UnLock(ctx, consts.OrphanCleanLock, 1)

	likes, err := s.actionRepo.DeleteOrphanLikes(ctx)
	if err != nil {
		log.Error("cleanup orphan likes failed", "err", err)
	}
	comments, err := s.actionRepo.DeleteOrphanComments(ctx)
	if err != nil {
		log.Error("cleanup orphan comments failed", "err", err)
	}
	notifications, err := s.notificationRepo.DeleteOrphaned(ctx)
	if err != nil {
		log.Error("cleanup orphan notifications failed", "err", err)
	}

	log.Info("orphan cleanup job finished",
		"likes", likes,
		"comments", comments,
		"notifications", notifications,
	)
}
