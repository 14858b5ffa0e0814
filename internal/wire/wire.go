package wire

import (
	"fluxo/internal/api"
	"fluxo/internal/api/config"
	"fluxo/internal/api/handler"
	"fluxo/internal/job"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/cron"
	"fluxo/internal/pkg/kafka"
	"fluxo/internal/pkg/redis"
	"fluxo/internal/repository"
	"fluxo/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Producer     *kafka.NotificationProducer
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userRolesRepo := repository.NewUserRolesRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	postRepo := repository.NewPostRepo(db)
	actionRepo := repository.NewPostActionRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	reportRepo := repository.NewReportRepo(db)

	viewCache, err := buildViewCache(cfg)
	if err != nil {
		return nil, err
	}

	producer, err := kafka.NewNotificationProducer(cfg)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo, profileRepo, userRolesRepo)
	profileService := service.NewProfileService(profileRepo, followRepo, viewCache)
	feedService := service.NewFeedService(postRepo, actionRepo, followRepo, profileRepo, viewCache)
	postService := service.NewPostService(postRepo, producer, viewCache)
	actionService := service.NewPostActionService(actionRepo, postRepo, profileRepo, reportRepo, producer, viewCache)
	followService := service.NewUserFollowService(followRepo, profileRepo, producer, viewCache)
	notificationService := service.NewNotificationService(notificationRepo, profileRepo, viewCache)
	reportService := service.NewReportService(reportRepo, postRepo, profileRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		ProfileHandler:      handler.NewProfileHandler(profileService),
		PostHandler:         handler.NewPostHandler(postService, feedService),
		PostActionHandler:   handler.NewPostActionHandler(actionService),
		UserFollowHandler:   handler.NewUserFollowHandler(followService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		AdminHandler:        handler.NewAdminHandler(reportService, userService),
	}

	router := api.SetupRouter(handlers)

	orphanCleanJob := job.NewOrphanCleanJob(actionRepo, notificationRepo)
	cronMgr := cron.NewCronManager(orphanCleanJob)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationRepo, viewCache)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Producer:     producer,
	}, nil
}

// buildViewCache Redis 可用时用共享缓存，单机部署退化为进程内 LRU
func buildViewCache(cfg *config.Config) (cache.ViewCache, error) {
	if cfg.Redis.Addr != "" {
		return cache.NewRedisCache(redis.GetRdbClient()), nil
	}
	return cache.NewLocalCache()
}
