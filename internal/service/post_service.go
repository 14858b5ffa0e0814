package service

import (
	"context"
	log "log/slog"
	"time"

	"fluxo/internal/api/config"
	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/kafka"
	"fluxo/internal/pkg/minio"
	"fluxo/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (uint64, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	producer  kafka.Publisher
	viewCache cache.ViewCache
}

func NewPostService(postRepo repository.PostRepo, producer kafka.Publisher, viewCache cache.ViewCache) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		producer:  producer,
		viewCache: viewCache,
	}
}

// CreatePost 发帖。转发时通知原作者，自己转自己不通知
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (uint64, error) {
	var original *model.Post
	if req.RepostOf != nil {
		var err error
		original, err = s.postRepo.GetPostByID(ctx, *req.RepostOf)
		if err != nil {
			return 0, err
		}
		if original == nil {
			return 0, ErrPostNotFound
		}
	}

	post := &model.Post{
		UserID:    userID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		RepostOf:  req.RepostOf,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return 0, err
	}

	// 主写成功后的副作用都是尽力而为，失败只记日志
	if original != nil && original.UserID != userID {
		s.publish(ctx, &kafka.NotificationEvent{
			Type:        model.NotificationTypeRepost,
			ActorID:     userID,
			RecipientID: original.UserID,
			PostID:      &original.ID,
		})
	}
	s.invalidate(ctx, cache.TagAuthor(userID), cache.TagAllPosts)

	return post.ID, nil
}

// DeletePost 仅作者可删，物理删除。孤儿行由定时任务回收
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrPostNotOwned
	}

	rows, err := s.postRepo.DeletePost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		// 并发下已被别的请求删掉
		return ErrPostNotFound
	}

	if post.ImageURL != nil && *post.ImageURL != "" {
		s.removeImage(ctx, *post.ImageURL)
	}
	s.invalidate(ctx, cache.TagPost(postID), cache.TagAuthor(userID), cache.TagAllPosts)
	return nil
}

// removeImage 删除帖子引用的图片对象，失败只记日志不影响删帖
func (s *postServiceImpl) removeImage(ctx context.Context, imageURL string) {
	bucket := ""
	if config.Cfg != nil {
		bucket = config.Cfg.MinIO.PostImageBucket
	}
	objectName := minio.ObjectNameFromURL(bucket, imageURL)
	if objectName == "" {
		return
	}
	if err := minio.DeleteFile(ctx, bucket, objectName); err != nil {
		log.WarnContext(ctx, "delete post image failed", "object", objectName, "err", err)
	}
}

func (s *postServiceImpl) publish(ctx context.Context, event *kafka.NotificationEvent) {
	if err := s.producer.PublishNotification(ctx, event); err != nil {
		log.ErrorContext(ctx, "publish notification event failed", "type", event.Type, "err", err)
	}
}

func (s *postServiceImpl) invalidate(ctx context.Context, tags ...string) {
	if err := s.viewCache.Invalidate(ctx, tags...); err != nil {
		log.WarnContext(ctx, "invalidate view cache failed", "tags", tags, "err", err)
	}
}
