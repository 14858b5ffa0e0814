package service

import (
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/kafka"
	"fluxo/internal/pkg/redis"
	"fluxo/internal/repository"

	"github.com/go-sql-driver/mysql"
)

const reportLockExpiration = 24 * time.Hour

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	CancelLikePost(ctx context.Context, userID, postID uint64) error

	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error
	GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*dto.CommentDTO, error)

	ReportPost(ctx context.Context, userID, postID uint64, reason string) error
}

type postActionServiceImpl struct {
	actionRepo  repository.PostActionRepo
	postRepo    repository.PostRepo
	profileRepo repository.ProfileRepo
	reportRepo  repository.ReportRepo
	producer    kafka.Publisher
	viewCache   cache.ViewCache
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	profileRepo repository.ProfileRepo,
	reportRepo repository.ReportRepo,
	producer kafka.Publisher,
	viewCache cache.ViewCache,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo:  actionRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		reportRepo:  reportRepo,
		producer:    producer,
		viewCache:   viewCache,
	}
}

func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	var post *model.Post
	err := s.performAction(s.getPostCheck(ctx, postID, &post), func() error {
		return s.actionRepo.CreateLike(ctx, &model.Like{UserID: userID, PostID: postID, CreatedAt: time.Now()})
	})
	if err != nil {
		return err
	}

	if post.UserID != userID {
		s.publish(ctx, &kafka.NotificationEvent{
			Type:        model.NotificationTypeLike,
			ActorID:     userID,
			RecipientID: post.UserID,
			PostID:      &post.ID,
		})
	}
	s.invalidate(ctx, cache.TagPost(postID))
	return nil
}

// CancelLikePost 幂等，未点过赞直接成功
func (s *postActionServiceImpl) CancelLikePost(ctx context.Context, userID, postID uint64) error {
	var post *model.Post
	err := s.revokeAction(s.getPostCheck(ctx, postID, &post), func() error {
		return s.actionRepo.DeleteLike(ctx, userID, postID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cache.TagPost(postID))
	return nil
}

func (s *postActionServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error {
	var post *model.Post
	err := s.performAction(s.getPostCheck(ctx, req.PostID, &post), func() error {
		return s.actionRepo.CreateComment(ctx, &model.Comment{
			PostID:    req.PostID,
			UserID:    userID,
			Content:   req.Content,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return err
	}

	if post.UserID != userID {
		s.publish(ctx, &kafka.NotificationEvent{
			Type:        model.NotificationTypeComment,
			ActorID:     userID,
			RecipientID: post.UserID,
			PostID:      &post.ID,
		})
	}
	s.invalidate(ctx, cache.TagPost(req.PostID))
	return nil
}

func (s *postActionServiceImpl) GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.actionRepo.GetCommentsByPostID(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint64, 0, len(comments))
	seen := make(map[uint64]struct{}, len(comments))
	for _, comment := range comments {
		if _, ok := seen[comment.UserID]; ok {
			continue
		}
		seen[comment.UserID] = struct{}{}
		authorIDs = append(authorIDs, comment.UserID)
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	profileMap := buildProfileMap(profiles)

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		list = append(list, &dto.CommentDTO{
			ID:        comment.ID,
			PostID:    comment.PostID,
			UserID:    comment.UserID,
			Content:   comment.Content,
			Author:    toProfileCard(profileMap[comment.UserID]),
			CreatedAt: formatTime(comment.CreatedAt),
		})
	}
	return list, nil
}

// ReportPost 同一用户对同一帖子的重复举报用分布式锁去重
func (s *postActionServiceImpl) ReportPost(ctx context.Context, userID, postID uint64, reason string) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	key := consts.ReportLock + strconv.FormatUint(userID, 10) + ":" + strconv.FormatUint(postID, 10)
	locked, err := redis.TryLock(ctx, key, 1, reportLockExpiration, 1)
	if err != nil {
		return err
	}
	if !locked {
		return ErrActionDuplicate
	}

	return s.reportRepo.Create(ctx, &model.Report{
		ReporterID:     userID,
		ReportedPostID: &postID,
		ReportedUserID: &post.UserID,
		Reason:         reason,
		Status:         model.ReportStatusPending,
		CreatedAt:      time.Now(),
	})
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func (s *postActionServiceImpl) performAction(checkFunc func() error, repoFunc func() error) error {
	if err := checkFunc(); err != nil {
		return err
	}
	if err := repoFunc(); err != nil {
		if isDuplicateError(err) {
			return ErrActionDuplicate
		}
		return err
	}
	return nil
}

func (s *postActionServiceImpl) revokeAction(checkFunc func() error, repoFunc func() error) error {
	if err := checkFunc(); err != nil {
		return err
	}
	return repoFunc()
}

func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64, out **model.Post) func() error {
	return func() error {
		post, err := s.postRepo.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		*out = post
		return nil
	}
}

func (s *postActionServiceImpl) publish(ctx context.Context, event *kafka.NotificationEvent) {
	if err := s.producer.PublishNotification(ctx, event); err != nil {
		log.ErrorContext(ctx, "publish notification event failed", "type", event.Type, "err", err)
	}
}

func (s *postActionServiceImpl) invalidate(ctx context.Context, tags ...string) {
	if err := s.viewCache.Invalidate(ctx, tags...); err != nil {
		log.WarnContext(ctx, "invalidate view cache failed", "tags", tags, "err", err)
	}
}
