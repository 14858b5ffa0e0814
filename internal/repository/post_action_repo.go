package repository

import (
	"context"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) error
	GetLikeCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)

	DeleteOrphanLikes(ctx context.Context) (int64, error)
	DeleteOrphanComments(ctx context.Context) (int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{}).Error
}

// GetLikeCountsByPostIDs 一次 GROUP BY 拿全部点赞数
func (s *PostActionRepoImpl) GetLikeCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint64
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// GetLikedPostIDs 查询一批帖子里当前用户点过赞的集合
func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likedIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedIDs).Error
	return likedIDs, err
}

func (s *PostActionRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *PostActionRepoImpl) GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *PostActionRepoImpl) GetCommentCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint64
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// DeleteOrphanLikes 清理帖子已删除的点赞行
func (s *PostActionRepoImpl) DeleteOrphanLikes(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("post_id NOT IN (?)", s.db.Model(&model.Post{}).Select("id")).
		Delete(&model.Like{})
	return res.RowsAffected, res.Error
}

// DeleteOrphanComments 清理帖子已删除的评论行
func (s *PostActionRepoImpl) DeleteOrphanComments(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("post_id NOT IN (?)", s.db.Model(&model.Post{}).Select("id")).
		Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}
