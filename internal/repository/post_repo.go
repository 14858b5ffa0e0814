package repository

import (
	"context"
	"errors"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, postID, userID uint64) (int64, error)
	GetPostByID(ctx context.Context, postID uint64) (*model.Post, error)
	GetPostsByIDs(ctx context.Context, postIDs []uint64) ([]*model.Post, error)
	GetLatestPosts(ctx context.Context, limit int) ([]*model.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint64, limit int) ([]*model.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []uint64, limit int) ([]*model.Post, error)
	GetRepostCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// DeletePost 物理删除，仅作者可删。返回受影响行数供调用方判定归属
func (s *PostRepoImpl) DeletePost(ctx context.Context, postID, userID uint64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&model.Post{})
	return res.RowsAffected, res.Error
}

func (s *PostRepoImpl) GetPostByID(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Where("id = ?", postID).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostsByIDs(ctx context.Context, postIDs []uint64) ([]*model.Post, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("id IN ?", postIDs).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetLatestPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPostsByUserID(ctx context.Context, userID uint64, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetPostsByUserIDs 主页时间线：关注集合内作者的帖子
func (s *PostRepoImpl) GetPostsByUserIDs(ctx context.Context, userIDs []uint64, limit int) ([]*model.Post, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetRepostCountsByPostIDs 一次 GROUP BY 拿全部转发数
func (s *PostRepoImpl) GetRepostCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint64
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Select("repost_of AS post_id, COUNT(*) AS count").
		Where("repost_of IN ?", postIDs).
		Group("repost_of").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
