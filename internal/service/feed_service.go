package service

import (
	"context"
	log "log/slog"
	"strconv"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/repository"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type FeedService interface {
	GetHomeFeed(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error)
	GetExploreFeed(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error)
	GetUserFeed(ctx context.Context, viewerID, targetID uint64) ([]*dto.PostDTO, error)
	GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
}

type feedServiceImpl struct {
	postRepo    repository.PostRepo
	actionRepo  repository.PostActionRepo
	followRepo  repository.UserFollowRepo
	profileRepo repository.ProfileRepo
	viewCache   cache.ViewCache
}

func NewFeedService(
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	followRepo repository.UserFollowRepo,
	profileRepo repository.ProfileRepo,
	viewCache cache.ViewCache,
) FeedService {
	return &feedServiceImpl{
		postRepo:    postRepo,
		actionRepo:  actionRepo,
		followRepo:  followRepo,
		profileRepo: profileRepo,
		viewCache:   viewCache,
	}
}

// GetHomeFeed 主页时间线：关注集合 ∪ 自己。未关注任何人时只看到自己的帖子
func (s *feedServiceImpl) GetHomeFeed(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error) {
	key := consts.FeedHomeKey + strconv.FormatUint(viewerID, 10)
	return s.cachedFeed(ctx, key, func() ([]*dto.PostDTO, []string, error) {
		followingIDs, err := s.followRepo.GetFollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, nil, err
		}
		authorIDs := append(followingIDs, viewerID)

		posts, err := s.postRepo.GetPostsByUserIDs(ctx, authorIDs, consts.FeedFetchLimit)
		if err != nil {
			return nil, nil, err
		}
		views, err := s.assemblePostViews(ctx, viewerID, posts)
		if err != nil {
			return nil, nil, err
		}

		tags := make([]string, 0, len(authorIDs)+len(posts)+1)
		tags = append(tags, cache.TagFollows(viewerID))
		for _, id := range authorIDs {
			tags = append(tags, cache.TagAuthor(id))
		}
		tags = appendPostTags(tags, posts)
		return views, tags, nil
	})
}

// GetExploreFeed 探索流：全站最新，匿名可访问
func (s *feedServiceImpl) GetExploreFeed(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error) {
	key := consts.FeedExploreKey + strconv.FormatUint(viewerID, 10)
	return s.cachedFeed(ctx, key, func() ([]*dto.PostDTO, []string, error) {
		posts, err := s.postRepo.GetLatestPosts(ctx, consts.FeedFetchLimit)
		if err != nil {
			return nil, nil, err
		}
		views, err := s.assemblePostViews(ctx, viewerID, posts)
		if err != nil {
			return nil, nil, err
		}

		tags := appendPostTags([]string{cache.TagAllPosts}, posts)
		return views, tags, nil
	})
}

// GetUserFeed 某个作者的帖子列表，匿名可访问
func (s *feedServiceImpl) GetUserFeed(ctx context.Context, viewerID, targetID uint64) ([]*dto.PostDTO, error) {
	key := consts.FeedUserKey + strconv.FormatUint(targetID, 10) + ":" + strconv.FormatUint(viewerID, 10)
	return s.cachedFeed(ctx, key, func() ([]*dto.PostDTO, []string, error) {
		posts, err := s.postRepo.GetPostsByUserID(ctx, targetID, consts.FeedFetchLimit)
		if err != nil {
			return nil, nil, err
		}
		views, err := s.assemblePostViews(ctx, viewerID, posts)
		if err != nil {
			return nil, nil, err
		}

		tags := appendPostTags([]string{cache.TagAuthor(targetID)}, posts)
		return views, tags, nil
	})
}

func (s *feedServiceImpl) GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	key := consts.PostDetailKey + strconv.FormatUint(postID, 10) + ":" + strconv.FormatUint(viewerID, 10)
	if raw, ok := s.viewCache.Get(ctx, key); ok {
		var view dto.PostDTO
		if err := json.Unmarshal(raw, &view); err == nil {
			return &view, nil
		}
	}

	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		// 错误不缓存
		return nil, ErrPostNotFound
	}

	views, err := s.assemblePostViews(ctx, viewerID, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	view := views[0]

	if raw, err := json.Marshal(view); err == nil {
		if err = s.viewCache.Set(ctx, key, raw, []string{cache.TagPost(postID)}); err != nil {
			log.WarnContext(ctx, "view cache set failed", "key", key, "err", err)
		}
	}
	return view, nil
}

// cachedFeed 新鲜度窗口内直接返回缓存视图，未命中时回源并登记依赖标签
func (s *feedServiceImpl) cachedFeed(ctx context.Context, key string, fetch func() ([]*dto.PostDTO, []string, error)) ([]*dto.PostDTO, error) {
	if raw, ok := s.viewCache.Get(ctx, key); ok {
		var cached []*dto.PostDTO
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	views, tags, err := fetch()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(views); err == nil {
		if err = s.viewCache.Set(ctx, key, raw, tags); err != nil {
			log.WarnContext(ctx, "view cache set failed", "key", key, "err", err)
		}
	}
	return views, nil
}

// assemblePostViews 帖子视图装配：
// 作者档案一次批量查询，三类计数各一次 GROUP BY，登录用户再加一次点赞集合查询，
// 五路并发执行。任何一路失败则整批失败，档案缺失只留空作者不失败。
func (s *feedServiceImpl) assemblePostViews(ctx context.Context, viewerID uint64, posts []*model.Post) ([]*dto.PostDTO, error) {
	if len(posts) == 0 {
		return []*dto.PostDTO{}, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	authorIDSet := make(map[uint64]struct{}, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		authorIDSet[post.UserID] = struct{}{}
	}
	authorIDs := make([]uint64, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	var (
		profiles      []*model.Profile
		likeCounts    map[uint64]int64
		commentCounts map[uint64]int64
		repostCounts  map[uint64]int64
		likedIDs      []uint64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = s.profileRepo.GetByUserIDs(gCtx, authorIDs)
		return err
	})
	g.Go(func() error {
		var err error
		likeCounts, err = s.actionRepo.GetLikeCountsByPostIDs(gCtx, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		commentCounts, err = s.actionRepo.GetCommentCountsByPostIDs(gCtx, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		repostCounts, err = s.postRepo.GetRepostCountsByPostIDs(gCtx, postIDs)
		return err
	})
	if viewerID > 0 {
		// 匿名访客不查点赞状态
		g.Go(func() error {
			var err error
			likedIDs, err = s.actionRepo.GetLikedPostIDs(gCtx, viewerID, postIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profileMap := buildProfileMap(profiles)
	likedSet := make(map[uint64]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = struct{}{}
	}

	views := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		_, liked := likedSet[post.ID]
		views = append(views, &dto.PostDTO{
			ID:           post.ID,
			UserID:       post.UserID,
			Content:      post.Content,
			ImageURL:     post.ImageURL,
			RepostOf:     post.RepostOf,
			Author:       toProfileCard(profileMap[post.UserID]),
			LikeCount:    likeCounts[post.ID],
			CommentCount: commentCounts[post.ID],
			RepostCount:  repostCounts[post.ID],
			IsLiked:      liked,
			CreatedAt:    formatTime(post.CreatedAt),
		})
	}
	return views, nil
}

func appendPostTags(tags []string, posts []*model.Post) []string {
	for _, post := range posts {
		tags = append(tags, cache.TagPost(post.ID))
	}
	return tags
}
