package service

import (
	"context"
	"sort"
	"time"

	"fluxo/internal/model"
	"fluxo/internal/pkg/kafka"
)

// 内存实现的依赖替身，按需填充数据

type fakeViewCache struct {
	store       map[string][]byte
	invalidated []string
	setErr      error
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{store: make(map[string][]byte)}
}

func (s *fakeViewCache) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := s.store[key]
	return val, ok
}

func (s *fakeViewCache) Set(_ context.Context, key string, val []byte, _ []string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.store[key] = val
	return nil
}

func (s *fakeViewCache) Invalidate(_ context.Context, tags ...string) error {
	s.invalidated = append(s.invalidated, tags...)
	return nil
}

func (s *fakeViewCache) hasInvalidated(tag string) bool {
	for _, got := range s.invalidated {
		if got == tag {
			return true
		}
	}
	return false
}

type fakePublisher struct {
	events []*kafka.NotificationEvent
	err    error
}

func (s *fakePublisher) PublishNotification(_ context.Context, event *kafka.NotificationEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

type fakePostRepo struct {
	posts        map[uint64]*model.Post
	repostCounts map[uint64]int64
	nextID       uint64
	deleteRows   int64
	fetchCalls   int
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	s := &fakePostRepo{
		posts:        make(map[uint64]*model.Post),
		repostCounts: make(map[uint64]int64),
		nextID:       1000,
	}
	for _, post := range posts {
		s.posts[post.ID] = post
	}
	return s
}

func (s *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	s.nextID++
	post.ID = s.nextID
	s.posts[post.ID] = post
	return nil
}

func (s *fakePostRepo) DeletePost(_ context.Context, postID, userID uint64) (int64, error) {
	post, ok := s.posts[postID]
	if !ok || post.UserID != userID {
		return 0, nil
	}
	delete(s.posts, postID)
	return 1, nil
}

func (s *fakePostRepo) GetPostByID(_ context.Context, postID uint64) (*model.Post, error) {
	return s.posts[postID], nil
}

func (s *fakePostRepo) GetPostsByIDs(_ context.Context, postIDs []uint64) ([]*model.Post, error) {
	var result []*model.Post
	for _, id := range postIDs {
		if post, ok := s.posts[id]; ok {
			result = append(result, post)
		}
	}
	return result, nil
}

func (s *fakePostRepo) GetLatestPosts(_ context.Context, limit int) ([]*model.Post, error) {
	s.fetchCalls++
	return s.sorted(limit, func(*model.Post) bool { return true }), nil
}

func (s *fakePostRepo) GetPostsByUserID(_ context.Context, userID uint64, limit int) ([]*model.Post, error) {
	s.fetchCalls++
	return s.sorted(limit, func(p *model.Post) bool { return p.UserID == userID }), nil
}

func (s *fakePostRepo) GetPostsByUserIDs(_ context.Context, userIDs []uint64, limit int) ([]*model.Post, error) {
	s.fetchCalls++
	idSet := make(map[uint64]struct{}, len(userIDs))
	for _, id := range userIDs {
		idSet[id] = struct{}{}
	}
	return s.sorted(limit, func(p *model.Post) bool {
		_, ok := idSet[p.UserID]
		return ok
	}), nil
}

func (s *fakePostRepo) GetRepostCountsByPostIDs(_ context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64)
	for _, id := range postIDs {
		if c, ok := s.repostCounts[id]; ok {
			counts[id] = c
		}
	}
	return counts, nil
}

func (s *fakePostRepo) sorted(limit int, keep func(*model.Post) bool) []*model.Post {
	var result []*model.Post
	for _, post := range s.posts {
		if keep(post) {
			result = append(result, post)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

type fakePostActionRepo struct {
	likeCounts    map[uint64]int64
	commentCounts map[uint64]int64
	likedIDs      []uint64
	likedCalls    int
	likes         []*model.Like
	comments      []*model.Comment
	createLikeErr error
	deletedLikes  [][2]uint64
}

func newFakePostActionRepo() *fakePostActionRepo {
	return &fakePostActionRepo{
		likeCounts:    make(map[uint64]int64),
		commentCounts: make(map[uint64]int64),
	}
}

func (s *fakePostActionRepo) CreateLike(_ context.Context, like *model.Like) error {
	if s.createLikeErr != nil {
		return s.createLikeErr
	}
	s.likes = append(s.likes, like)
	return nil
}

func (s *fakePostActionRepo) DeleteLike(_ context.Context, userID, postID uint64) error {
	s.deletedLikes = append(s.deletedLikes, [2]uint64{userID, postID})
	return nil
}

func (s *fakePostActionRepo) GetLikeCountsByPostIDs(_ context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return pickCounts(s.likeCounts, postIDs), nil
}

func (s *fakePostActionRepo) GetLikedPostIDs(_ context.Context, _ uint64, _ []uint64) ([]uint64, error) {
	s.likedCalls++
	return s.likedIDs, nil
}

func (s *fakePostActionRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.ID = uint64(len(s.comments) + 1)
	s.comments = append(s.comments, comment)
	return nil
}

func (s *fakePostActionRepo) GetCommentsByPostID(_ context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var result []*model.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func (s *fakePostActionRepo) GetCommentCountsByPostIDs(_ context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return pickCounts(s.commentCounts, postIDs), nil
}

func (s *fakePostActionRepo) DeleteOrphanLikes(_ context.Context) (int64, error) {
	return 0, nil
}

func (s *fakePostActionRepo) DeleteOrphanComments(_ context.Context) (int64, error) {
	return 0, nil
}

func pickCounts(src map[uint64]int64, ids []uint64) map[uint64]int64 {
	counts := make(map[uint64]int64)
	for _, id := range ids {
		if c, ok := src[id]; ok {
			counts[id] = c
		}
	}
	return counts
}

type fakeProfileRepo struct {
	profiles map[uint64]*model.Profile
	updates  map[uint64]map[string]interface{}
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	s := &fakeProfileRepo{
		profiles: make(map[uint64]*model.Profile),
		updates:  make(map[uint64]map[string]interface{}),
	}
	for _, profile := range profiles {
		s.profiles[profile.UserID] = profile
	}
	return s
}

func (s *fakeProfileRepo) GetByUserID(_ context.Context, userID uint64) (*model.Profile, error) {
	return s.profiles[userID], nil
}

func (s *fakeProfileRepo) GetByUsername(_ context.Context, username string) (*model.Profile, error) {
	for _, profile := range s.profiles {
		if profile.Username == username {
			return profile, nil
		}
	}
	return nil, nil
}

func (s *fakeProfileRepo) GetByUserIDs(_ context.Context, userIDs []uint64) ([]*model.Profile, error) {
	var result []*model.Profile
	for _, id := range userIDs {
		if profile, ok := s.profiles[id]; ok {
			result = append(result, profile)
		}
	}
	return result, nil
}

func (s *fakeProfileRepo) UpdateProfile(_ context.Context, userID uint64, updates map[string]interface{}) error {
	s.updates[userID] = updates
	return nil
}

func (s *fakeProfileRepo) UpdateAvatar(_ context.Context, userID uint64, avatarURL string) error {
	if profile, ok := s.profiles[userID]; ok {
		profile.AvatarURL = avatarURL
	}
	return nil
}

func (s *fakeProfileRepo) ListProfiles(_ context.Context, limit, offset int) ([]*model.Profile, error) {
	var result []*model.Profile
	for _, profile := range s.profiles {
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

type fakeFollowRepo struct {
	follows        map[[2]uint64]*model.Follow
	createErr      error
	followerCount  int64
	followingCount int64
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[[2]uint64]*model.Follow)}
}

func (s *fakeFollowRepo) CreateFollow(_ context.Context, follow *model.Follow) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.follows[[2]uint64{follow.FollowerID, follow.FollowingID}] = follow
	return nil
}

func (s *fakeFollowRepo) DeleteFollow(_ context.Context, followerID, followingID uint64) error {
	delete(s.follows, [2]uint64{followerID, followingID})
	return nil
}

func (s *fakeFollowRepo) GetFollow(_ context.Context, followerID, followingID uint64) (*model.Follow, error) {
	return s.follows[[2]uint64{followerID, followingID}], nil
}

func (s *fakeFollowRepo) GetFollowingIDs(_ context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	for key := range s.follows {
		if key[0] == followerID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (s *fakeFollowRepo) GetFollowers(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var result []*model.Follow
	for key, follow := range s.follows {
		if key[1] == userID {
			result = append(result, follow)
		}
	}
	return result, nil
}

func (s *fakeFollowRepo) GetFollowing(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var result []*model.Follow
	for key, follow := range s.follows {
		if key[0] == userID {
			result = append(result, follow)
		}
	}
	return result, nil
}

func (s *fakeFollowRepo) GetFollowerCount(_ context.Context, userID uint64) (int64, error) {
	return s.followerCount, nil
}

func (s *fakeFollowRepo) GetFollowingCount(_ context.Context, userID uint64) (int64, error) {
	return s.followingCount, nil
}

type fakeReportRepo struct {
	reports map[uint64]*model.Report
	created []*model.Report
}

func newFakeReportRepo(reports ...*model.Report) *fakeReportRepo {
	s := &fakeReportRepo{reports: make(map[uint64]*model.Report)}
	for _, report := range reports {
		s.reports[report.ID] = report
	}
	return s
}

func (s *fakeReportRepo) Create(_ context.Context, report *model.Report) error {
	report.ID = uint64(len(s.reports) + 1)
	s.reports[report.ID] = report
	s.created = append(s.created, report)
	return nil
}

func (s *fakeReportRepo) GetByID(_ context.Context, reportID uint64) (*model.Report, error) {
	return s.reports[reportID], nil
}

func (s *fakeReportRepo) List(_ context.Context, status string, limit, offset int) ([]*model.Report, error) {
	var result []*model.Report
	for _, report := range s.reports {
		if status == "" || report.Status == status {
			result = append(result, report)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CloseReport 模拟条件更新：仅 pending 行受影响
func (s *fakeReportRepo) CloseReport(_ context.Context, reportID uint64, status string, reviewerID uint64, reviewedAt time.Time) (int64, error) {
	report, ok := s.reports[reportID]
	if !ok || report.Status != model.ReportStatusPending {
		return 0, nil
	}
	report.Status = status
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &reviewedAt
	return 1, nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
	unread        int64
	markedRead    []uint64
}

func (s *fakeNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *fakeNotificationRepo) ListByUserID(_ context.Context, userID uint64, limit, offset int) ([]*model.Notification, error) {
	var result []*model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	return s.unread, nil
}

func (s *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint64) error {
	s.markedRead = append(s.markedRead, userID)
	return nil
}

func (s *fakeNotificationRepo) DeleteOrphaned(_ context.Context) (int64, error) {
	return 0, nil
}
