package cache

import (
	"context"
	"strconv"
	"time"
)

// DefaultTTL 视图新鲜度窗口
const DefaultTTL = 60 * time.Second

// ViewCache 带依赖标签的视图缓存。
// 一个缓存条目在写入时登记它依赖的标签，变更方按标签精确失效，
// 不需要知道具体有哪些视图缓存过。
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, tags []string) error
	Invalidate(ctx context.Context, tags ...string) error
}

// TagAllPosts 全局帖子范围（探索流）
const TagAllPosts = "posts"

func TagPost(postID uint64) string {
	return "post:" + strconv.FormatUint(postID, 10)
}

func TagAuthor(userID uint64) string {
	return "author:" + strconv.FormatUint(userID, 10)
}

func TagFollows(userID uint64) string {
	return "follows:" + strconv.FormatUint(userID, 10)
}

func TagProfile(userID uint64) string {
	return "profile:" + strconv.FormatUint(userID, 10)
}

func TagNotifications(userID uint64) string {
	return "notifications:" + strconv.FormatUint(userID, 10)
}
