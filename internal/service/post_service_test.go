package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fluxo/internal/api/config"
	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/util"
)

func postFixture() (*fakePostRepo, *fakePublisher, *fakeViewCache, PostService) {
	postRepo := newFakePostRepo(
		&model.Post{ID: 1, UserID: 10, Content: "原帖", CreatedAt: time.Now()},
	)
	publisher := &fakePublisher{}
	viewCache := newFakeViewCache()
	svc := NewPostService(postRepo, publisher, viewCache)
	return postRepo, publisher, viewCache, svc
}

func TestCreatePost(t *testing.T) {
	postRepo, publisher, viewCache, svc := postFixture()

	postID, err := svc.CreatePost(context.Background(), 20, &dto.PostCreateDTO{Content: "新帖"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if postRepo.posts[postID] == nil {
		t.Fatal("Post not persisted")
	}
	if len(publisher.events) != 0 {
		t.Error("Plain post must not publish an event")
	}
	if !viewCache.hasInvalidated(cache.TagAuthor(20)) || !viewCache.hasInvalidated(cache.TagAllPosts) {
		t.Error("Expected author and global tags invalidated")
	}
}

func TestCreateRepostNotifiesOriginalAuthor(t *testing.T) {
	_, publisher, _, svc := postFixture()

	_, err := svc.CreatePost(context.Background(), 20, &dto.PostCreateDTO{Content: "转发", RepostOf: util.PtrUint64(1)})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != model.NotificationTypeRepost || event.RecipientID != 10 || event.ActorID != 20 {
		t.Errorf("Event mismatch: %+v", event)
	}
	if event.PostID == nil || *event.PostID != 1 {
		t.Errorf("Expected original post id 1, got %v", event.PostID)
	}
}

// 转自己的帖子不通知
func TestRepostOwnPostSuppressesNotification(t *testing.T) {
	_, publisher, _, svc := postFixture()

	_, err := svc.CreatePost(context.Background(), 10, &dto.PostCreateDTO{Content: "自转", RepostOf: util.PtrUint64(1)})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Errorf("Expected no event for self-repost, got %d", len(publisher.events))
	}
}

func TestRepostMissingOriginal(t *testing.T) {
	_, _, _, svc := postFixture()

	_, err := svc.CreatePost(context.Background(), 20, &dto.PostCreateDTO{Content: "转发", RepostOf: util.PtrUint64(999)})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
}

func TestDeletePostByOwner(t *testing.T) {
	postRepo, _, viewCache, svc := postFixture()

	if err := svc.DeletePost(context.Background(), 10, 1); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if postRepo.posts[1] != nil {
		t.Error("Post still present after delete")
	}
	if !viewCache.hasInvalidated(cache.TagPost(1)) {
		t.Error("Expected post tag invalidated after delete")
	}
}

func TestDeletePostNotOwned(t *testing.T) {
	_, _, _, svc := postFixture()

	err := svc.DeletePost(context.Background(), 20, 1)
	if !errors.Is(err, ErrPostNotOwned) {
		t.Fatalf("Expected ErrPostNotOwned, got %v", err)
	}
}

func TestDeletePostMissing(t *testing.T) {
	_, _, _, svc := postFixture()

	err := svc.DeletePost(context.Background(), 10, 999)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
}

// 带图的帖子照常删，图片对象清理失败只记日志
func TestDeletePostWithImageBestEffortCleanup(t *testing.T) {
	config.Cfg = &config.Config{
		MinIO: config.MinIOConfig{
			ExternalEndpoint: "media.fluxo.local",
			PostImageBucket:  "post-images",
		},
	}
	defer func() { config.Cfg = nil }()

	imageURL := "https://media.fluxo.local/post-images/img-1.jpg"
	postRepo := newFakePostRepo(
		&model.Post{
			ID:        1,
			UserID:    10,
			Content:   "带图",
			ImageURL:  &imageURL,
			CreatedAt: time.Now(),
		},
	)
	svc := NewPostService(postRepo, &fakePublisher{}, newFakeViewCache())

	if err := svc.DeletePost(context.Background(), 10, 1); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if postRepo.posts[1] != nil {
		t.Error("Post still present after delete")
	}
}
