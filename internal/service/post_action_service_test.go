package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"

	"github.com/go-sql-driver/mysql"
)

func actionFixture() (*fakePostRepo, *fakePostActionRepo, *fakePublisher, *fakeViewCache, PostActionService) {
	postRepo := newFakePostRepo(
		&model.Post{ID: 1, UserID: 10, Content: "别人的帖子", CreatedAt: time.Now()},
		&model.Post{ID: 2, UserID: 20, Content: "自己的帖子", CreatedAt: time.Now()},
	)
	actionRepo := newFakePostActionRepo()
	profileRepo := newFakeProfileRepo(
		&model.Profile{UserID: 10, Username: "alice", DisplayName: "Alice"},
		&model.Profile{UserID: 20, Username: "bob", DisplayName: "Bob"},
	)
	publisher := &fakePublisher{}
	viewCache := newFakeViewCache()
	svc := NewPostActionService(actionRepo, postRepo, profileRepo, newFakeReportRepo(), publisher, viewCache)
	return postRepo, actionRepo, publisher, viewCache, svc
}

func TestLikePostPublishesNotification(t *testing.T) {
	_, actionRepo, publisher, viewCache, svc := actionFixture()

	if err := svc.LikePost(context.Background(), 20, 1); err != nil {
		t.Fatalf("LikePost failed: %v", err)
	}
	if len(actionRepo.likes) != 1 {
		t.Fatalf("Expected 1 like row, got %d", len(actionRepo.likes))
	}
	if len(publisher.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != model.NotificationTypeLike || event.ActorID != 20 || event.RecipientID != 10 {
		t.Errorf("Event mismatch: %+v", event)
	}
	if event.PostID == nil || *event.PostID != 1 {
		t.Errorf("Expected post_id 1, got %v", event.PostID)
	}
	if !viewCache.hasInvalidated(cache.TagPost(1)) {
		t.Error("Expected post tag invalidation after like")
	}
}

// 给自己的帖子点赞不产生通知
func TestLikeOwnPostSuppressesNotification(t *testing.T) {
	_, _, publisher, _, svc := actionFixture()

	if err := svc.LikePost(context.Background(), 20, 2); err != nil {
		t.Fatalf("LikePost failed: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Errorf("Expected no event for self-like, got %d", len(publisher.events))
	}
}

func TestLikePostDuplicate(t *testing.T) {
	_, actionRepo, publisher, _, svc := actionFixture()
	actionRepo.createLikeErr = &mysql.MySQLError{Number: 1062}

	err := svc.LikePost(context.Background(), 20, 1)
	if !errors.Is(err, ErrActionDuplicate) {
		t.Fatalf("Expected ErrActionDuplicate, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Error("Duplicate like must not publish an event")
	}
}

func TestLikeMissingPost(t *testing.T) {
	_, _, _, _, svc := actionFixture()

	err := svc.LikePost(context.Background(), 20, 999)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
}

// 重复取消点赞幂等成功
func TestCancelLikeIdempotent(t *testing.T) {
	_, actionRepo, _, _, svc := actionFixture()

	if err := svc.CancelLikePost(context.Background(), 20, 1); err != nil {
		t.Fatalf("CancelLikePost failed: %v", err)
	}
	if err := svc.CancelLikePost(context.Background(), 20, 1); err != nil {
		t.Fatalf("Second cancel failed: %v", err)
	}
	if len(actionRepo.deletedLikes) != 2 {
		t.Errorf("Expected 2 delete calls, got %d", len(actionRepo.deletedLikes))
	}
}

func TestCreateCommentPublishesNotification(t *testing.T) {
	_, actionRepo, publisher, viewCache, svc := actionFixture()

	req := &dto.CommentCreateDTO{PostID: 1, Content: "不错"}
	if err := svc.CreateComment(context.Background(), 20, req); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if len(actionRepo.comments) != 1 {
		t.Fatalf("Expected 1 comment row, got %d", len(actionRepo.comments))
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != model.NotificationTypeComment {
		t.Fatalf("Expected comment event, got %+v", publisher.events)
	}
	if !viewCache.hasInvalidated(cache.TagPost(1)) {
		t.Error("Expected post tag invalidation after comment")
	}
}

func TestCommentOwnPostSuppressesNotification(t *testing.T) {
	_, _, publisher, _, svc := actionFixture()

	req := &dto.CommentCreateDTO{PostID: 2, Content: "自评"}
	if err := svc.CreateComment(context.Background(), 20, req); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Errorf("Expected no event for self-comment, got %d", len(publisher.events))
	}
}

func TestGetCommentsWithAuthors(t *testing.T) {
	_, actionRepo, _, _, svc := actionFixture()
	actionRepo.comments = []*model.Comment{
		{ID: 1, PostID: 1, UserID: 20, Content: "第一条", CreatedAt: time.Now()},
		{ID: 2, PostID: 1, UserID: 99, Content: "作者已注销", CreatedAt: time.Now()},
	}

	comments, err := svc.GetCommentsByPostID(context.Background(), 1, 50, 0)
	if err != nil {
		t.Fatalf("GetCommentsByPostID failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}
	if comments[0].Author == nil || comments[0].Author.Username != "bob" {
		t.Errorf("Author mismatch: %+v", comments[0].Author)
	}
	if comments[1].Author != nil {
		t.Error("Expected nil author for missing profile")
	}
}

func TestGetCommentsMissingPost(t *testing.T) {
	_, _, _, _, svc := actionFixture()

	_, err := svc.GetCommentsByPostID(context.Background(), 999, 50, 0)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
}
