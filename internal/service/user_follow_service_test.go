package service

import (
	"context"
	"errors"
	"testing"

	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"

	"github.com/go-sql-driver/mysql"
)

func followFixture() (*fakeFollowRepo, *fakePublisher, *fakeViewCache, UserFollowService) {
	followRepo := newFakeFollowRepo()
	profileRepo := newFakeProfileRepo(
		&model.Profile{UserID: 1, Username: "alice", DisplayName: "Alice"},
		&model.Profile{UserID: 2, Username: "bob", DisplayName: "Bob"},
	)
	publisher := &fakePublisher{}
	viewCache := newFakeViewCache()
	svc := NewUserFollowService(followRepo, profileRepo, publisher, viewCache)
	return followRepo, publisher, viewCache, svc
}

func TestFollowPublishesNotification(t *testing.T) {
	followRepo, publisher, viewCache, svc := followFixture()

	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if followRepo.follows[[2]uint64{1, 2}] == nil {
		t.Fatal("Follow row not persisted")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != model.NotificationTypeFollow || event.ActorID != 1 || event.RecipientID != 2 {
		t.Errorf("Event mismatch: %+v", event)
	}
	if event.PostID != nil {
		t.Error("Follow event must not carry a post id")
	}
	for _, tag := range []string{cache.TagFollows(1), cache.TagProfile(1), cache.TagProfile(2)} {
		if !viewCache.hasInvalidated(tag) {
			t.Errorf("Expected tag %s invalidated", tag)
		}
	}
}

func TestFollowSelfRejected(t *testing.T) {
	_, publisher, _, svc := followFixture()

	err := svc.Follow(context.Background(), 1, 1)
	if !errors.Is(err, ErrUserFollowSelf) {
		t.Fatalf("Expected ErrUserFollowSelf, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Error("Self-follow must not publish an event")
	}
}

func TestFollowMissingUser(t *testing.T) {
	_, _, _, svc := followFixture()

	err := svc.Follow(context.Background(), 1, 999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestFollowDuplicate(t *testing.T) {
	followRepo, publisher, _, svc := followFixture()
	followRepo.createErr = &mysql.MySQLError{Number: 1062}

	err := svc.Follow(context.Background(), 1, 2)
	if !errors.Is(err, ErrUserFollowExist) {
		t.Fatalf("Expected ErrUserFollowExist, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Error("Duplicate follow must not publish an event")
	}
}

// 取消关注幂等
func TestUnfollowIdempotent(t *testing.T) {
	followRepo, _, viewCache, svc := followFixture()
	followRepo.follows[[2]uint64{1, 2}] = &model.Follow{FollowerID: 1, FollowingID: 2}

	if err := svc.Unfollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	if err := svc.Unfollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("Second unfollow failed: %v", err)
	}
	if followRepo.follows[[2]uint64{1, 2}] != nil {
		t.Error("Follow row still present")
	}
	if !viewCache.hasInvalidated(cache.TagFollows(1)) {
		t.Error("Expected follow tag invalidated")
	}
}

func TestGetFollowersSkipsMissingProfiles(t *testing.T) {
	followRepo, _, _, svc := followFixture()
	followRepo.follows[[2]uint64{1, 2}] = &model.Follow{FollowerID: 1, FollowingID: 2}
	followRepo.follows[[2]uint64{99, 2}] = &model.Follow{FollowerID: 99, FollowingID: 2}

	cards, err := svc.GetFollowers(context.Background(), 2, 50, 0)
	if err != nil {
		t.Fatalf("GetFollowers failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Username != "alice" {
		t.Errorf("Expected only alice, got %+v", cards)
	}
}
