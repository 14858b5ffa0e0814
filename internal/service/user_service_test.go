package service

import (
	"context"
	"errors"
	"testing"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/security"
)

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	s := &fakeUserRepo{users: make(map[uint64]*model.User), nextID: 100}
	for _, user := range users {
		s.users[user.ID] = user
	}
	return s
}

func (s *fakeUserRepo) CreateUser(_ context.Context, user *model.User, profile *model.Profile, _ *[]*model.UserRole) error {
	s.nextID++
	user.ID = s.nextID
	profile.UserID = user.ID
	user.Profile = *profile
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return s.users[id], nil
}

func (s *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

type fakeUserRolesRepo struct {
	roles []string
}

func (s *fakeUserRolesRepo) GetRoleNamesByUserID(_ context.Context, _ uint64) ([]string, error) {
	return s.roles, nil
}

func userFixture() (*fakeUserRepo, UserService) {
	security.Init("test-secret")
	hash, _ := security.HashPassword("password1")
	userRepo := newFakeUserRepo(&model.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: hash,
		Profile:  model.Profile{UserID: 1, Username: "alice", DisplayName: "Alice"},
	})
	svc := NewUserService(userRepo, newFakeProfileRepo(), &fakeUserRolesRepo{roles: []string{"USER"}})
	return userRepo, svc
}

func TestRegister(t *testing.T) {
	userRepo, svc := userFixture()

	req := &dto.RegisterDTO{Username: "bob", Email: "bob@example.com", Password: "secret123"}
	if err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, _ := userRepo.GetUserByUsername(context.Background(), "bob")
	if user == nil {
		t.Fatal("User not persisted")
	}
	if user.Password == "secret123" {
		t.Error("Password stored in plain text")
	}
	if err := security.CheckPasswordHash("secret123", user.Password); err != nil {
		t.Errorf("Stored hash does not verify: %v", err)
	}
	// 未填展示名时回落到用户名
	if user.Profile.DisplayName != "bob" {
		t.Errorf("Expected display name bob, got %s", user.Profile.DisplayName)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, svc := userFixture()

	req := &dto.RegisterDTO{Username: "alice", Email: "new@example.com", Password: "secret123"}
	err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrUserExist) {
		t.Fatalf("Expected ErrUserExist, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := userFixture()

	req := &dto.RegisterDTO{Username: "alice2", Email: "alice@example.com", Password: "secret123"}
	err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrUserExist) {
		t.Fatalf("Expected ErrUserExist, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	_, svc := userFixture()

	result, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("Expected a token")
	}
	claims, err := security.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("Issued token does not validate: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("Expected user id 1 in claims, got %d", claims.UserID)
	}
	if result.User == nil || result.User.Username != "alice" {
		t.Errorf("User payload mismatch: %+v", result.User)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc := userFixture()

	_, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("Expected ErrPasswordIncorrect, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	_, svc := userFixture()

	_, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "nobody", Password: "password1"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	userRepo, svc := userFixture()
	userRepo.users[1].IsBan = true

	_, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "password1"})
	if !errors.Is(err, ErrUserBan) {
		t.Fatalf("Expected ErrUserBan, got %v", err)
	}
}
