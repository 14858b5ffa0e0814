package service

import (
	"context"
	"time"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/redis"
	"fluxo/internal/pkg/security"
	"fluxo/internal/repository"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) error
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo    repository.UserRepo
	profileRepo repository.ProfileRepo
	rolesRepo   repository.UserRolesRepo
}

func NewUserService(userRepo repository.UserRepo, profileRepo repository.ProfileRepo, rolesRepo repository.UserRolesRepo) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		rolesRepo:   rolesRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) error {
	if found, err := s.userRepo.GetUserByUsername(ctx, req.Username); err != nil {
		return err
	} else if found != nil {
		return ErrUserExist
	}
	if found, err := s.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		return err
	} else if found != nil {
		return ErrUserExist
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: passwordHash,
	}
	profile := &model.Profile{
		Username:    req.Username,
		DisplayName: displayName,
		AvatarURL:   consts.DefaultAvatarURL,
	}
	roles := []*model.UserRole{{RoleID: 1}}

	if err := s.userRepo.CreateUser(ctx, user, profile, &roles); err != nil {
		// 并发注册撞唯一索引也归为已存在
		if isDuplicateError(err) {
			return ErrUserExist
		}
		return err
	}
	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	if user.IsBan {
		return nil, ErrUserBan
	}

	roleNames, err := s.rolesRepo.GetRoleNamesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := security.GenerateToken(user.ID, roleNames)
	if err != nil {
		return nil, err
	}

	userDTO, err := s.GetUserInfo(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	userDTO.Roles = roleNames
	return &dto.LoginResultDTO{Token: token, User: userDTO}, nil
}

// Logout 把 token 签名拉黑，有效期对齐 token 生命周期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.Profile.DisplayName,
		Bio:         user.Profile.Bio,
		AvatarURL:   user.Profile.AvatarURL,
		IsVerified:  user.Profile.IsVerified,
		IsPremium:   user.Profile.IsPremium,
		CreatedAt:   formatTime(user.CreatedAt),
	}, nil
}

// ListUsers 管理端用户列表
func (s *UserServiceImpl) ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserDTO, error) {
	if limit <= 0 || limit > consts.AdminUserListLimit {
		limit = consts.AdminUserListLimit
	}
	profiles, err := s.profileRepo.ListProfiles(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.UserDTO, 0, len(profiles))
	for _, profile := range profiles {
		list = append(list, &dto.UserDTO{
			ID:          profile.UserID,
			Username:    profile.Username,
			DisplayName: profile.DisplayName,
			Bio:         profile.Bio,
			AvatarURL:   profile.AvatarURL,
			IsVerified:  profile.IsVerified,
			IsPremium:   profile.IsPremium,
			CreatedAt:   formatTime(profile.CreatedAt),
		})
	}
	return list, nil
}
