package service

import (
	"context"
	log "log/slog"
	"mime/multipart"
	"strconv"

	"fluxo/internal/api/config"
	"fluxo/internal/api/dto"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/minio"
	"fluxo/internal/pkg/util"
	"fluxo/internal/repository"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type ProfileService interface {
	GetProfileByUsername(ctx context.Context, viewerID uint64, username string) (*dto.ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) error
	UploadAvatar(ctx context.Context, userID uint64, file multipart.File, size int64) (string, error)
}

type profileServiceImpl struct {
	profileRepo repository.ProfileRepo
	followRepo  repository.UserFollowRepo
	viewCache   cache.ViewCache
}

func NewProfileService(profileRepo repository.ProfileRepo, followRepo repository.UserFollowRepo, viewCache cache.ViewCache) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		followRepo:  followRepo,
		viewCache:   viewCache,
	}
}

// GetProfileByUsername 主页视图带关注数与关注关系，按浏览者维度缓存。
// 关注关系变化时两侧资料标签都会被打掉，缓存不会读到过期的 is_following
func (s *profileServiceImpl) GetProfileByUsername(ctx context.Context, viewerID uint64, username string) (*dto.ProfileDTO, error) {
	key := consts.ProfileViewKey + username + ":" + strconv.FormatUint(viewerID, 10)
	if raw, ok := s.viewCache.Get(ctx, key); ok {
		var view dto.ProfileDTO
		if err := json.Unmarshal(raw, &view); err == nil {
			return &view, nil
		}
	}

	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	followerCount, err := s.followRepo.GetFollowerCount(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.GetFollowingCount(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID > 0 && viewerID != profile.UserID {
		follow, err := s.followRepo.GetFollow(ctx, viewerID, profile.UserID)
		if err != nil {
			return nil, err
		}
		isFollowing = follow != nil
	}

	view := &dto.ProfileDTO{
		UserID:         profile.UserID,
		Username:       profile.Username,
		DisplayName:    profile.DisplayName,
		Bio:            profile.Bio,
		AvatarURL:      profile.AvatarURL,
		IsVerified:     profile.IsVerified,
		IsPremium:      profile.IsPremium,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
		CreatedAt:      formatTime(profile.CreatedAt),
	}

	if raw, err := json.Marshal(view); err == nil {
		if err := s.viewCache.Set(ctx, key, raw, []string{cache.TagProfile(profile.UserID)}); err != nil {
			log.WarnContext(ctx, "set view cache failed", "key", key, "err", err)
		}
	}
	return view, nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) error {
	updates := make(map[string]interface{}, 2)
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.profileRepo.UpdateProfile(ctx, userID, updates); err != nil {
		return err
	}
	s.invalidate(ctx, cache.TagProfile(userID))
	return nil
}

// UploadAvatar 头像统一裁成 512 边长的 JPEG 后入对象存储，库里存完整公网地址
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, userID uint64, file multipart.File, size int64) (string, error) {
	if size > consts.AvatarMaxSize {
		return "", ErrFileTooLarge
	}
	contentType, err := util.GetSafeContentType(file)
	if err != nil {
		return "", err
	}
	if !util.IsImageContentType(contentType) {
		return "", ErrFileNotSupported
	}

	normalized, err := util.NormalizeAvatar(file)
	if err != nil {
		return "", ErrFileNotSupported
	}

	bucket := config.Cfg.MinIO.AvatarBucket
	objectName := uuid.NewString() + ".jpg"
	if _, err := minio.UploadFile(ctx, bucket, objectName, normalized, int64(normalized.Len()), "image/jpeg"); err != nil {
		return "", err
	}

	avatarURL := minio.GetPublicURL(bucket, objectName)
	if err := s.profileRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return "", err
	}
	s.invalidate(ctx, cache.TagProfile(userID))
	return avatarURL, nil
}

func (s *profileServiceImpl) invalidate(ctx context.Context, tags ...string) {
	if err := s.viewCache.Invalidate(ctx, tags...); err != nil {
		log.WarnContext(ctx, "invalidate view cache failed", "tags", tags, "err", err)
	}
}
