package handler

import (
	"fluxo/internal/api/dto"
	"fluxo/internal/pkg/response"
	"fluxo/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileSvc: profileSvc,
	}
}

// GetProfile 按用户名查个人主页，匿名可访问
func (s *ProfileHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")
	view, err := s.profileSvc.GetProfileByUsername(c.Request.Context(), viewerID, username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

func (s *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.ProfileUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.profileSvc.UpdateProfile(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetUint64("user_id")
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer file.Close()

	avatarURL, err := s.profileSvc.UploadAvatar(c.Request.Context(), userID, file, fileHeader.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"avatar_url": avatarURL})
}
