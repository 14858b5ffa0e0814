package handler

import (
	"strconv"

	"fluxo/internal/api/dto"
	"fluxo/internal/pkg/response"
	"fluxo/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultFollowPageSize = 50

type UserFollowHandler struct {
	followSvc service.UserFollowService
}

func NewUserFollowHandler(followSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{
		followSvc: followSvc,
	}
}

// FollowUser 关注/取消关注
func (s *UserFollowHandler) FollowUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	var req dto.PostActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if req.Action == 1 {
		err = s.followSvc.Follow(c.Request.Context(), userID, targetID)
	} else {
		err = s.followSvc.Unfollow(c.Request.Context(), userID, targetID)
	}

	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) GetFollowers(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := pageParams(c)
	cards, err := s.followSvc.GetFollowers(c.Request.Context(), targetID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cards)
}

func (s *UserFollowHandler) GetFollowing(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := pageParams(c)
	cards, err := s.followSvc.GetFollowing(c.Request.Context(), targetID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cards)
}

func pageParams(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return defaultFollowPageSize, (page - 1) * defaultFollowPageSize
}
