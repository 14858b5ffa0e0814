package handler

import (
	"strconv"

	"fluxo/internal/api/config"
	"fluxo/internal/api/dto"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/minio"
	"fluxo/internal/pkg/response"
	"fluxo/internal/pkg/util"
	"fluxo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postSvc service.PostService
	feedSvc service.FeedService
}

func NewPostHandler(postSvc service.PostService, feedSvc service.FeedService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
		feedSvc: feedSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	postID, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"id": postID})
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	if err := s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) GetPostDetail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")
	view, err := s.feedSvc.GetPostDetail(c.Request.Context(), viewerID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// GetHomeFeed 关注时间线，需登录
func (s *PostHandler) GetHomeFeed(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	views, err := s.feedSvc.GetHomeFeed(c.Request.Context(), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// GetExploreFeed 全站最新，匿名可访问
func (s *PostHandler) GetExploreFeed(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	views, err := s.feedSvc.GetExploreFeed(c.Request.Context(), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// GetUserFeed 指定用户的帖子
func (s *PostHandler) GetUserFeed(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")
	views, err := s.feedSvc.GetUserFeed(c.Request.Context(), viewerID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// UploadPostImage 发帖配图先上传拿地址，再随帖子提交
func (s *PostHandler) UploadPostImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if fileHeader.Size > consts.PostImageMaxSize {
		response.Error(c, service.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer file.Close()

	contentType, err := util.GetSafeContentType(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !util.IsImageContentType(contentType) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	bucket := config.Cfg.MinIO.PostImageBucket
	objectName := uuid.NewString()
	if _, err := minio.UploadFile(c.Request.Context(), bucket, objectName, file, fileHeader.Size, contentType); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.PostImageDTO{ImageURL: minio.GetPublicURL(bucket, objectName)})
}
