package handler

import (
	"strconv"

	"fluxo/internal/api/dto"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/response"
	"fluxo/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reportSvc service.ReportService
	userSvc   service.UserService
}

func NewAdminHandler(reportSvc service.ReportService, userSvc service.UserService) *AdminHandler {
	return &AdminHandler{
		reportSvc: reportSvc,
		userSvc:   userSvc,
	}
}

// ListReports 审核队列，status 为空表示全部
func (s *AdminHandler) ListReports(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := consts.AdminUserListLimit
	reports, err := s.reportSvc.ListReports(c.Request.Context(), status, limit, (page-1)*limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reports)
}

// CloseReport 工单流转，只接受 resolved / dismissed
func (s *AdminHandler) CloseReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("report_id"), 10, 64)
	if err != nil || reportID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	reviewerID := c.GetUint64("user_id")
	var req dto.ReportStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.reportSvc.CloseReport(c.Request.Context(), reportID, reviewerID, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := consts.AdminUserListLimit
	users, err := s.userSvc.ListUsers(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}
