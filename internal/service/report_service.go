package service

import (
	"context"
	"time"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"
	"fluxo/internal/repository"
)

const reportListLimit = 100
const snippetMaxLen = 80

type ReportService interface {
	ListReports(ctx context.Context, status string, limit, offset int) ([]*dto.ReportDTO, error)
	CloseReport(ctx context.Context, reportID, reviewerID uint64, status string) error
}

type reportServiceImpl struct {
	reportRepo  repository.ReportRepo
	postRepo    repository.PostRepo
	profileRepo repository.ProfileRepo
}

func NewReportService(reportRepo repository.ReportRepo, postRepo repository.PostRepo, profileRepo repository.ProfileRepo) ReportService {
	return &reportServiceImpl{
		reportRepo:  reportRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
	}
}

// ListReports 审核队列，带举报人资料与被举报帖摘要。被举报帖已删除时摘要为空
func (s *reportServiceImpl) ListReports(ctx context.Context, status string, limit, offset int) ([]*dto.ReportDTO, error) {
	if limit <= 0 || limit > reportListLimit {
		limit = reportListLimit
	}
	reports, err := s.reportRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}

	reporterIDs := make([]uint64, 0, len(reports))
	postIDs := make([]uint64, 0, len(reports))
	seenUser := make(map[uint64]struct{}, len(reports))
	seenPost := make(map[uint64]struct{}, len(reports))
	for _, report := range reports {
		if _, ok := seenUser[report.ReporterID]; !ok {
			seenUser[report.ReporterID] = struct{}{}
			reporterIDs = append(reporterIDs, report.ReporterID)
		}
		if report.ReportedPostID != nil {
			if _, ok := seenPost[*report.ReportedPostID]; !ok {
				seenPost[*report.ReportedPostID] = struct{}{}
				postIDs = append(postIDs, *report.ReportedPostID)
			}
		}
	}

	profiles, err := s.profileRepo.GetByUserIDs(ctx, reporterIDs)
	if err != nil {
		return nil, err
	}
	profileMap := buildProfileMap(profiles)

	posts, err := s.postRepo.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	snippetMap := make(map[uint64]string, len(posts))
	for _, post := range posts {
		snippetMap[post.ID] = snippet(post.Content)
	}

	list := make([]*dto.ReportDTO, 0, len(reports))
	for _, report := range reports {
		item := &dto.ReportDTO{
			ID:             report.ID,
			Reporter:       toProfileCard(profileMap[report.ReporterID]),
			ReportedPostID: report.ReportedPostID,
			ReportedUserID: report.ReportedUserID,
			Reason:         report.Reason,
			Status:         report.Status,
			ReviewedBy:     report.ReviewedBy,
			CreatedAt:      formatTime(report.CreatedAt),
		}
		if report.ReportedPostID != nil {
			item.PostSnippet = snippetMap[*report.ReportedPostID]
		}
		if report.ReviewedAt != nil {
			reviewedAt := formatTime(*report.ReviewedAt)
			item.ReviewedAt = &reviewedAt
		}
		list = append(list, item)
	}
	return list, nil
}

// CloseReport 只接受 pending 态流转，已关闭工单报错而非覆盖
func (s *reportServiceImpl) CloseReport(ctx context.Context, reportID, reviewerID uint64, status string) error {
	if status != model.ReportStatusResolved && status != model.ReportStatusDismissed {
		return ErrParamInvalid
	}

	rows, err := s.reportRepo.CloseReport(ctx, reportID, status, reviewerID, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		report, err := s.reportRepo.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if report == nil {
			return ErrReportNotFound
		}
		return ErrReportClosed
	}
	return nil
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetMaxLen {
		return content
	}
	return string(runes[:snippetMaxLen]) + "..."
}
