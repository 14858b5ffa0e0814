package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fluxo/internal/model"
	"fluxo/internal/pkg/util"
)

func reportFixture() (*fakeReportRepo, ReportService) {
	reportRepo := newFakeReportRepo(
		&model.Report{ID: 1, ReporterID: 5, ReportedPostID: util.PtrUint64(1), Reason: "垃圾内容", Status: model.ReportStatusPending, CreatedAt: time.Now()},
		&model.Report{ID: 2, ReporterID: 5, ReportedPostID: util.PtrUint64(999), Reason: "帖子已被删", Status: model.ReportStatusPending, CreatedAt: time.Now()},
	)
	postRepo := newFakePostRepo(
		&model.Post{ID: 1, UserID: 10, Content: "被举报的帖子内容", CreatedAt: time.Now()},
	)
	profileRepo := newFakeProfileRepo(
		&model.Profile{UserID: 5, Username: "alice", DisplayName: "Alice"},
	)
	svc := NewReportService(reportRepo, postRepo, profileRepo)
	return reportRepo, svc
}

func TestListReports(t *testing.T) {
	_, svc := reportFixture()

	reports, err := svc.ListReports(context.Background(), model.ReportStatusPending, 100, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].Reporter == nil || reports[0].Reporter.Username != "alice" {
		t.Errorf("Reporter mismatch: %+v", reports[0].Reporter)
	}
	if reports[0].PostSnippet == "" {
		t.Error("Expected snippet for live post")
	}
	// 被举报帖已删除时摘要留空
	if reports[1].PostSnippet != "" {
		t.Errorf("Expected empty snippet for deleted post, got %q", reports[1].PostSnippet)
	}
}

func TestCloseReportLifecycle(t *testing.T) {
	reportRepo, svc := reportFixture()
	ctx := context.Background()

	if err := svc.CloseReport(ctx, 1, 7, model.ReportStatusResolved); err != nil {
		t.Fatalf("CloseReport failed: %v", err)
	}
	report := reportRepo.reports[1]
	if report.Status != model.ReportStatusResolved {
		t.Errorf("Expected resolved, got %s", report.Status)
	}
	if report.ReviewedBy == nil || *report.ReviewedBy != 7 {
		t.Errorf("Reviewer mismatch: %v", report.ReviewedBy)
	}
	if report.ReviewedAt == nil {
		t.Error("Expected reviewed_at to be set")
	}

	// 已关闭的工单不允许再流转
	err := svc.CloseReport(ctx, 1, 8, model.ReportStatusDismissed)
	if !errors.Is(err, ErrReportClosed) {
		t.Fatalf("Expected ErrReportClosed, got %v", err)
	}
	if reportRepo.reports[1].Status != model.ReportStatusResolved {
		t.Error("Closed report must keep its terminal status")
	}
}

func TestCloseReportMissing(t *testing.T) {
	_, svc := reportFixture()

	err := svc.CloseReport(context.Background(), 999, 7, model.ReportStatusDismissed)
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("Expected ErrReportNotFound, got %v", err)
	}
}

func TestCloseReportInvalidStatus(t *testing.T) {
	_, svc := reportFixture()

	err := svc.CloseReport(context.Background(), 1, 7, "reopened")
	if !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("Expected ErrParamInvalid, got %v", err)
	}
}
