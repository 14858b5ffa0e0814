package repository

import (
	"context"
	"errors"
	"time"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type ReportRepo interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, reportID uint64) (*model.Report, error)
	List(ctx context.Context, status string, limit, offset int) ([]*model.Report, error)
	CloseReport(ctx context.Context, reportID uint64, status string, reviewerID uint64, reviewedAt time.Time) (int64, error)
}

type ReportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &ReportRepoImpl{db}
}

func (s *ReportRepoImpl) Create(ctx context.Context, report *model.Report) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *ReportRepoImpl) GetByID(ctx context.Context, reportID uint64) (*model.Report, error) {
	var report model.Report
	err := s.db.WithContext(ctx).
		Where("id = ?", reportID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (s *ReportRepoImpl) List(ctx context.Context, status string, limit, offset int) ([]*model.Report, error) {
	query := s.db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []*model.Report
	err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, err
}

// CloseReport 只允许从 pending 流转，条件更新保证已关单永不回退。
// 返回受影响行数，0 表示工单不存在或已关闭。
func (s *ReportRepoImpl) CloseReport(ctx context.Context, reportID uint64, status string, reviewerID uint64, reviewedAt time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ? AND status = ?", reportID, model.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		})
	return res.RowsAffected, res.Error
}
