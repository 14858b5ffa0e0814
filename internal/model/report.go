package model

import "time"

const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

type Report struct {
	ID             uint64     `gorm:"primaryKey"`
	ReporterID     uint64     `gorm:"not null;index:idx_reporter_id" json:"reporterId"`
	ReportedPostID *uint64    `gorm:"index:idx_reported_post_id" json:"reportedPostId"`
	ReportedUserID *uint64    `json:"reportedUserId"`
	Reason         string     `gorm:"type:varchar(255);not null" json:"reason"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_status" json:"status"`
	ReviewedBy     *uint64    `json:"reviewedBy"`
	ReviewedAt     *time.Time `json:"reviewedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}
