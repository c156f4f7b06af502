package domain

import (
	"context"
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusResolved = "Resolved"
)

type Report struct {
	UUID             string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"uuid"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `json:"description"`
	Category         string     `gorm:"index" json:"category"`
	AIClassification string     `json:"ai_classification,omitempty"`
	Address          string     `json:"address"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	PhotoURLs        []string   `gorm:"serializer:json" json:"photo_urls"`
	VideoURLs        []string   `gorm:"serializer:json" json:"video_urls"`
	Status           string     `gorm:"not null;default:Pending;index" json:"status"`
	CreatedByUUID    string     `gorm:"type:uuid;index" json:"created_by_uuid"`
	CreatedBy        *User      `gorm:"foreignKey:CreatedByUUID" json:"created_by,omitempty"`
	ApprovedByUUID   *string    `gorm:"type:uuid" json:"approved_by_uuid,omitempty"`
	ResolvedByUUID   *string    `gorm:"type:uuid" json:"resolved_by_uuid,omitempty"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// ReportFilter narrows admin report listings. Zero values mean no filter.
type ReportFilter struct {
	Status    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateReportInput struct {
	Title       string
	Description string
	Category    string
	Address     string
	PhotoURLs   []string
	VideoURLs   []string
	CreatedBy   string
}

// UpdateReportInput carries the citizen-editable fields; nil means
// leave unchanged.
type UpdateReportInput struct {
	Title       *string
	Description *string
	Category    *string
	Address     *string
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report *Report) error
	GetReportByUUID(ctx context.Context, uuid string) (*Report, error)
	GetReportsByUser(ctx context.Context, userUUID string) ([]Report, error)
	GetAllReports(ctx context.Context, filter ReportFilter) ([]Report, error)
	UpdateReport(ctx context.Context, report *Report) error
	DeleteReport(ctx context.Context, uuid string) error
}

type ReportUseCase interface {
	CreateReport(ctx context.Context, input CreateReportInput) (*Report, error)
	GetReportByUUID(ctx context.Context, uuid string) (*Report, error)
	GetReportsByUser(ctx context.Context, userUUID string) ([]Report, error)
	GetAllReports(ctx context.Context) ([]Report, error)
	UpdateReport(ctx context.Context, uuid, actorUUID string, input UpdateReportInput) (*Report, error)
	UpdateStatus(ctx context.Context, uuid, status, actorUUID string) (*Report, error)
	DeleteReport(ctx context.Context, uuid, actorUUID, actorRole string) error
}
