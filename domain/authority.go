package domain

import (
	"context"
	"time"
)

// AuthorityMapping routes an issue category to the civic authority that
// should be notified when a report in that category is approved.
type AuthorityMapping struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Category       string    `gorm:"uniqueIndex;not null" json:"category"`
	AuthorityEmail string    `gorm:"not null" json:"authority_email"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AuthorityRepository interface {
	CreateMapping(ctx context.Context, mapping *AuthorityMapping) error
	GetMappingByCategory(ctx context.Context, category string) (*AuthorityMapping, error)
	GetAllMappings(ctx context.Context) ([]AuthorityMapping, error)
	DeleteMapping(ctx context.Context, id uint) error
}

type AdminUseCase interface {
	GetReports(ctx context.Context, filter ReportFilter) ([]Report, error)
	ApproveReport(ctx context.Context, reportUUID, adminUUID string) (*Report, error)
	RejectReport(ctx context.Context, reportUUID, adminUUID string) (*Report, error)
	CreateMapping(ctx context.Context, category, authorityEmail string) (*AuthorityMapping, error)
	GetMappings(ctx context.Context) ([]AuthorityMapping, error)
	DeleteMapping(ctx context.Context, id uint) error
	GetUsers(ctx context.Context, role string) ([]User, error)
}
