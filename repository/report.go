package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) domain.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetReportByUUID(ctx context.Context, uuid string) (*domain.Report, error) {
	var report domain.Report
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		First(&report, "uuid = ?", uuid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetReportsByUser(ctx context.Context, userUUID string) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.WithContext(ctx).
		Where("created_by_uuid = ?", userUUID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetAllReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	q := r.db.WithContext(ctx).Preload("CreatedBy")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	var reports []domain.Report
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) UpdateReport(ctx context.Context, report *domain.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) DeleteReport(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Delete(&domain.Report{}, "uuid = ?", uuid).Error
}
