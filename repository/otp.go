package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Put(ctx context.Context, rec *domain.OtpRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// FindLatestActive returns the newest record for the pair. Duplicates can
// exist briefly during concurrent request/resend races; newest wins.
func (r *otpRepository) FindLatestActive(ctx context.Context, contact, purpose string) (*domain.OtpRecord, error) {
	var rec domain.OtpRecord
	err := r.db.WithContext(ctx).
		Where("contact = ? AND purpose = ?", contact, purpose).
		Order("id DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *otpRepository) Save(ctx context.Context, rec *domain.OtpRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.OtpRecord{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *otpRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.OtpRecord{}, "id = ?", id).Error
}

func (r *otpRepository) DeleteAllFor(ctx context.Context, contact, purpose string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.OtpRecord{}, "contact = ? AND purpose = ?", contact, purpose).Error
}

// DeleteExpired reclaims dead records. Verification never relies on this;
// expiry is always checked against ExpiresAt at confirmation time.
func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.OtpRecord{}, "expires_at < ?", time.Now())
	return res.RowsAffected, res.Error
}
