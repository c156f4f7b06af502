package domain

import (
	"context"
	"time"
)

const (
	OTPPurposeRegister = "register"
	OTPPurposeReset    = "reset"
)

// OtpRecord holds a single pending one-time code for a (contact, purpose)
// pair. Only the bcrypt hash of the code is ever stored.
type OtpRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Contact   string    `gorm:"index:idx_otp_contact_purpose;not null"`
	Purpose   string    `gorm:"index:idx_otp_contact_purpose;not null"`
	CodeHash  string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Attempts  int       `gorm:"not null;default:0"`
	Payload   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (r *OtpRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// RegisterPayload is the pending account carried by a "register" record
// until the code is confirmed.
type RegisterPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// ResetPayload references the user whose password a "reset" record targets.
type ResetPayload struct {
	UserUUID string `json:"user_uuid"`
}

// OTPRepository persists OTP records. FindLatestActive returns the most
// recently created record for the pair; expiry is the caller's check.
// DeleteExpired is background reclamation only, never a correctness
// mechanism.
type OTPRepository interface {
	Put(ctx context.Context, rec *OtpRecord) error
	FindLatestActive(ctx context.Context, contact, purpose string) (*OtpRecord, error)
	Save(ctx context.Context, rec *OtpRecord) error
	IncrementAttempts(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	DeleteAllFor(ctx context.Context, contact, purpose string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
