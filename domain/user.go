package domain

import (
	"context"
	"time"
)

const (
	RoleCitizen    = "citizen"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	UUID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"uuid"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"not null;default:citizen" json:"role"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUUID(ctx context.Context, uuid string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	GetAllUsers(ctx context.Context, role string) ([]User, error)
}

type UserUseCase interface {
	ProvisionUser(ctx context.Context, name, email, password, role string) (*User, error)
	GetUserByUUID(ctx context.Context, uuid string) (*User, error)
	UpdateProfile(ctx context.Context, uuid, name string, phone *string) (*User, error)
}
