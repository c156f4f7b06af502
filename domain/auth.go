package domain

import "context"

// AuthUseCase is the OTP-gated credential workflow: registration and
// password reset are two-step (request code, confirm code), login is a
// single password check. Confirmations issue a session token.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) error
	VerifyRegisterOTP(ctx context.Context, email, code string) (*AuthResult, error)
	ResendRegisterOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) (*AuthResult, error)
}

type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
