package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

// OTPConfig tunes the one-time-password workflow. Defaults come from the
// configuration surface; zero values fall back here.
type OTPConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
}

func (c OTPConfig) withDefaults() OTPConfig {
	if c.Length == 0 {
		c.Length = 6
	}
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	return c
}

type authService struct {
	userRepo domain.UserRepository
	otpRepo  domain.OTPRepository
	mailer   domain.Mailer
	hasher   domain.Hasher
	tokens   *utils.JWTManager
	otp      OTPConfig
}

func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OTPRepository,
	mailer domain.Mailer,
	hasher domain.Hasher,
	tokens *utils.JWTManager,
	otp OTPConfig,
) domain.AuthUseCase {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mailer:   mailer,
		hasher:   hasher,
		tokens:   tokens,
		otp:      otp.withDefaults(),
	}
}

// Register starts the registration workflow: it stores the pending account
// inside a fresh OTP record and mails the plaintext code. Any prior
// register record for the email is superseded.
func (s *authService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return domain.ErrInvalidInput
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(domain.RegisterPayload{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return err
	}

	code, rec, err := s.newOTPRecord(email, domain.OTPPurposeRegister, payload)
	if err != nil {
		return err
	}

	if err := s.otpRepo.DeleteAllFor(ctx, email, domain.OTPPurposeRegister); err != nil {
		return err
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return err
	}

	body := fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, int(s.otp.TTL.Minutes()))
	if err := s.mailer.Send(email, "Your Registration OTP", body); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send registration otp")
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return nil
}

// VerifyRegisterOTP confirms the code and creates the account carried in
// the record's payload. The record is consumed on first successful use.
func (s *authService) VerifyRegisterOTP(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}

	rec, err := s.checkOTP(ctx, email, domain.OTPPurposeRegister, code)
	if err != nil {
		return nil, err
	}

	var payload domain.RegisterPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode register payload: %w", err)
	}

	// The email may have been claimed between request and confirmation.
	// Re-check here; the unique constraint is still the final arbiter.
	if _, err := s.userRepo.GetUserByEmail(ctx, payload.Email); err == nil {
		_ = s.otpRepo.Delete(ctx, rec.ID)
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user := &domain.User{
		Name:          payload.Name,
		Email:         payload.Email,
		Password:      payload.PasswordHash,
		Role:          domain.RoleCitizen,
		EmailVerified: true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.otpRepo.Delete(ctx, rec.ID); err != nil {
		log.Warn().Err(err).Uint("otp_id", rec.ID).Msg("failed to delete consumed otp record")
	}

	token, err := s.tokens.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", user.Email).Msg("user registered")
	return &domain.AuthResult{User: user, Token: token}, nil
}

// ResendRegisterOTP re-arms the pending registration in place: new code,
// new expiry, attempts back to zero. The stored payload is untouched.
func (s *authService) ResendRegisterOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidInput
	}

	rec, err := s.otpRepo.FindLatestActive(ctx, email, domain.OTPPurposeRegister)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNoPendingRequest
		}
		return err
	}

	code, err := utils.GenerateOTP(s.otp.Length)
	if err != nil {
		return err
	}
	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return err
	}

	rec.CodeHash = codeHash
	rec.ExpiresAt = time.Now().Add(s.otp.TTL)
	rec.Attempts = 0
	if err := s.otpRepo.Save(ctx, rec); err != nil {
		return err
	}

	if err := s.mailer.Send(email, "Your OTP (Resent)", fmt.Sprintf("Your OTP is %s.", code)); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to resend otp")
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user, Token: token}, nil
}

// ForgotPassword issues a reset OTP. The response is indistinguishable for
// unknown emails: OTP creation is silently skipped so account existence is
// never leaked.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	payload, err := json.Marshal(domain.ResetPayload{UserUUID: user.UUID})
	if err != nil {
		return err
	}

	code, rec, err := s.newOTPRecord(email, domain.OTPPurposeReset, payload)
	if err != nil {
		return err
	}

	if err := s.otpRepo.DeleteAllFor(ctx, email, domain.OTPPurposeReset); err != nil {
		return err
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset OTP is %s. It expires in %d minutes.", code, int(s.otp.TTL.Minutes()))
	if err := s.mailer.Send(email, "Password Reset OTP", body); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send reset otp")
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// ResetPassword confirms the reset code and overwrites the password hash
// of the user referenced by the record payload.
func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return nil, domain.ErrInvalidInput
	}

	rec, err := s.checkOTP(ctx, email, domain.OTPPurposeReset, code)
	if err != nil {
		return nil, err
	}

	var payload domain.ResetPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode reset payload: %w", err)
	}

	user, err := s.userRepo.GetUserByUUID(ctx, payload.UserUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.otpRepo.Delete(ctx, rec.ID)
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	user.Password = hash
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.otpRepo.Delete(ctx, rec.ID); err != nil {
		log.Warn().Err(err).Uint("otp_id", rec.ID).Msg("failed to delete consumed otp record")
	}

	token, err := s.tokens.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", user.Email).Msg("password reset")
	return &domain.AuthResult{User: user, Token: token}, nil
}

// newOTPRecord generates a fresh code and wraps its hash into a record.
// Returns the plaintext code for delivery; only the hash is stored.
func (s *authService) newOTPRecord(contact, purpose string, payload []byte) (string, *domain.OtpRecord, error) {
	code, err := utils.GenerateOTP(s.otp.Length)
	if err != nil {
		return "", nil, err
	}
	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return "", nil, err
	}
	return code, &domain.OtpRecord{
		Contact:   contact,
		Purpose:   purpose,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(s.otp.TTL),
		Payload:   payload,
	}, nil
}

// checkOTP runs the shared verification sequence. Attempt exhaustion and
// expiry are checked before the hash comparison so a capped or stale
// record never reveals whether a guess was right. A failed comparison
// increments the attempt counter durably even though the call fails.
func (s *authService) checkOTP(ctx context.Context, contact, purpose, code string) (*domain.OtpRecord, error) {
	rec, err := s.otpRepo.FindLatestActive(ctx, contact, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoPendingRequest
		}
		return nil, err
	}

	if rec.Attempts >= s.otp.MaxAttempts {
		return nil, domain.ErrTooManyAttempts
	}
	if rec.Expired(time.Now()) {
		return nil, domain.ErrCodeExpired
	}

	if err := s.hasher.Compare(rec.CodeHash, code); err != nil {
		if incErr := s.otpRepo.IncrementAttempts(ctx, rec.ID); incErr != nil {
			return nil, incErr
		}
		return nil, domain.ErrInvalidCode
	}

	return rec, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
