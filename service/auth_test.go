package service

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

var otpPattern = regexp.MustCompile(`\d{6}`)

type authFixture struct {
	users  *fakeUserRepo
	otps   *fakeOTPRepo
	mailer *fakeMailer
	svc    domain.AuthUseCase
	tokens *utils.JWTManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	mailer := &fakeMailer{}
	tokens := utils.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewAuthService(users, otps, mailer, utils.NewBcryptHasher(bcrypt.MinCost), tokens, OTPConfig{})
	return &authFixture{users: users, otps: otps, mailer: mailer, svc: svc, tokens: tokens}
}

// lastCode pulls the plaintext code out of the most recent mail body.
func (f *authFixture) lastCode(t *testing.T) string {
	t.Helper()
	code := otpPattern.FindString(f.mailer.last().Body)
	require.NotEmpty(t, code, "no code found in mail body %q", f.mailer.last().Body)
	return code
}

func TestRegisterAndVerify(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha Rao", "Asha@Example.com ", "hunter22"))

	// No account yet: the pending registration lives in the OTP record.
	_, err := f.users.GetUserByEmail(ctx, "asha@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, 1, f.otps.count())

	mail := f.mailer.last()
	assert.Equal(t, "asha@example.com", mail.To)
	assert.Equal(t, "Your Registration OTP", mail.Subject)

	res, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", f.lastCode(t))
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "Asha Rao", res.User.Name)
	assert.Equal(t, domain.RoleCitizen, res.User.Role)
	assert.True(t, res.User.EmailVerified)
	assert.NotEmpty(t, res.User.UUID)

	uuid, role, err := f.tokens.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.UUID, uuid)
	assert.Equal(t, domain.RoleCitizen, role)

	// Record consumed: nothing pending remains.
	assert.Equal(t, 0, f.otps.count())
}

func TestVerifyWithoutPendingRequest(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.VerifyRegisterOTP(context.Background(), "ghost@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

func TestVerifyReplayAfterSuccess(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	code := f.lastCode(t)

	_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", code)
	require.NoError(t, err)

	_, err = f.svc.VerifyRegisterOTP(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

func TestVerifyWrongCodeIncrementsAttempts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))

	rec, err := f.otps.FindLatestActive(ctx, "asha@example.com", domain.OTPPurposeRegister)
	require.NoError(t, err)
	before := *rec

	_, err = f.svc.VerifyRegisterOTP(ctx, "asha@example.com", "000000")
	require.ErrorIs(t, err, domain.ErrInvalidCode)

	after := f.otps.get(rec.ID)
	require.NotNil(t, after)
	assert.Equal(t, before.Attempts+1, after.Attempts)
	assert.Equal(t, before.Payload, after.Payload)
	assert.Equal(t, before.ExpiresAt, after.ExpiresAt)
	assert.Equal(t, before.CodeHash, after.CodeHash)

	// The failed guess does not block the real code.
	_, err = f.svc.VerifyRegisterOTP(ctx, "asha@example.com", f.lastCode(t))
	assert.NoError(t, err)
}

func TestVerifyAttemptsExhausted(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	code := f.lastCode(t)

	for i := 0; i < 5; i++ {
		_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", "000000")
		require.ErrorIs(t, err, domain.ErrInvalidCode)
	}

	// Exhausted records refuse even the correct code.
	_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
}

func TestVerifyExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	code := f.lastCode(t)

	rec, err := f.otps.FindLatestActive(ctx, "asha@example.com", domain.OTPPurposeRegister)
	require.NoError(t, err)
	f.otps.get(rec.ID).ExpiresAt = time.Now().Add(-time.Minute)

	_, err = f.svc.VerifyRegisterOTP(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, domain.ErrCodeExpired)
}

func TestRegisterExistingEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.CreateUser(ctx, &domain.User{
		Name: "Asha", Email: "asha@example.com", Password: "x", Role: domain.RoleCitizen,
	}))

	err := f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Equal(t, 0, f.otps.count())
	assert.Equal(t, 0, f.mailer.sentCount())
}

func TestVerifyEmailClaimedAfterRegister(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	code := f.lastCode(t)

	// The email gets claimed between request and confirmation.
	require.NoError(t, f.users.CreateUser(ctx, &domain.User{
		Name: "Other", Email: "asha@example.com", Password: "x", Role: domain.RoleCitizen,
	}))

	_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Equal(t, 0, f.otps.count())
}

// conflictUserRepo simulates the narrow race where two confirmations for
// the same email both pass the existence re-check: the lookup still sees
// no user, but the store's unique constraint rejects the insert.
type conflictUserRepo struct {
	*fakeUserRepo
}

func (r *conflictUserRepo) CreateUser(context.Context, *domain.User) error {
	return domain.ErrConflict
}

func TestVerifyUniqueConstraintArbitersRace(t *testing.T) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	mailer := &fakeMailer{}
	tokens := utils.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewAuthService(&conflictUserRepo{users}, otps, mailer, utils.NewBcryptHasher(bcrypt.MinCost), tokens, OTPConfig{})
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	code := otpPattern.FindString(mailer.last().Body)
	require.NotEmpty(t, code)

	_, err := svc.VerifyRegisterOTP(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterSupersedesPrevious(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "first-pass"))
	firstCode := f.lastCode(t)

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "second-pass"))
	secondCode := f.lastCode(t)
	require.Equal(t, 1, f.otps.count())

	if firstCode != secondCode {
		_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", firstCode)
		require.ErrorIs(t, err, domain.ErrInvalidCode)
	}

	res, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", secondCode)
	require.NoError(t, err)

	// The superseding request's password is the one that sticks.
	_, err = f.svc.Login(ctx, "asha@example.com", "second-pass")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "asha@example.com", "first-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.NotNil(t, res.User)
}

func TestResendRearmsInPlace(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	firstCode := f.lastCode(t)

	rec, err := f.otps.FindLatestActive(ctx, "asha@example.com", domain.OTPPurposeRegister)
	require.NoError(t, err)
	f.otps.get(rec.ID).Attempts = 3

	require.NoError(t, f.svc.ResendRegisterOTP(ctx, "asha@example.com"))
	assert.Equal(t, "Your OTP (Resent)", f.mailer.last().Subject)

	after := f.otps.get(rec.ID)
	require.NotNil(t, after)
	assert.Equal(t, 0, after.Attempts)
	assert.Equal(t, rec.Payload, after.Payload)

	secondCode := f.lastCode(t)
	if firstCode != secondCode {
		_, err = f.svc.VerifyRegisterOTP(ctx, "asha@example.com", firstCode)
		require.ErrorIs(t, err, domain.ErrInvalidCode)
	}
	_, err = f.svc.VerifyRegisterOTP(ctx, "asha@example.com", secondCode)
	assert.NoError(t, err)
}

func TestResendWithoutPendingRequest(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ResendRegisterOTP(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

func TestRegisterMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.failErr = assert.AnError

	err := f.svc.Register(context.Background(), "Asha", "asha@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "hunter22"))
	_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", f.lastCode(t))
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := f.svc.Login(ctx, "ASHA@example.com", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "asha@example.com", res.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "asha@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "nobody@example.com", "hunter22")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)

	// Unknown emails succeed without a trace so existence never leaks.
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Equal(t, 0, f.otps.count())
	assert.Equal(t, 0, f.mailer.sentCount())
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "old-pass"))
	res, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", f.lastCode(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "asha@example.com"))
	assert.Equal(t, "Password Reset OTP", f.mailer.last().Subject)

	rec, err := f.otps.FindLatestActive(ctx, "asha@example.com", domain.OTPPurposeReset)
	require.NoError(t, err)
	var payload domain.ResetPayload
	require.NoError(t, json.Unmarshal(rec.Payload, &payload))
	assert.Equal(t, res.User.UUID, payload.UserUUID)

	reset, err := f.svc.ResetPassword(ctx, "asha@example.com", f.lastCode(t), "new-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, reset.Token)
	assert.Equal(t, 0, f.otps.count())

	_, err = f.svc.Login(ctx, "asha@example.com", "new-pass")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "asha@example.com", "old-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// The consumed record cannot reset twice.
	_, err = f.svc.ResetPassword(ctx, "asha@example.com", "123456", "another")
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

func TestResetPasswordWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "Asha", "asha@example.com", "old-pass"))
	_, err := f.svc.VerifyRegisterOTP(ctx, "asha@example.com", f.lastCode(t))
	require.NoError(t, err)
	require.NoError(t, f.svc.ForgotPassword(ctx, "asha@example.com"))

	_, err = f.svc.ResetPassword(ctx, "asha@example.com", "000000", "new-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCode)

	rec, findErr := f.otps.FindLatestActive(ctx, "asha@example.com", domain.OTPPurposeReset)
	require.NoError(t, findErr)
	assert.Equal(t, 1, rec.Attempts)

	// Password unchanged after the failed attempt.
	_, err = f.svc.Login(ctx, "asha@example.com", "old-pass")
	assert.NoError(t, err)
}

func TestRegisterInvalidInput(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Register(ctx, "", "asha@example.com", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.Register(ctx, "Asha", "", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.Register(ctx, "Asha", "asha@example.com", ""), domain.ErrInvalidInput)
}
