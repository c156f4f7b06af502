package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

func TestProvisionUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, utils.NewBcryptHasher(bcrypt.MinCost))
	ctx := context.Background()

	user, err := svc.ProvisionUser(ctx, "Admin One", "Admin@City.Gov", "secret-pass", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@city.gov", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.EmailVerified)
	assert.NotEqual(t, "secret-pass", user.Password)

	_, err = svc.ProvisionUser(ctx, "Admin One", "admin@city.gov", "secret-pass", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	citizen, err := svc.ProvisionUser(ctx, "Citizen", "c@example.com", "pass", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, citizen.Role)
}

func TestUpdateProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, utils.NewBcryptHasher(bcrypt.MinCost))
	ctx := context.Background()

	seeded := &domain.User{Name: "Asha", Email: "asha@example.com", Password: "x", Role: domain.RoleCitizen}
	require.NoError(t, users.CreateUser(ctx, seeded))

	phone := "+911234567890"
	updated, err := svc.UpdateProfile(ctx, seeded.UUID, "Asha Rao", &phone)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	// Nil phone leaves the stored number alone.
	updated, err = svc.UpdateProfile(ctx, seeded.UUID, "Asha R", nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	_, err = svc.UpdateProfile(ctx, seeded.UUID, "  ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, "missing", "Name", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
