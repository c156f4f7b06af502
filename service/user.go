package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

type userService struct {
	userRepo domain.UserRepository
	hasher   domain.Hasher
}

func NewUserService(userRepo domain.UserRepository, hasher domain.Hasher) domain.UserUseCase {
	return &userService{userRepo: userRepo, hasher: hasher}
}

// ProvisionUser creates an account directly, bypassing the OTP workflow.
// Used for admin-created accounts; the email counts as verified.
func (s *userService) ProvisionUser(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleCitizen
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:          name,
		Email:         email,
		Password:      hash,
		Role:          role,
		EmailVerified: true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, uuid)
}

func (s *userService) UpdateProfile(ctx context.Context, uuid, name string, phone *string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if phone != nil {
		user.Phone = phone
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
