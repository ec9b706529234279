package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the storage interface used by registration and
// the availability checks.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	CompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserNameExists(ctx context.Context, userName string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type UserService struct {
	repo     UserRepository
	hasher   PasswordHasher
	producer EventProducer
	logger   *zap.Logger
}

func NewUserService(repo UserRepository, hasher PasswordHasher, producer EventProducer, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		producer: producer,
		logger:   logger.Named("user_service"),
	}
}

// CheckUsernameAvailability reports whether no live user holds username.
func (s *UserService) CheckUsernameAvailability(ctx context.Context, username string) (bool, error) {
	if err := validation.Struct(models.UsernameQuery{Username: username}); err != nil {
		return false, err
	}
	exists, err := s.repo.UserNameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return !exists, nil
}

// CheckEmailAvailability reports whether no live user holds email.
func (s *UserService) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	if err := validation.Struct(models.EmailQuery{Email: email}); err != nil {
		return false, err
	}
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return !exists, nil
}

// RegisterUser completes the registration wizard and returns the new user id.
func (s *UserService) RegisterUser(ctx context.Context, cmd models.RegisterUserCommand) (uuid.UUID, error) {
	cmd.Email = normalizeEmail(cmd.Email)
	if err := validation.Struct(cmd); err != nil {
		return uuid.Nil, err
	}
	// Validation already rejects these flags; this re-check is belt and braces.
	if !cmd.AcceptTermsOfService || !cmd.AcceptPrivacyPolicy {
		return uuid.Nil, e.Newf(e.ErrTermsNotAccepted, "You must accept both terms of service and privacy policy")
	}

	found, err := s.repo.CompanyExists(ctx, cmd.CompanyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check company existence: %w", err)
	}
	if !found {
		return uuid.Nil, e.Newf(e.ErrCompanyNotFound, "Company with ID '%s' does not exist", cmd.CompanyID)
	}

	taken, err := s.repo.UserNameExists(ctx, cmd.UserName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return uuid.Nil, e.Newf(e.ErrUsernameAlreadyExists, "Username '%s' already exists!", cmd.UserName)
	}

	if cmd.Email != nil {
		taken, err = s.repo.EmailExists(ctx, *cmd.Email)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return uuid.Nil, e.Newf(e.ErrEmailAlreadyExists, "Email '%s' already exists!", *cmd.Email)
		}
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			verr := e.NewValidationError()
			verr.Add("password", "Password must not exceed 72 bytes")
			return uuid.Nil, verr
		}
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		UserName:     cmd.UserName,
		Email:        cmd.Email,
		PasswordHash: hash,
		CompanyID:    cmd.CompanyID,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return uuid.Nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", user.CompanyID.String()),
	)
	produceAsync(s.producer, events.NewUserRegistered(user))
	return user.ID, nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
