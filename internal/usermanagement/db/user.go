package db

import (
	"context"
	"errors"

	dbmodels "github.com/gartstein/usermanagement/internal/usermanagement/db/models"
	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser inserts a user. When a concurrent registration wins the race for
// the same username or email, the unique index violation is reported as the
// matching conflict error.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	entity := userToEntity(ctx, user)
	result := r.db.WithContext(ctx).Create(entity)
	if result.Error == nil {
		user.Audit = auditToModel(entity.Audit)
		return nil
	}
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		return e.Newf(e.ErrCompanyNotFound, "Company with ID '%s' does not exist", user.CompanyID)
	}
	if !isDuplicate(result.Error) {
		return result.Error
	}

	taken, err := r.UserNameExists(ctx, user.UserName)
	if err != nil {
		return err
	}
	if taken || user.Email == nil {
		return e.Newf(e.ErrUsernameAlreadyExists, "Username '%s' already exists!", user.UserName)
	}
	return e.Newf(e.ErrEmailAlreadyExists, "Email '%s' already exists!", *user.Email)
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user dbmodels.User
	result := r.db.WithContext(ctx).Scopes(NotDeleted).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.Newf(e.ErrUserNotFound, "User with ID '%s' does not exist", id)
		}
		return nil, result.Error
	}
	return userToModel(&user), nil
}

func (r *Repository) UserNameExists(ctx context.Context, userName string) (bool, error) {
	return r.exists(ctx, &dbmodels.User{}, "user_name = ?", userName)
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, &dbmodels.User{}, "email = ?", email)
}

func (r *Repository) SoftDeleteUser(ctx context.Context, id uuid.UUID, version int64) error {
	return r.softDelete(ctx, &dbmodels.User{}, id, version,
		e.Newf(e.ErrUserNotFound, "User with ID '%s' does not exist", id))
}
