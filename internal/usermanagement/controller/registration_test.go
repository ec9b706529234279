package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/gartstein/usermanagement/internal/usermanagement/db"
	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRegistrationDB opens a private in-memory database holding one company.
// The raw handle shares the same memory database for row counts.
func setupRegistrationDB(t *testing.T) (*db.Repository, *gorm.DB, uuid.UUID) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	repo, err := db.Open(sqlite.Open(dsn))
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, repo.SetPool(1, 1, 0))
	t.Cleanup(func() { _ = repo.Close() })

	raw, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := raw.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.Background()
	industry := &models.Industry{ID: uuid.New(), Name: "Technology", Description: "Software"}
	require.NoError(t, repo.CreateIndustry(ctx, industry))
	company := &models.Company{ID: uuid.New(), Name: "Acme", IndustryID: industry.ID}
	require.NoError(t, repo.CreateCompany(ctx, company))
	return repo, raw, company.ID
}

func countUsersWithEmail(t *testing.T, raw *gorm.DB, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, raw.Table("users").Where("email = ?", email).Count(&n).Error)
	return n
}

// raceRepository hides existing emails from the pre-check, as a concurrent
// registration would, so only the unique index stands in the way.
type raceRepository struct {
	*db.Repository
}

func (raceRepository) EmailExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestUserService_RegisterUserSameEmail(t *testing.T) {
	tests := []struct {
		name string
		repo func(*db.Repository) UserRepository
	}{
		{"rejected by the pre-check", func(r *db.Repository) UserRepository { return r }},
		{"rejected by the unique index", func(r *db.Repository) UserRepository { return raceRepository{r} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, raw, companyID := setupRegistrationDB(t)
			service := NewUserService(tt.repo(repo), security.NewBcryptHasher(4), &MockProducer{}, zaptest.NewLogger(t))
			ctx := context.Background()

			first := validRegistration()
			first.CompanyID = companyID
			first.Email = strPtr("shared@example.com")
			firstID, err := service.RegisterUser(ctx, first)
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, firstID)

			second := first
			second.UserName = "jane.doe"
			second.Email = strPtr("shared@example.com")
			id, err := service.RegisterUser(ctx, second)
			assert.ErrorIs(t, err, e.ErrEmailAlreadyExists)
			assert.Equal(t, uuid.Nil, id)

			assert.EqualValues(t, 1, countUsersWithEmail(t, raw, "shared@example.com"))
			taken, err := repo.UserNameExists(ctx, "jane.doe")
			require.NoError(t, err)
			assert.False(t, taken, "the second user must not be stored")
		})
	}
}
