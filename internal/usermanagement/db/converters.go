package db

import (
	"context"
	"time"

	dbmodels "github.com/gartstein/usermanagement/internal/usermanagement/db/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
)

func newAudit(ctx context.Context, a models.Audit) dbmodels.Audit {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	createdBy := a.CreatedBy
	if createdBy == "" {
		createdBy = models.ActorFromContext(ctx)
	}
	return dbmodels.Audit{
		CreatedAt: createdAt,
		CreatedBy: createdBy,
		Version:   a.Version,
	}
}

func auditToModel(a dbmodels.Audit) models.Audit {
	return models.Audit{
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastModified:   a.LastModified,
		LastModifiedBy: a.LastModifiedBy,
		Version:        a.Version,
	}
}

func industryToEntity(ctx context.Context, i *models.Industry) *dbmodels.Industry {
	return &dbmodels.Industry{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Audit:       newAudit(ctx, i.Audit),
	}
}

func industryToModel(i *dbmodels.Industry) *models.Industry {
	if i == nil {
		return nil
	}
	return &models.Industry{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Audit:       auditToModel(i.Audit),
	}
}

func companyToEntity(ctx context.Context, c *models.Company) *dbmodels.Company {
	return &dbmodels.Company{
		ID:         c.ID,
		Name:       c.Name,
		IndustryID: c.IndustryID,
		Audit:      newAudit(ctx, c.Audit),
	}
}

func companyToModel(c *dbmodels.Company) *models.Company {
	users := make([]models.User, 0, len(c.Users))
	for i := range c.Users {
		users = append(users, *userToModel(&c.Users[i]))
	}
	return &models.Company{
		ID:         c.ID,
		Name:       c.Name,
		IndustryID: c.IndustryID,
		Industry:   industryToModel(c.Industry),
		Users:      users,
		Audit:      auditToModel(c.Audit),
	}
}

func userToEntity(ctx context.Context, u *models.User) *dbmodels.User {
	return &dbmodels.User{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		CompanyID:    u.CompanyID,
		Audit:        newAudit(ctx, u.Audit),
	}
}

func userToModel(u *dbmodels.User) *models.User {
	return &models.User{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		CompanyID:    u.CompanyID,
		Audit:        auditToModel(u.Audit),
	}
}
