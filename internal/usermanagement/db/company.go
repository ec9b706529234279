package db

import (
	"context"
	"errors"
	"strings"

	dbmodels "github.com/gartstein/usermanagement/internal/usermanagement/db/models"
	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	entity := companyToEntity(ctx, company)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return e.Newf(e.ErrCompanyAlreadyExists, "Company '%s' already exists!", company.Name)
		}
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return e.Newf(e.ErrIndustryNotFound, "Industry with ID '%s' does not exist", company.IndustryID)
		}
		return result.Error
	}
	company.Audit = auditToModel(entity.Audit)
	return nil
}

// GetCompany loads a non-deleted company with its industry and users.
func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company dbmodels.Company
	result := r.db.WithContext(ctx).
		Scopes(NotDeleted, preloadCompanyRelations).
		First(&company, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.Newf(e.ErrCompanyNotFound, "Company with ID '%s' does not exist", id)
		}
		return nil, result.Error
	}
	return companyToModel(&company), nil
}

func (r *Repository) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &dbmodels.Company{}, "id = ?", id)
}

func (r *Repository) CompanyExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, &dbmodels.Company{}, "name = ?", name)
}

// ListCompanies returns one page of non-deleted companies ordered by name,
// each with its industry and users loaded.
func (r *Repository) ListCompanies(ctx context.Context, req models.PageRequest) ([]models.Company, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&dbmodels.Company{}).Scopes(NotDeleted)
		if f := strings.TrimSpace(req.Filters); f != "" {
			query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", likePattern(f))
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []dbmodels.Company
	err := base().
		Scopes(preloadCompanyRelations, orderByName(req.Descending()), paginate(req)).
		Find(&entities).Error
	if err != nil {
		return nil, 0, err
	}

	companies := make([]models.Company, 0, len(entities))
	for i := range entities {
		companies = append(companies, *companyToModel(&entities[i]))
	}
	return companies, total, nil
}

func (r *Repository) SoftDeleteCompany(ctx context.Context, id uuid.UUID, version int64) error {
	return r.softDelete(ctx, &dbmodels.Company{}, id, version,
		e.Newf(e.ErrCompanyNotFound, "Company with ID '%s' does not exist", id))
}

func preloadCompanyRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Industry", NotDeleted).
		Preload("Users", func(db *gorm.DB) *gorm.DB {
			return NotDeleted(db).Order("user_name")
		})
}
