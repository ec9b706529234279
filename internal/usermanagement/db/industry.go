package db

import (
	"context"
	"strings"

	dbmodels "github.com/gartstein/usermanagement/internal/usermanagement/db/models"
	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) CreateIndustry(ctx context.Context, industry *models.Industry) error {
	entity := industryToEntity(ctx, industry)
	result := r.db.WithContext(ctx).Create(entity)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return e.Newf(e.ErrIndustryAlreadyExists, "Industry '%s' already exists!", industry.Name)
		}
		return result.Error
	}
	industry.Audit = auditToModel(entity.Audit)
	return nil
}

func (r *Repository) IndustryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &dbmodels.Industry{}, "id = ?", id)
}

func (r *Repository) IndustryExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, &dbmodels.Industry{}, "name = ?", name)
}

// ListIndustries returns one page of non-deleted industries ordered by name,
// plus the number of rows matching the filter.
func (r *Repository) ListIndustries(ctx context.Context, req models.PageRequest) ([]models.Industry, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&dbmodels.Industry{}).Scopes(NotDeleted)
		if f := strings.TrimSpace(req.Filters); f != "" {
			pattern := likePattern(f)
			query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []dbmodels.Industry
	err := base().Scopes(orderByName(req.Descending()), paginate(req)).Find(&entities).Error
	if err != nil {
		return nil, 0, err
	}

	industries := make([]models.Industry, 0, len(entities))
	for i := range entities {
		industries = append(industries, *industryToModel(&entities[i]))
	}
	return industries, total, nil
}

func (r *Repository) SoftDeleteIndustry(ctx context.Context, id uuid.UUID, version int64) error {
	return r.softDelete(ctx, &dbmodels.Industry{}, id, version,
		e.Newf(e.ErrIndustryNotFound, "Industry with ID '%s' does not exist", id))
}

// likePattern lower-cases s and escapes LIKE wildcards for a substring match.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(s))
	return "%" + s + "%"
}

// orderByName sorts by name, then id so that pages stay stable across ties.
func orderByName(desc bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: "name"}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
}

func paginate(req models.PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
