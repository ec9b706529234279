// Package seed loads the default industries and companies.
package seed

import (
	"context"
	"fmt"

	"github.com/gartstein/usermanagement/internal/usermanagement/db"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"go.uber.org/zap"
)

// Actor is recorded as the creator of seeded rows.
const Actor = "seed"

type Store interface {
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// Result counts the rows a run inserted.
type Result struct {
	Industries int
	Companies  int
}

type Seeder struct {
	store  Store
	logger *zap.Logger
}

func NewSeeder(store Store, logger *zap.Logger) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger.Named("seeder"),
	}
}

// Run inserts every default row whose id and name are both unused among
// live rows, all in one transaction. Companies whose industry is absent are
// skipped. Running it twice changes nothing.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	if models.ActorFromContext(ctx) == "" {
		ctx = models.WithActor(ctx, Actor)
	}

	var res Result
	err := s.store.WithTransaction(ctx, func(repo *db.Repository) error {
		res = Result{}
		for _, industry := range Industries() {
			skip, err := anyExists(
				func() (bool, error) { return repo.IndustryExists(ctx, industry.ID) },
				func() (bool, error) { return repo.IndustryExistsByName(ctx, industry.Name) },
			)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			if err := repo.CreateIndustry(ctx, &industry); err != nil {
				return fmt.Errorf("failed to seed industry %s: %w", industry.Name, err)
			}
			res.Industries++
		}

		for _, company := range Companies() {
			skip, err := anyExists(
				func() (bool, error) { return repo.CompanyExists(ctx, company.ID) },
				func() (bool, error) { return repo.CompanyExistsByName(ctx, company.Name) },
			)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			found, err := repo.IndustryExists(ctx, company.IndustryID)
			if err != nil {
				return err
			}
			if !found {
				s.logger.Warn("industry missing, skipping company",
					zap.String("company", company.Name),
					zap.String("industry_id", company.IndustryID.String()),
				)
				continue
			}
			if err := repo.CreateCompany(ctx, &company); err != nil {
				return fmt.Errorf("failed to seed company %s: %w", company.Name, err)
			}
			res.Companies++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("seed completed",
		zap.Int("industries_created", res.Industries),
		zap.Int("companies_created", res.Companies),
	)
	return res, nil
}

func anyExists(checks ...func() (bool, error)) (bool, error) {
	for _, check := range checks {
		found, err := check()
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}
