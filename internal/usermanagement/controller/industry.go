package controller

import (
	"context"
	"fmt"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IndustryRepository defines the storage interface for Industry objects.
type IndustryRepository interface {
	CreateIndustry(ctx context.Context, industry *models.Industry) error
	IndustryExistsByName(ctx context.Context, name string) (bool, error)
	ListIndustries(ctx context.Context, req models.PageRequest) ([]models.Industry, int64, error)
}

type IndustryService struct {
	repo     IndustryRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewIndustryService(repo IndustryRepository, producer EventProducer, logger *zap.Logger) *IndustryService {
	return &IndustryService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("industry_service"),
	}
}

// CreateIndustry validates cmd, rejects a name already used by a live
// industry and stores the new industry.
func (s *IndustryService) CreateIndustry(ctx context.Context, cmd models.CreateIndustryCommand) (*models.Industry, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	exists, err := s.repo.IndustryExistsByName(ctx, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if exists {
		return nil, e.Newf(e.ErrIndustryAlreadyExists, "Industry '%s' already exists!", cmd.Name)
	}

	industry := &models.Industry{
		ID:          uuid.New(),
		Name:        cmd.Name,
		Description: cmd.Description,
	}
	if err := s.repo.CreateIndustry(ctx, industry); err != nil {
		return nil, fmt.Errorf("failed to create industry: %w", err)
	}

	s.logger.Info("industry created",
		zap.String("industry_id", industry.ID.String()),
		zap.String("name", industry.Name),
	)
	produceAsync(s.producer, events.NewIndustryCreated(industry))
	return industry, nil
}

func (s *IndustryService) ListIndustries(ctx context.Context, req models.PageRequest) (models.Page[models.Industry], error) {
	if err := validation.Struct(req); err != nil {
		return models.Page[models.Industry]{}, err
	}
	items, total, err := s.repo.ListIndustries(ctx, req)
	if err != nil {
		return models.Page[models.Industry]{}, fmt.Errorf("failed to list industries: %w", err)
	}
	return models.NewPage(items, req, total), nil
}
