package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyRepository defines the storage interface for Company objects.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	CompanyExistsByName(ctx context.Context, name string) (bool, error)
	IndustryExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListCompanies(ctx context.Context, req models.PageRequest) ([]models.Company, int64, error)
}

// CompanyService provides methods to manage companies via repository
// operations and event production.
type CompanyService struct {
	repo     CompanyRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewCompanyService(repo CompanyRepository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

// CreateCompany adds a new Company after validating input data, checking
// that its industry exists and that the name is unused, and triggers an event.
func (s *CompanyService) CreateCompany(ctx context.Context, cmd models.CreateCompanyCommand) (*models.Company, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	found, err := s.repo.IndustryExists(ctx, cmd.IndustryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check industry existence: %w", err)
	}
	if !found {
		return nil, e.Newf(e.ErrIndustryNotFound, "Industry with ID '%s' does not exist", cmd.IndustryID)
	}

	exists, err := s.repo.CompanyExistsByName(ctx, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if exists {
		return nil, e.Newf(e.ErrCompanyAlreadyExists, "Company '%s' already exists!", cmd.Name)
	}

	company := &models.Company{
		ID:         uuid.New(),
		Name:       cmd.Name,
		IndustryID: cmd.IndustryID,
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("industry_id", company.IndustryID.String()),
	)
	produceAsync(s.producer, events.NewCompanyCreated(company))
	return company, nil
}

// GetCompany retrieves a Company by ID, returning an error if not found.
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context, req models.PageRequest) (models.Page[models.Company], error) {
	if err := validation.Struct(req); err != nil {
		return models.Page[models.Company]{}, err
	}
	items, total, err := s.repo.ListCompanies(ctx, req)
	if err != nil {
		return models.Page[models.Company]{}, fmt.Errorf("failed to list companies: %w", err)
	}
	return models.NewPage(items, req, total), nil
}
