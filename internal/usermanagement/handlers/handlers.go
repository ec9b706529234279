// Package handlers exposes the user management service over HTTP with gin.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const BasePath = "/api/v1"

// IndustryController defines the industry use cases the handlers invoke.
type IndustryController interface {
	CreateIndustry(ctx context.Context, cmd models.CreateIndustryCommand) (*models.Industry, error)
	ListIndustries(ctx context.Context, req models.PageRequest) (models.Page[models.Industry], error)
}

// CompanyController defines the company use cases the handlers invoke.
type CompanyController interface {
	CreateCompany(ctx context.Context, cmd models.CreateCompanyCommand) (*models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context, req models.PageRequest) (models.Page[models.Company], error)
}

// UserController defines the registration use cases the handlers invoke.
type UserController interface {
	CheckUsernameAvailability(ctx context.Context, username string) (bool, error)
	CheckEmailAvailability(ctx context.Context, email string) (bool, error)
	RegisterUser(ctx context.Context, cmd models.RegisterUserCommand) (uuid.UUID, error)
}

// HealthChecker reports whether a backing store answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler bridges HTTP requests and the service layer.
type Handler struct {
	industries IndustryController
	companies  CompanyController
	users      UserController
	health     HealthChecker
	name       string
	logger     *zap.Logger
}

func NewHandler(
	industries IndustryController,
	companies CompanyController,
	users UserController,
	health HealthChecker,
	name string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		industries: industries,
		companies:  companies,
		users:      users,
		health:     health,
		name:       name,
		logger:     logger.Named("http_handler"),
	}
}

func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.abortWithError(c, fmt.Errorf("%w: malformed request body: %v", e.ErrInvalidInput, err))
		return false
	}
	return true
}

func (h *Handler) CreateIndustry(c *gin.Context) {
	var cmd models.CreateIndustryCommand
	if !h.bindJSON(c, &cmd) {
		return
	}

	industry, err := h.industries.CreateIndustry(c.Request.Context(), cmd)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: industry.ID})
}

func (h *Handler) ListIndustries(c *gin.Context) {
	req, err := pageRequestFromQuery(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	page, err := h.industries.ListIndustries(c.Request.Context(), req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToDTO(page, func(i *models.Industry) IndustryDTO {
		return *industryToDTO(i)
	}))
}

// CreateCompany answers 201 with the new id and a Location header pointing
// at GetCompany.
func (h *Handler) CreateCompany(c *gin.Context) {
	var cmd models.CreateCompanyCommand
	if !h.bindJSON(c, &cmd) {
		return
	}

	company, err := h.companies.CreateCompany(c.Request.Context(), cmd)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/company/%s", BasePath, company.ID))
	c.JSON(http.StatusCreated, CreatedResponse{ID: company.ID})
}

func (h *Handler) ListCompanies(c *gin.Context) {
	req, err := pageRequestFromQuery(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	page, err := h.companies.ListCompanies(c.Request.Context(), req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToDTO(page, companyToDTO))
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.abortWithError(c, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput))
		return
	}

	company, err := h.companies.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, companyToDTO(company))
}

func (h *Handler) CheckUsernameAvailability(c *gin.Context) {
	available, err := h.users.CheckUsernameAvailability(c.Request.Context(), c.Query("username"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailabilityResponse{IsAvailable: available})
}

func (h *Handler) CheckEmailAvailability(c *gin.Context) {
	available, err := h.users.CheckEmailAvailability(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailabilityResponse{IsAvailable: available})
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var cmd models.RegisterUserCommand
	if !h.bindJSON(c, &cmd) {
		return
	}

	id, err := h.users.RegisterUser(c.Request.Context(), cmd)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RegisteredResponse{UserID: id})
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, h.name)
}

// Healthz answers 503 when the database does not respond.
func (h *Handler) Healthz(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
