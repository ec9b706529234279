package handlers

import (
	"strconv"
	"strings"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IndustryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// UserDTO never exposes the password hash.
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	UserName    string    `json:"userName"`
	Email       *string   `json:"email"`
	CompanyID   uuid.UUID `json:"companyId"`
	CompanyName string    `json:"companyName"`
}

type CompanyDTO struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Industry *IndustryDTO `json:"industry"`
	Users    []UserDTO    `json:"users"`
}

type PageDTO[T any] struct {
	Items       []T   `json:"items"`
	PageNumber  int   `json:"pageNumber"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type RegisteredResponse struct {
	UserID uuid.UUID `json:"userId"`
}

type AvailabilityResponse struct {
	IsAvailable bool `json:"isAvailable"`
}

func industryToDTO(i *models.Industry) *IndustryDTO {
	if i == nil {
		return nil
	}
	return &IndustryDTO{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
	}
}

func companyToDTO(c *models.Company) CompanyDTO {
	users := make([]UserDTO, 0, len(c.Users))
	for _, u := range c.Users {
		users = append(users, UserDTO{
			ID:          u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			UserName:    u.UserName,
			Email:       u.Email,
			CompanyID:   u.CompanyID,
			CompanyName: c.Name,
		})
	}
	return CompanyDTO{
		ID:       c.ID,
		Name:     c.Name,
		Industry: industryToDTO(c.Industry),
		Users:    users,
	}
}

// pageToDTO converts every item of p with convert.
func pageToDTO[M, D any](p models.Page[M], convert func(*M) D) PageDTO[D] {
	items := make([]D, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, convert(&p.Items[i]))
	}
	return PageDTO[D]{
		Items:       items,
		PageNumber:  p.PageNumber,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}

// pageRequestFromQuery reads pageNumber, pageSize, filters and sortOrder.
// Missing paging values take their defaults; range checks happen in the
// service layer.
func pageRequestFromQuery(c *gin.Context) (models.PageRequest, error) {
	req := models.PageRequest{
		PageNumber: models.DefaultPageNumber,
		PageSize:   models.DefaultPageSize,
		Filters:    c.Query("filters"),
		SortOrder:  c.Query("sortOrder"),
	}

	verr := e.NewValidationError()
	if raw := strings.TrimSpace(c.Query("pageNumber")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("pageNumber", "Page number must be an integer")
		}
		req.PageNumber = n
	}
	if raw := strings.TrimSpace(c.Query("pageSize")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("pageSize", "Page size must be an integer")
		}
		req.PageSize = n
	}
	if verr.HasErrors() {
		return req, verr
	}
	return req, nil
}
