// Package events publishes domain events of the user management service to
// kafka and reads them back.
package events

import (
	"time"

	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/google/uuid"
)

type EventType string

const (
	IndustryCreated EventType = "industry_created"
	CompanyCreated  EventType = "company_created"
	UserRegistered  EventType = "user_registered"
)

// Event is the envelope written to the topic. ID is the id of the entity the
// event is about and doubles as the message key.
type Event struct {
	Type       EventType   `json:"type"`
	ID         uuid.UUID   `json:"id"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type IndustryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

type CompanyPayload struct {
	Name       string    `json:"name"`
	IndustryID uuid.UUID `json:"industryId"`
	CreatedBy  string    `json:"createdBy,omitempty"`
}

// UserPayload never carries the password hash.
type UserPayload struct {
	UserName  string    `json:"userName"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     *string   `json:"email,omitempty"`
	CompanyID uuid.UUID `json:"companyId"`
}

func NewIndustryCreated(i *models.Industry) Event {
	return Event{
		Type:       IndustryCreated,
		ID:         i.ID,
		OccurredAt: i.CreatedAt,
		Payload: IndustryPayload{
			Name:        i.Name,
			Description: i.Description,
			CreatedBy:   i.CreatedBy,
		},
	}
}

func NewCompanyCreated(c *models.Company) Event {
	return Event{
		Type:       CompanyCreated,
		ID:         c.ID,
		OccurredAt: c.CreatedAt,
		Payload: CompanyPayload{
			Name:       c.Name,
			IndustryID: c.IndustryID,
			CreatedBy:  c.CreatedBy,
		},
	}
}

func NewUserRegistered(u *models.User) Event {
	return Event{
		Type:       UserRegistered,
		ID:         u.ID,
		OccurredAt: u.CreatedAt,
		Payload: UserPayload{
			UserName:  u.UserName,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			CompanyID: u.CompanyID,
		},
	}
}
