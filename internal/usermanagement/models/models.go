// Package models defines the domain models of the user management service:
// industries, companies and users, plus the commands that create them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit carries the bookkeeping shared by every entity.
type Audit struct {
	CreatedAt      time.Time
	CreatedBy      string
	LastModified   *time.Time
	LastModifiedBy string
	// Version is the optimistic-concurrency token; it grows by one on every update.
	Version int64
}

// Industry groups companies by line of business.
type Industry struct {
	ID          uuid.UUID
	Name        string
	Description string
	Audit
}

// Company belongs to exactly one Industry and owns its Users.
type Company struct {
	ID         uuid.UUID
	Name       string
	IndustryID uuid.UUID
	// Industry is nil when the referenced industry was soft-deleted.
	Industry *Industry
	Users    []User
	Audit
}

// User is a registered member of a Company.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	UserName     string
	Email        *string
	PasswordHash string
	CompanyID    uuid.UUID
	Audit
}
