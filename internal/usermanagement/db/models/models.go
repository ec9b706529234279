// Package models contains the persistence entities of the service,
// configured to work using GORM as the ORM.
//
// Unique names are enforced by partial indexes that ignore soft-deleted rows.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit holds the bookkeeping columns shared by every table.
type Audit struct {
	CreatedAt      time.Time  `gorm:"not null"`
	CreatedBy      string     `gorm:"size:100"`
	LastModified   *time.Time `gorm:"column:last_modified"`
	LastModifiedBy string     `gorm:"size:100"`
	IsDeleted      bool       `gorm:"not null;index"`
	Version        int64      `gorm:"not null"`
}

// Industry maps to the industries table.
type Industry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:100;not null;index:ux_industries_name,unique,where:is_deleted = false"`
	Description string    `gorm:"size:500;not null"`
	Audit
}

// Company maps to the companies table. Deleting an industry that still has
// companies is rejected; deleting a company removes its users.
type Company struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:200;not null;index:ux_companies_name,unique,where:is_deleted = false"`
	IndustryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Industry   *Industry `gorm:"foreignKey:IndustryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Users      []User    `gorm:"foreignKey:CompanyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Audit
}

// User maps to the users table. Email is NULL when not provided, which keeps
// it out of the unique index.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"size:100;not null"`
	LastName     string    `gorm:"size:100;not null"`
	UserName     string    `gorm:"size:50;not null;index:ux_users_user_name,unique,where:is_deleted = false"`
	PasswordHash string    `gorm:"size:255;not null"`
	Email        *string   `gorm:"size:255;index:ux_users_email,unique,where:is_deleted = false"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Audit
}

// All lists the entities in migration order.
func All() []interface{} {
	return []interface{}{&Industry{}, &Company{}, &User{}}
}
