package models

import "github.com/google/uuid"

// CreateIndustryCommand is the input of the create industry use case.
type CreateIndustryCommand struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"notblank,max=500"`
}

func (CreateIndustryCommand) ValidationMessages() map[string]string {
	return map[string]string{
		"name.notblank":        "Industry name is required",
		"name.max":             "Industry name must not exceed 100 characters",
		"description.notblank": "Description is required",
		"description.max":      "Description must not exceed 500 characters",
	}
}

// CreateCompanyCommand is the input of the create company use case.
type CreateCompanyCommand struct {
	Name       string    `json:"name" validate:"notblank,max=200"`
	IndustryID uuid.UUID `json:"industryId" validate:"required"`
}

func (CreateCompanyCommand) ValidationMessages() map[string]string {
	return map[string]string{
		"name.notblank":       "Company name is required",
		"name.max":            "Company name must not exceed 200 characters",
		"industryId.required": "Industry is required",
	}
}

// RegisterUserCommand is the final submission of the registration wizard.
type RegisterUserCommand struct {
	CompanyID            uuid.UUID `json:"companyId" validate:"required"`
	FirstName            string    `json:"firstName" validate:"notblank,max=100"`
	LastName             string    `json:"lastName" validate:"notblank,max=100"`
	UserName             string    `json:"userName" validate:"notblank,min=3,max=50"`
	Password             string    `json:"password" validate:"notblank,min=6"`
	PasswordRepetition   string    `json:"passwordRepetition" validate:"eqfield=Password"`
	Email                *string   `json:"email" validate:"omitempty,email,max=255"`
	AcceptTermsOfService bool      `json:"acceptTermsOfService" validate:"eq=true"`
	AcceptPrivacyPolicy  bool      `json:"acceptPrivacyPolicy" validate:"eq=true"`
}

func (RegisterUserCommand) ValidationMessages() map[string]string {
	return map[string]string{
		"companyId.required":         "Company is required",
		"firstName.notblank":         "First name is required",
		"firstName.max":              "First name must not exceed 100 characters",
		"lastName.notblank":          "Last name is required",
		"lastName.max":               "Last name must not exceed 100 characters",
		"userName.notblank":          "Username is required",
		"userName.min":               "Username must be at least 3 characters",
		"userName.max":               "Username must not exceed 50 characters",
		"password.notblank":          "Password is required",
		"password.min":               "Password must be at least 6 characters",
		"passwordRepetition.eqfield": "Passwords do not match",
		"email.email":                "Invalid email format",
		"email.max":                  "Email must not exceed 255 characters",
		"acceptTermsOfService.eq":    "You must accept the terms of service",
		"acceptPrivacyPolicy.eq":     "You must accept the privacy policy",
	}
}

// UsernameQuery is the input of the username availability check.
type UsernameQuery struct {
	Username string `json:"username" validate:"notblank,min=3,max=50,username"`
}

func (UsernameQuery) ValidationMessages() map[string]string {
	return map[string]string{
		"username.notblank": "Username is required",
		"username.min":      "Username must be at least 3 characters",
		"username.max":      "Username must not exceed 50 characters",
		"username.username": "Username can only contain letters, numbers, underscores and periods",
	}
}

// EmailQuery is the input of the email availability check.
type EmailQuery struct {
	Email string `json:"email" validate:"notblank,email,max=255"`
}

func (EmailQuery) ValidationMessages() map[string]string {
	return map[string]string{
		"email.notblank": "Email is required",
		"email.email":    "Invalid email format",
		"email.max":      "Email must not exceed 255 characters",
	}
}
