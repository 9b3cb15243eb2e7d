package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(8, 64).Error("username must be 8-64 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
			validation.Match(regexp.MustCompile(`[A-Z]`)).Error("password must contain at least one uppercase letter"),
			validation.Match(regexp.MustCompile(`[a-z]`)).Error("password must contain at least one lowercase letter"),
			validation.Match(regexp.MustCompile(`[0-9]`)).Error("password must contain at least one number"),
			validation.Match(regexp.MustCompile(`[^A-Za-z0-9]`)).Error("password must contain at least one special character"),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// TokenInfo - login response
type TokenInfo struct {
	AccessToken string `json:"access_token"`
}

// ========================================
// ADMIN DTOs
// ========================================

// UpdateAdminRequest - PATCH /user/:id/admin
type UpdateAdminRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

func (r UpdateAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsAdmin, validation.NotNil.Error("isAdmin is required")),
	)
}
