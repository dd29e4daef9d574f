package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to accounts created without an explicit role.
const DefaultRole = "Staff"

// User represents a staff account. The password hash never leaves the
// repository layer in API responses.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the public projection of a user.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// SignupRequest represents account creation parameters.
type SignupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role"`
	Password string `json:"password" binding:"required,strongpassword"`
}

// LoginRequest represents login parameters.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token string       `json:"token"`
	User  *UserSummary `json:"user"`
}
