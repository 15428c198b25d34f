package users

import (
	"time"
)

// Role is the authorization role of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DateLayout is the wire format of dates of birth
const DateLayout = "2006-01-02"

// User is the root of the social graph.
// Deleting a user removes every post, comment, reaction, interaction and
// message that references it.
type User struct {
	DateOfBirth  time.Time `json:"dateOfBirth" db:"date_of_birth"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Name         string    `json:"name" db:"name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Info         string    `json:"info" db:"info"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	ID           int64     `json:"id" db:"id"`
}

// RegisterRequest represents the input for registering a new account
type RegisterRequest struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Info        string `json:"info"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginRequest represents the input for authenticating with email and password
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries profile changes.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Info        *string `json:"info,omitempty"`
}
