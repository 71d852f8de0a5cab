package model

import "time"

// User represents a registered account in the database.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName            string `json:"first_name" validate:"required,max=255"`
	LastName             string `json:"last_name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	RegisteredAt string `json:"fecha_registro"`
}

// AuthData is the payload returned by register and login: the user plus a
// fresh bearer token.
type AuthData struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse shapes a User for API output. The full name and the
// formatted registration date are derived here and never persisted.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FirstName + " " + u.LastName,
		Email:        u.Email,
		RegisteredAt: u.CreatedAt.Format(DisplayTimeLayout),
	}
}
