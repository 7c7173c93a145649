package v1

import (
	"time"
)

// LoginRequest carries the credentials for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public identity summary returned on login.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// IncidentResponse is the public incident record. DateOccurred is a
// calendar date, not a timestamp.
type IncidentResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	Province     string    `json:"province,omitempty"`
	DateOccurred string    `json:"date_occurred"`
	DateReported time.Time `json:"date_reported"`
	Source       string    `json:"source,omitempty"`
	Verified     bool      `json:"verified"`
	RhinoCount   int       `json:"rhino_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProtectedResponse echoes the authenticated token's subject.
type ProtectedResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}
