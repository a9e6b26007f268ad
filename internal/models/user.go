package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MaxFunds is the ceiling for any account balance. Top-ups and admin edits
// that would push a balance past it are rejected.
const MaxFunds float64 = 999_999_999_999

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Funds     float64   `json:"funds"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Registration only ever creates plain users; gmail-only is a store policy
// carried over from the original deployment.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"required,email,endswith=@gmail.com"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	Role           string `json:"role,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

type TopUpRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type TopUpResponse struct {
	Funds float64 `json:"funds"`
}

type AdminUpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
}

type AdminSetFundsRequest struct {
	Funds *float64 `json:"funds" validate:"required,gte=0"`
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
