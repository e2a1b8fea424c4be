package dto

import (
	"time"

	"github.com/spec-kit/defect-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest payload.
type LoginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// UserResponse response.
type UserResponse struct {
	ID        int64       `json:"id"`
	Nickname  string      `json:"nickname"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// TokenResponse response.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}
