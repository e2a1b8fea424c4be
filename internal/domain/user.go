package domain

import (
	"fmt"
	"time"
)

// Role enumerates the capability levels a user can hold.
type Role string

const (
	RoleManager  Role = "MANAGER"
	RoleEngineer Role = "ENGINEER"
	RoleObserver Role = "OBSERVER"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleManager, RoleEngineer, RoleObserver:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Principal is the authenticated actor of one request. Immutable for the
// request's duration.
type Principal struct {
	UserID int64
	Role   Role
}

// User is an account that can authenticate and participate in projects.
type User struct {
	ID           int64
	Nickname     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
