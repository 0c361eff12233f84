package models

import (
	"time"

	"github.com/google/uuid"
)

// buyer account approval state
const (
	AccountStatusPending  = "PENDING"
	AccountStatusApproved = "APPROVED"
	AccountStatusRejected = "REJECTED"
)

// user role
const (
	RoleBuyer = "BUYER"
	RoleAdmin = "ADMIN"
)

// User is buyer or admin account
type User struct {
	ID            uuid.UUID
	Login         string
	PasswordHash  string
	BusinessName  string
	Role          string
	AccountStatus string
	CreatedAt     time.Time
}

// TokenPayload is authorization token payload
type TokenPayload struct {
	UserID uuid.UUID
	Role   string
}
