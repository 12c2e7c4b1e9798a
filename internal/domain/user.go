package domain

import (
	"errors"
	"time"
)

// User is a back-office account.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access, including day closing and deletions
	RoleAdmin Role = "admin"

	// RoleStaff runs the front desk: records, sales, stock movements
	RoleStaff Role = "staff"

	// RoleViewer can only read, no mutations
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleStaff:  true,
	RoleViewer: true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanMutate checks if the role can create or edit records
func (r Role) CanMutate() bool {
	return r == RoleAdmin || r == RoleStaff
}

// CanCloseDay checks if the role can run the closing procedure
func (r Role) CanCloseDay() bool {
	return r == RoleAdmin
}

// CanDelete checks if the role can delete activities
func (r Role) CanDelete() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrForbidden    = errors.New("insufficient role for this operation")

	ErrEmailInUse      = errors.New("an account with this email already exists")
	ErrAccountDisabled = errors.New("account is disabled")
)
