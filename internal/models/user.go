package models

import (
	"time"
)

// User represents an authenticated editorial actor. Token is an opaque
// API token; how tokens are minted and rotated is handled outside this
// service.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Token     string    `json:"-" db:"token"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"admin":       true,
	"editor":      true,
	"contributor": true,
}
