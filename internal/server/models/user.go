// Package models defines server-side data models persisted in the database.
package models

import "time"

// Roles understood by the dashboard. Role-gated operations check these on
// every mutating request.
const (
	RoleAdmin    = "admin"
	RoleMarketer = "marketer"
	RoleIntern   = "intern"
	RoleCreator  = "creator"
)

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleMarketer, RoleIntern, RoleCreator:
		return true
	}
	return false
}
