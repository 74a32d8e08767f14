package models

import (
	"errors"
	"fmt"
	"time"
)

// Role is a closed enumeration of staff roles.
type Role string

const (
	RoleAdministrator Role = "administrator" // full access, including user accounts
	RoleLibrarian     Role = "librarian"     // catalog, clients, loans and reservations
)

// Permission names one capability a role may hold.
type Permission string

const (
	PermManageCatalog Permission = "manage_catalog" // books, authors, categories, publishers, copies
	PermManageClients Permission = "manage_clients" // client records
	PermManageLoans   Permission = "manage_loans"   // open/close loans, reservations
	PermManageUsers   Permission = "manage_users"   // staff accounts
)

// rolePermissions is the static role -> capability table. Authorization is a
// lookup here, never an ad-hoc string comparison in a handler.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdministrator: {
		PermManageCatalog: true,
		PermManageClients: true,
		PermManageLoans:   true,
		PermManageUsers:   true,
	},
	RoleLibrarian: {
		PermManageCatalog: true,
		PermManageClients: true,
		PermManageLoans:   true,
	},
}

// ErrPermissionDenied is returned when a role lacks a required permission.
var ErrPermissionDenied = errors.New("permission denied")

// Can reports whether the role holds the permission.
func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// ParseRole validates a role name coming from storage or a token claim.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Authorize allows the call when the role holds every required permission.
// It is checked at the gate, before any business logic runs.
func Authorize(role Role, required ...Permission) error {
	for _, p := range required {
		if !role.Can(p) {
			return ErrPermissionDenied
		}
	}
	return nil
}

// User is a staff account that can authenticate against the API.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        string    `json:"email,omitempty" db:"email"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsAdministrator reports whether the user holds the administrator role.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}
