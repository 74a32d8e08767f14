package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleAdministrator, PermManageCatalog, true},
		{RoleAdministrator, PermManageClients, true},
		{RoleAdministrator, PermManageLoans, true},
		{RoleAdministrator, PermManageUsers, true},
		{RoleLibrarian, PermManageCatalog, true},
		{RoleLibrarian, PermManageClients, true},
		{RoleLibrarian, PermManageLoans, true},
		{RoleLibrarian, PermManageUsers, false},
		{Role("visitor"), PermManageCatalog, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Can(tt.perm),
			"role %s, permission %s", tt.role, tt.perm)
	}
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(RoleLibrarian, PermManageLoans))
	assert.NoError(t, Authorize(RoleAdministrator, PermManageLoans, PermManageUsers))

	err := Authorize(RoleLibrarian, PermManageUsers)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// One missing permission denies the whole call.
	err = Authorize(RoleLibrarian, PermManageLoans, PermManageUsers)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("librarian")
	assert.NoError(t, err)
	assert.Equal(t, RoleLibrarian, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}
