package authz_test

import (
	"testing"

	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer(t *testing.T) {
	a, err := authz.New()
	require.NoError(t, err)

	tests := []struct {
		role    domain.Role
		object  string
		action  string
		allowed bool
	}{
		{domain.RoleAdmin, authz.ObjectEntity, authz.ActionDelete, true},
		{domain.RoleAdmin, authz.ObjectUserProfile, authz.ActionUpdate, true},
		{domain.RoleHead, authz.ObjectSalesTarget, authz.ActionCreate, true},
		{domain.RoleHead, authz.ObjectEntity, authz.ActionCreate, false},
		{domain.RoleHead, authz.ObjectUserProfile, authz.ActionAssign, false},
		{domain.RoleManager, authz.ObjectUserProfile, authz.ActionAssign, true},
		{domain.RoleManager, authz.ObjectUserProfile, authz.ActionUpdate, false},
		{domain.RoleManager, authz.ObjectManagerTeam, authz.ActionCreate, false},
		{domain.RoleAccountManager, authz.ObjectSalesTarget, authz.ActionView, true},
		{domain.RoleAccountManager, authz.ObjectSalesTarget, authz.ActionCreate, false},
		{domain.RoleStaff, authz.ObjectReport, authz.ActionView, true},
		{domain.RoleSales, authz.ObjectActivity, authz.ActionCreate, true},
		{domain.RoleUnset, authz.ObjectReport, authz.ActionView, false},
		{domain.RoleUnset, authz.ObjectTeam, authz.ActionView, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.object+"/"+tt.action, func(t *testing.T) {
			assert.Equal(t, tt.allowed, a.Allowed(tt.role, tt.object, tt.action))

			err := a.Authorize(tt.role, tt.object, tt.action)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, authz.ErrForbidden)
			}
		})
	}
}
