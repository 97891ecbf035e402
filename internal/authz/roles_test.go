package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleEmployee.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
}

func TestCan(t *testing.T) {
	// admin can do everything
	for _, a := range []Action{ActionShop, ActionManageCatalog, ActionManageOrders, ActionManageCustomers, ActionManageEmployees, ActionManageUsers} {
		assert.True(t, Can(RoleAdmin, a))
	}

	assert.True(t, Can(RoleEmployee, ActionManageCatalog))
	assert.True(t, Can(RoleEmployee, ActionManageOrders))
	assert.True(t, Can(RoleEmployee, ActionManageCustomers))
	assert.False(t, Can(RoleEmployee, ActionManageEmployees))
	assert.False(t, Can(RoleEmployee, ActionManageUsers))

	assert.True(t, Can(RoleCustomer, ActionShop))
	assert.False(t, Can(RoleCustomer, ActionManageCatalog))

	assert.False(t, Can(Role("ghost"), ActionShop))
}
