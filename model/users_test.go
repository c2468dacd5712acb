package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RolePolice.Valid())
	assert.True(t, RoleCommunity.Valid())
	assert.True(t, RoleTrainee.Valid())
	assert.False(t, UserRole("chef").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestUser_Permissions(t *testing.T) {
	t.Parallel()

	admin := &User{Role: RoleAdmin}
	police := &User{Role: RolePolice}
	community := &User{Role: RoleCommunity}
	trainee := &User{Role: RoleTrainee}

	assert.True(t, admin.IsAdmin())
	assert.False(t, police.IsAdmin())

	assert.True(t, admin.CanManageIncidents())
	assert.True(t, police.CanManageIncidents())
	assert.False(t, community.CanManageIncidents())
	assert.False(t, trainee.CanManageIncidents())
}
