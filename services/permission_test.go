package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel-delivery/constants"
	"parcel-delivery/models/user"
	"parcel-delivery/repository"
	"parcel-delivery/repository/repotest"
)

func TestRoleOf(t *testing.T) {
	store := repotest.New()
	store.AddUser(user.User{Email: "admin@x.com", Role: constants.RoleAdmin})
	store.AddUser(user.User{Email: "plain@x.com"})
	ps := NewPermissionService(store.Users())
	ctx := context.Background()

	role, err := ps.RoleOf(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, role)

	role, err = ps.RoleOf(ctx, "plain@x.com")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleUser, role)

	_, err = ps.RoleOf(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHasRole(t *testing.T) {
	store := repotest.New()
	store.AddUser(user.User{Email: "rider@x.com", Role: constants.RoleRider})
	ps := NewPermissionService(store.Users())
	ctx := context.Background()

	ok, err := ps.HasRole(ctx, "rider@x.com", constants.RoleRider)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ps.IsAdmin(ctx, "rider@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ps.IsAdmin(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	store.Fail("users.FindByEmail", errors.New("db down"))
	_, err = ps.IsAdmin(ctx, "rider@x.com")
	assert.Error(t, err)
}
