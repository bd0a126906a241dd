package database

import (
	"testing"

	"findabode-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureAdminUser(t *testing.T) {
	gdb := setupDB(t)

	created, err := gdb.EnsureAdminUser("admin@findabode.local", "changeme-now", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := gdb.GetUserByEmail("admin@findabode.local")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, models.ApprovalApproved, admin.ApprovalStatus)
	assert.True(t, admin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("changeme-now")))

	// Idempotent: a second startup must not create another admin
	created, err = gdb.EnsureAdminUser("other@findabode.local", "changeme-now", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, gdb.DB().Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureAdminUserSkipsWithoutCredentials(t *testing.T) {
	gdb := setupDB(t)

	created, err := gdb.EnsureAdminUser("", "", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, gdb.DB().Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
