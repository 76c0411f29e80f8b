package repositories

import (
	"context"
	"testing"

	models "bantay-usok/lungsod/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_WithProfile(t *testing.T) {
	db := setupGormDB(t)
	users := NewUserRepositoryGORM(db)
	ctx := context.Background()

	firstName := "Ana"
	dept := "Air Quality Division"
	user := &models.User{Email: "ana@city.gov.ph", PasswordHash: "x"}
	profile := &models.Profile{FirstName: &firstName, Department: &dept}

	require.NoError(t, users.Create(ctx, user, profile))
	require.NotEmpty(t, user.ID)

	fetched, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Profile)
	require.NotNil(t, fetched.Profile.FirstName)
	assert.Equal(t, "Ana", *fetched.Profile.FirstName)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := setupGormDB(t)
	users := NewUserRepositoryGORM(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{Email: "dup@city.gov.ph", PasswordHash: "x"}, nil))

	err := users.Create(ctx, &models.User{Email: "dup@city.gov.ph", PasswordHash: "y"}, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserSoftDelete(t *testing.T) {
	db := setupGormDB(t)
	users := NewUserRepositoryGORM(db)
	ctx := context.Background()

	user := createTestUser(t, users, "gone@city.gov.ph")
	require.NoError(t, users.SoftDelete(ctx, user.ID))

	_, err := users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByEmail(ctx, "gone@city.gov.ph")
	assert.ErrorIs(t, err, ErrNotFound)

	// The row itself survives for the audit trail.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err = users.SoftDelete(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserSoftDelete_Unknown(t *testing.T) {
	db := setupGormDB(t)
	users := NewUserRepositoryGORM(db)

	err := users.SoftDelete(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}
