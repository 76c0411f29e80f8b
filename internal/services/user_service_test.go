package services

import (
	"context"
	"testing"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/models/dtos"
	models "bantay-usok/lungsod/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct {
	createFunc     func(ctx context.Context, user *models.User, profile *models.Profile) error
	getByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	softDeleteFunc func(ctx context.Context, id string) error
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User, profile *models.Profile) error {
	return m.createFunc(ctx, user, profile)
}
func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.getByIDFunc(ctx, id)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmailFunc(ctx, email)
}
func (m *mockUserStore) SoftDelete(ctx context.Context, id string) error {
	return m.softDeleteFunc(ctx, id)
}

type mockRoleStore struct {
	assignFunc      func(ctx context.Context, userID string, role constants.UserRole) (*models.UserRoleMapping, error)
	activeRolesFunc func(ctx context.Context, userID string) ([]constants.UserRole, error)
	hasRoleFunc     func(ctx context.Context, userID string, role constants.UserRole) (bool, error)
}

func (m *mockRoleStore) Assign(ctx context.Context, userID string, role constants.UserRole) (*models.UserRoleMapping, error) {
	return m.assignFunc(ctx, userID, role)
}
func (m *mockRoleStore) ActiveRoles(ctx context.Context, userID string) ([]constants.UserRole, error) {
	return m.activeRolesFunc(ctx, userID)
}
func (m *mockRoleStore) HasRole(ctx context.Context, userID string, role constants.UserRole) (bool, error) {
	return m.hasRoleFunc(ctx, userID, role)
}

func strPtr(s string) *string { return &s }

func TestCreateUser_RejectsBadEmail(t *testing.T) {
	svc := NewUserService(&mockUserStore{}, &mockRoleStore{})

	_, err := svc.CreateUser(context.Background(), dtos.CreateUserReq{
		Email: "not-an-email", PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, repositories.ErrValidation)

	_, err = svc.CreateUser(context.Background(), dtos.CreateUserReq{
		Email: "a@city.gov.ph",
	})
	assert.ErrorIs(t, err, repositories.ErrValidation)
}

func TestCreateUser_BuildsProfileWhenNamed(t *testing.T) {
	var gotProfile *models.Profile
	store := &mockUserStore{
		createFunc: func(_ context.Context, user *models.User, profile *models.Profile) error {
			user.ID = "user-1"
			gotProfile = profile
			return nil
		},
	}
	svc := NewUserService(store, &mockRoleStore{})

	resp, err := svc.CreateUser(context.Background(), dtos.CreateUserReq{
		Email:        "inspector@city.gov.ph",
		PasswordHash: "hash",
		FirstName:    strPtr("Liza"),
		Department:   strPtr("CENRO"),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.ID)
	assert.Empty(t, resp.Roles)
	require.NotNil(t, gotProfile)
	assert.Equal(t, "Liza", *gotProfile.FirstName)
	assert.Equal(t, "CENRO", *gotProfile.Department)
}

func TestCreateUser_NoProfileWithoutDetails(t *testing.T) {
	var gotProfile *models.Profile
	store := &mockUserStore{
		createFunc: func(_ context.Context, _ *models.User, profile *models.Profile) error {
			gotProfile = profile
			return nil
		},
	}
	svc := NewUserService(store, &mockRoleStore{})

	_, err := svc.CreateUser(context.Background(), dtos.CreateUserReq{
		Email: "plain@city.gov.ph", PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Nil(t, gotProfile)
}

func TestGetUser_IncludesActiveRoles(t *testing.T) {
	store := &mockUserStore{
		getByIDFunc: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Email: "inspector@city.gov.ph"}, nil
		},
	}
	roles := &mockRoleStore{
		activeRolesFunc: func(_ context.Context, _ string) ([]constants.UserRole, error) {
			return []constants.UserRole{constants.RoleAirQuality, constants.RoleGovernmentEmission}, nil
		},
	}
	svc := NewUserService(store, roles)

	resp, err := svc.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"air_quality", "government_emission"}, resp.Roles)
}

func TestAssignRole_PassesThroughConflicts(t *testing.T) {
	roles := &mockRoleStore{
		assignFunc: func(_ context.Context, _ string, _ constants.UserRole) (*models.UserRoleMapping, error) {
			return nil, repositories.ErrConflict
		},
	}
	svc := NewUserService(&mockUserStore{}, roles)

	_, err := svc.AssignRole(context.Background(), "user-1", dtos.AssignRoleReq{Role: "air_quality"})
	assert.ErrorIs(t, err, repositories.ErrConflict)
}
