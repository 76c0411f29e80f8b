package services

import (
	"context"
	"fmt"
	"net/mail"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/logging"
	"bantay-usok/lungsod/internal/models/dtos"
	models "bantay-usok/lungsod/internal/models/gorm"
)

// UserStore is the persistence surface for accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SoftDelete(ctx context.Context, id string) error
}

// RoleStore manages role grants.
type RoleStore interface {
	Assign(ctx context.Context, userID string, role constants.UserRole) (*models.UserRoleMapping, error)
	ActiveRoles(ctx context.Context, userID string) ([]constants.UserRole, error)
	HasRole(ctx context.Context, userID string, role constants.UserRole) (bool, error)
}

// UserService manages personnel accounts, profiles and role grants.
type UserService struct {
	users UserStore
	roles RoleStore
}

// NewUserService creates a new user service
func NewUserService(users UserStore, roles RoleStore) *UserService {
	return &UserService{users: users, roles: roles}
}

// CreateUser registers an account together with its optional profile.
func (s *UserService) CreateUser(ctx context.Context, req dtos.CreateUserReq) (*dtos.UserResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", req.Email, repositories.ErrValidation)
	}
	if req.PasswordHash == "" {
		return nil, fmt.Errorf("password_hash is required: %w", repositories.ErrValidation)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
	}
	var profile *models.Profile
	if req.FirstName != nil || req.LastName != nil || req.Department != nil {
		profile = &models.Profile{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Department: req.Department,
		}
	}
	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	logging.Info("User created", "user_id", user.ID, "email", user.Email)
	return &dtos.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Roles:     []string{},
		CreatedAt: user.CreatedAt,
	}, nil
}

// GetUser returns an account with its active roles.
func (s *UserService) GetUser(ctx context.Context, id string) (*dtos.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.ActiveRoles(ctx, id)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return &dtos.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Roles:     names,
		CreatedAt: user.CreatedAt,
	}, nil
}

// AssignRole grants a role to an active user.
func (s *UserService) AssignRole(ctx context.Context, userID string, req dtos.AssignRoleReq) (*models.UserRoleMapping, error) {
	mapping, err := s.roles.Assign(ctx, userID, constants.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	logging.Info("Role assigned", "user_id", userID, "role", req.Role)
	return mapping, nil
}

// DeactivateUser soft-deletes an account. The row and its role grants stay
// for the audit trail; the roles just stop resolving as active.
func (s *UserService) DeactivateUser(ctx context.Context, id string) error {
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	logging.Info("User deactivated", "user_id", id)
	return nil
}
