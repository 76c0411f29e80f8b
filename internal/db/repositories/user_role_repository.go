package repositories

import (
	"context"
	"errors"
	"fmt"

	"bantay-usok/lungsod/internal/constants"
	models "bantay-usok/lungsod/internal/models/gorm"

	"gorm.io/gorm"
)

// UserRoleRepository manages role grants with GORM
type UserRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository creates a new user role repository
func NewUserRoleRepository(db *gorm.DB) *UserRoleRepository {
	return &UserRoleRepository{db: db}
}

// Assign grants a role to a user. The (user_id, role) unique index makes a
// second grant of the same role fail with ErrConflict, leaving exactly one
// row. Soft-deleted or unknown users fail with ErrNotFound.
func (r *UserRoleRepository) Assign(ctx context.Context, userID string, role constants.UserRole) (*models.UserRoleMapping, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	}

	var mapping models.UserRoleMapping

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Default scope excludes soft-deleted users, which is exactly the
		// active-user check the grant requires.
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		mapping = models.UserRoleMapping{UserID: userID, Role: role}
		return tx.Create(&mapping).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %s already holds role %s: %w", userID, role, ErrConflict)
		}
		return nil, fmt.Errorf("assign role: %w", err)
	}

	return &mapping, nil
}

// ActiveRoles returns the roles held by a user, or nothing if the user is
// soft-deleted. Role rows of deleted users are kept for the audit trail
// but never resolve as active.
func (r *UserRoleRepository) ActiveRoles(ctx context.Context, userID string) ([]constants.UserRole, error) {
	var mappings []models.UserRoleMapping

	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = user_roles.user_id").
		Where("user_roles.user_id = ? AND users.deleted_at IS NULL", userID).
		Order("user_roles.created_at ASC").
		Find(&mappings).Error

	if err != nil {
		return nil, fmt.Errorf("fetch user roles: %w", err)
	}

	roles := make([]constants.UserRole, 0, len(mappings))
	for _, m := range mappings {
		roles = append(roles, m.Role)
	}
	return roles, nil
}

// HasRole reports whether an active user holds the given role.
func (r *UserRoleRepository) HasRole(ctx context.Context, userID string, role constants.UserRole) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.UserRoleMapping{}).
		Joins("JOIN users ON users.id = user_roles.user_id").
		Where("user_roles.user_id = ? AND user_roles.role = ? AND users.deleted_at IS NULL", userID, role).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return count > 0, nil
}
