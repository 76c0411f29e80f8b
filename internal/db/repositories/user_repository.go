package repositories

import (
	"context"
	"errors"
	"fmt"

	models "bantay-usok/lungsod/internal/models/gorm"

	"gorm.io/gorm"
)

// UserRepositoryGORM manages users and their profiles with GORM
type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// Create inserts a user and, when profile is non-nil, its profile in one
// transaction. Duplicate emails return ErrConflict.
func (r *UserRepositoryGORM) Create(ctx context.Context, user *models.User, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user email %s: %w", user.Email, ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID returns an active (not soft-deleted) user with profile and roles.
func (r *UserRepositoryGORM) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Roles").
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	return &user, nil
}

// GetByEmail returns an active user by email.
func (r *UserRepositoryGORM) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Roles").
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}

	return &user, nil
}

// SoftDelete marks the user deleted. Historical rows that reference the
// user (tests created, driver changes made) are kept.
func (r *UserRepositoryGORM) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("soft delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}
