package gorm

import (
	"time"

	"bantay-usok/lungsod/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string         `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"column:encrypted_password;size:255;not null" json:"-"`
	IsSuperAdmin bool           `gorm:"column:is_super_admin;default:false" json:"is_super_admin"`
	LastSignInAt *time.Time     `gorm:"column:last_sign_in_at" json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	// Relationships
	Profile *Profile          `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Roles   []UserRoleMapping `gorm:"foreignKey:UserID" json:"roles,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserRoleMapping grants one role to one user; (user_id, role) is unique so
// a user cannot hold the same role twice.
type UserRoleMapping struct {
	ID        string             `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string             `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_id_role" json:"user_id"`
	Role      constants.UserRole `gorm:"column:role;type:user_role;not null;uniqueIndex:uq_user_roles_user_id_role" json:"role"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (UserRoleMapping) TableName() string {
	return "user_roles"
}

func (m *UserRoleMapping) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type Profile struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName   *string   `gorm:"column:first_name;size:100" json:"first_name,omitempty"`
	LastName    *string   `gorm:"column:last_name;size:100" json:"last_name,omitempty"`
	JobTitle    *string   `gorm:"column:job_title;size:200" json:"job_title,omitempty"`
	Department  *string   `gorm:"column:department;size:200" json:"department,omitempty"`
	PhoneNumber *string   `gorm:"column:phone_number;size:50" json:"phone_number,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
