package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Test is a single smoke-emission test execution for a vehicle.
type Test struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	VehicleID   string    `gorm:"column:vehicle_id;type:uuid;not null;index" json:"vehicle_id"`
	TestDate    time.Time `gorm:"column:test_date;not null;index" json:"test_date"`
	Quarter     int       `gorm:"column:quarter;not null" json:"quarter"`
	Year        int       `gorm:"column:year;not null" json:"year"`
	Result      bool      `gorm:"column:result;not null" json:"result"`
	CreatedByID *string   `gorm:"column:created_by_id;type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"-"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID" json:"-"`
}

// TableName specifies the table name for GORM
func (Test) TableName() string {
	return "emission_tests"
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TestSchedule plans the quarterly testing drive for a year/quarter.
type TestSchedule struct {
	ID                string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Year              int       `gorm:"column:year;not null;index:idx_test_schedules_year_quarter" json:"year"`
	Quarter           int       `gorm:"column:quarter;not null;index:idx_test_schedules_year_quarter" json:"quarter"`
	AssignedPersonnel string    `gorm:"column:assigned_personnel;size:200;not null" json:"assigned_personnel"`
	Location          string    `gorm:"column:location;size:200;not null" json:"location"`
	ConductedOn       time.Time `gorm:"column:conducted_on;not null" json:"conducted_on"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (TestSchedule) TableName() string {
	return "emission_test_schedules"
}

func (s *TestSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
