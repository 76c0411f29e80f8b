package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlateNumber   string    `gorm:"column:plate_number;uniqueIndex;size:32;not null" json:"plate_number"`
	DriverName    string    `gorm:"column:driver_name;size:200;not null" json:"driver_name"`
	ContactNumber *string   `gorm:"column:contact_number;size:50" json:"contact_number,omitempty"`
	OfficeName    string    `gorm:"column:office_name;size:200;not null" json:"office_name"`
	VehicleType   string    `gorm:"column:vehicle_type;size:64;not null" json:"vehicle_type"`
	EngineType    string    `gorm:"column:engine_type;size:64;not null" json:"engine_type"`
	Wheels        int       `gorm:"column:wheels;not null" json:"wheels"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Tests         []Test                 `gorm:"foreignKey:VehicleID" json:"-"`
	DriverHistory []VehicleDriverHistory `gorm:"foreignKey:VehicleID" json:"-"`
}

// TableName specifies the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VehicleDriverHistory is the append-only ledger of driver assignments for
// a vehicle. Rows are only ever inserted; the row with the latest
// changed_at is the current assignment.
type VehicleDriverHistory struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	VehicleID   string    `gorm:"column:vehicle_id;type:uuid;not null;index" json:"vehicle_id"`
	DriverName  string    `gorm:"column:driver_name;size:200;not null" json:"driver_name"`
	ChangedAt   time.Time `gorm:"column:changed_at;autoCreateTime;index" json:"changed_at"`
	ChangedByID *string   `gorm:"column:changed_by_id;type:uuid" json:"changed_by_id,omitempty"`

	// Relationships
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"-"`
	ChangedBy *User   `gorm:"foreignKey:ChangedByID" json:"-"`
}

// TableName specifies the table name for GORM
func (VehicleDriverHistory) TableName() string {
	return "vehicle_driver_history"
}

func (h *VehicleDriverHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
