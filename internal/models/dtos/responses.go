package dtos

import "time"

// --- Controller endpoints ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type FeeResolutionResponse struct {
	Category      string    `json:"category"`
	Level         int       `json:"level"`
	AsOf          string    `json:"as_of"`
	Amount        float64   `json:"amount"`
	EffectiveDate time.Time `json:"effective_date"`
}

type CurrentDriverResponse struct {
	VehicleID  string     `json:"vehicle_id"`
	DriverName string     `json:"driver_name"`
	ChangedAt  time.Time  `json:"changed_at"`
	ChangedBy  *string    `json:"changed_by,omitempty"`
	AsOf       *time.Time `json:"as_of,omitempty"`
}

type RecordStatusResponse struct {
	RecordID int64     `json:"record_id"`
	Type     string    `json:"type"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Details  *string   `json:"details,omitempty"`
	ORNumber *string   `json:"or_number,omitempty"`
}

type VehicleResponse struct {
	ID               string     `json:"id"`
	PlateNumber      string     `json:"plate_number"`
	DriverName       string     `json:"driver_name"`
	ContactNumber    *string    `json:"contact_number,omitempty"`
	OfficeName       string     `json:"office_name"`
	VehicleType      string     `json:"vehicle_type"`
	EngineType       string     `json:"engine_type"`
	Wheels           int        `json:"wheels"`
	LatestTestDate   *time.Time `json:"latest_test_date,omitempty"`
	LatestTestResult *bool      `json:"latest_test_result,omitempty"`
}

type ViolationResponse struct {
	ID                  int64     `json:"id"`
	RecordID            int64     `json:"record_id"`
	DriverID            *string   `json:"driver_id,omitempty"`
	PlaceOfApprehension string    `json:"place_of_apprehension"`
	DateOfApprehension  time.Time `json:"date_of_apprehension"`
	PaidDriver          bool      `json:"paid_driver"`
	PaidOperator        bool      `json:"paid_operator"`
}

type PaymentResponse struct {
	ViolationID int64   `json:"violation_id"`
	AmountOwed  float64 `json:"amount_owed"`
	ORNumber    *string `json:"or_number,omitempty"`
}

// RecordSummaryResponse assembles everything an enforcement desk needs to
// show for one record in a single response.
type RecordSummaryResponse struct {
	RecordID      int64                  `json:"record_id"`
	PlateNumber   string                 `json:"plate_number"`
	Operator      string                 `json:"operator"`
	Violations    []ViolationResponse    `json:"violations"`
	CurrentStatus *RecordStatusResponse  `json:"current_status,omitempty"`
	History       []RecordStatusResponse `json:"history"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}
