package entities

import "time"

// Record is a smoke-belching filing for a registered vehicle/operator.
type Record struct {
	ID                  int64     `db:"id" json:"id"`
	PlateNumber         string    `db:"plate_number" json:"plate_number"`
	VehicleType         string    `db:"vehicle_type" json:"vehicle_type"`
	TransportGroup      *string   `db:"transport_group" json:"transport_group,omitempty"`
	OperatorCompanyName string    `db:"operator_company_name" json:"operator_company_name"`
	OperatorAddress     *string   `db:"operator_address" json:"operator_address,omitempty"`
	OwnerFirstName      *string   `db:"owner_first_name" json:"owner_first_name,omitempty"`
	OwnerMiddleName     *string   `db:"owner_middle_name" json:"owner_middle_name,omitempty"`
	OwnerLastName       *string   `db:"owner_last_name" json:"owner_last_name,omitempty"`
	MotorNo             *string   `db:"motor_no" json:"motor_no,omitempty"`
	MotorVehicleName    *string   `db:"motor_vehicle_name" json:"motor_vehicle_name,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

type Violation struct {
	ID                          int64     `db:"id" json:"id"`
	RecordID                    int64     `db:"record_id" json:"record_id"`
	DriverID                    *string   `db:"driver_id" json:"driver_id,omitempty"`
	OrdinanceInfractionReportNo *string   `db:"ordinance_infraction_report_no" json:"ordinance_infraction_report_no,omitempty"`
	SmokeDensityTestResultNo    *string   `db:"smoke_density_test_result_no" json:"smoke_density_test_result_no,omitempty"`
	PlaceOfApprehension         string    `db:"place_of_apprehension" json:"place_of_apprehension"`
	DateOfApprehension          time.Time `db:"date_of_apprehension" json:"date_of_apprehension"`
	PaidDriver                  bool      `db:"paid_driver" json:"paid_driver"`
	PaidOperator                bool      `db:"paid_operator" json:"paid_operator"`
	CreatedAt                   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at" json:"updated_at"`
}

// RecordHistory rows are append-only. Once written they are never updated
// or deleted; status changes are new rows.
type RecordHistory struct {
	ID        int64     `db:"id" json:"id"`
	RecordID  int64     `db:"record_id" json:"record_id"`
	Type      string    `db:"type" json:"type"`
	Date      time.Time `db:"date" json:"date"`
	Details   *string   `db:"details" json:"details,omitempty"`
	ORNumber  *string   `db:"or_number" json:"or_number,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
