package dtos

type CreateDriverReq struct {
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      string  `json:"last_name"`
	Address       string  `json:"address"`
	LicenseNumber string  `json:"license_number"`
}

type CreateRecordReq struct {
	PlateNumber         string  `json:"plate_number"`
	VehicleType         string  `json:"vehicle_type"`
	TransportGroup      *string `json:"transport_group,omitempty"`
	OperatorCompanyName string  `json:"operator_company_name"`
	OperatorAddress     *string `json:"operator_address,omitempty"`
	OwnerFirstName      *string `json:"owner_first_name,omitempty"`
	OwnerMiddleName     *string `json:"owner_middle_name,omitempty"`
	OwnerLastName       *string `json:"owner_last_name,omitempty"`
	MotorNo             *string `json:"motor_no,omitempty"`
	MotorVehicleName    *string `json:"motor_vehicle_name,omitempty"`
}

type RecordViolationReq struct {
	DriverID                    *string `json:"driver_id,omitempty"`
	OrdinanceInfractionReportNo *string `json:"ordinance_infraction_report_no,omitempty"`
	SmokeDensityTestResultNo    *string `json:"smoke_density_test_result_no,omitempty"`
	PlaceOfApprehension         string  `json:"place_of_apprehension"`
	DateOfApprehension          string  `json:"date_of_apprehension"` // YYYY-MM-DD
}

type PayViolationReq struct {
	PayerDriver   bool    `json:"payer_driver"`
	PayerOperator bool    `json:"payer_operator"`
	ORNumber      *string `json:"or_number,omitempty"`
}

type CreateFeeReq struct {
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Level         int     `json:"level"`
	EffectiveDate string  `json:"effective_date"` // YYYY-MM-DD
}

type CreateVehicleReq struct {
	PlateNumber   string  `json:"plate_number"`
	DriverName    string  `json:"driver_name"`
	ContactNumber *string `json:"contact_number,omitempty"`
	OfficeName    string  `json:"office_name"`
	VehicleType   string  `json:"vehicle_type"`
	EngineType    string  `json:"engine_type"`
	Wheels        int     `json:"wheels"`
}

type ReassignDriverReq struct {
	DriverName string `json:"driver_name"`
}

type LogTestReq struct {
	TestDate string `json:"test_date"` // YYYY-MM-DD
	Quarter  int    `json:"quarter"`
	Year     int    `json:"year"`
	Result   bool   `json:"result"`
}

type CreateScheduleReq struct {
	Year              int    `json:"year"`
	Quarter           int    `json:"quarter"`
	AssignedPersonnel string `json:"assigned_personnel"`
	Location          string `json:"location"`
	ConductedOn       string `json:"conducted_on"` // YYYY-MM-DD
}

type CreateUserReq struct {
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Department   *string `json:"department,omitempty"`
}

type AssignRoleReq struct {
	Role string `json:"role"`
}
