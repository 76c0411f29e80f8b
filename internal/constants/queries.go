package constants

const (
	InsertDriver = `
	INSERT INTO drivers (first_name, middle_name, last_name, address, license_number)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
	`

	GetDriverById = `
	SELECT * FROM drivers WHERE id = $1
	`

	GetDriverByLicense = `
	SELECT * FROM drivers WHERE license_number = $1
	`

	SearchDriversByName = `
	SELECT * FROM drivers
	WHERE last_name ILIKE '%' || $1 || '%' OR first_name ILIKE '%' || $1 || '%'
	ORDER BY last_name, first_name
	LIMIT $2
	`

	InsertRecord = `
	INSERT INTO records (
		plate_number, vehicle_type, transport_group, operator_company_name,
		operator_address, owner_first_name, owner_middle_name, owner_last_name,
		motor_no, motor_vehicle_name
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at, updated_at
	`

	GetRecordById = `
	SELECT * FROM records WHERE id = $1
	`

	SearchRecordsByPlate = `
	SELECT * FROM records WHERE plate_number ILIKE '%' || $1 || '%' ORDER BY id LIMIT $2
	`

	LockRecordById = `
	SELECT id FROM records WHERE id = $1 FOR UPDATE
	`

	InsertViolation = `
	INSERT INTO violations (
		record_id, driver_id, ordinance_infraction_report_no,
		smoke_density_test_result_no, place_of_apprehension,
		date_of_apprehension, paid_driver, paid_operator
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at, updated_at
	`

	GetViolationById = `
	SELECT * FROM violations WHERE id = $1
	`

	GetViolationsByRecord = `
	SELECT * FROM violations WHERE record_id = $1 ORDER BY date_of_apprehension, id
	`

	MarkViolationPaid = `
	UPDATE violations
	SET paid_driver = paid_driver OR $2,
	    paid_operator = paid_operator OR $3,
	    updated_at = CURRENT_TIMESTAMP
	WHERE id = $1
	RETURNING *
	`

	InsertFee = `
	INSERT INTO fees (amount, category, level, effective_date)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`

	GetFeesByCategoryLevel = `
	SELECT * FROM fees WHERE category = $1 AND level = $2 ORDER BY effective_date DESC, id
	`

	// The top two candidate rows are enough to resolve an effective-dated
	// lookup and to detect an effective_date tie.
	GetApplicableFees = `
	SELECT * FROM fees
	WHERE category = $1 AND level = $2 AND effective_date <= $3
	ORDER BY effective_date DESC, id
	LIMIT 2
	`

	InsertRecordHistory = `
	INSERT INTO record_history (record_id, type, date, details, or_number, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`

	GetRecordHistoryByRecord = `
	SELECT * FROM record_history WHERE record_id = $1 ORDER BY date DESC, id DESC
	`

	// Latest event wins; id breaks same-day ties by insertion order.
	GetCurrentRecordStatus = `
	SELECT * FROM record_history WHERE record_id = $1 ORDER BY date DESC, id DESC LIMIT 1
	`
)
