package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

const (
	MsgDriverExists      = "A driver with this license number already exists"
	MsgVehicleExists     = "A vehicle with this plate number already exists"
	MsgRoleAlreadyHeld   = "User already holds this role"
	MsgRecordNotFound    = "Record not found"
	MsgDriverNotFound    = "Driver not found"
	MsgVehicleNotFound   = "Vehicle not found"
	MsgUserNotFound      = "User not found"
	MsgViolationNotFound = "Violation not found"
	MsgNoApplicableFee   = "No fee is configured for this category and level at the given date"
	MsgAmbiguousFee      = "Conflicting fee rows share the same effective date"
)
