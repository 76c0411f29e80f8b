package constants

// Record history entry types. History rows are insert-only; the latest row
// by (date, id) is the record's current state.
const (
	HistoryTypeViolation = "violation"
	HistoryTypePayment   = "payment"
	HistoryTypeClearance = "clearance"
)

// Record history statuses
const (
	HistoryStatusCompleted = "completed"
	HistoryStatusPending   = "pending"
	HistoryStatusCancelled = "cancelled"
)

// Fee categories. Each (category, level) pair carries its own
// effective-dated version history in the fees table.
const (
	FeeCategoryApprehension = "apprehension"
	FeeCategoryVoluntary    = "voluntary"
	FeeCategoryImpound      = "impound"
	FeeCategoryTesting      = "testing"
)
