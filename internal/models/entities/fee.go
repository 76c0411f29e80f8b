package entities

import "time"

// Fee is an effective-dated configuration row. A (category, level) pair may
// carry many rows with different effective dates; for any lookup date the
// row with the latest effective_date not after that date applies.
type Fee struct {
	ID            int64     `db:"id" json:"id"`
	Amount        float64   `db:"amount" json:"amount"`
	Category      string    `db:"category" json:"category"`
	Level         int       `db:"level" json:"level"`
	EffectiveDate time.Time `db:"effective_date" json:"effective_date"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
