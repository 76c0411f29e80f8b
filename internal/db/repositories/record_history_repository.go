package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// RecordHistoryRepository is the append-only ledger for record events.
// It deliberately exposes no update or delete methods; immutability of
// history rows is enforced here, not by caller discipline.
type RecordHistoryRepository struct {
	db *sqlx.DB
}

func NewRecordHistoryRepository(db *sqlx.DB) *RecordHistoryRepository {
	return &RecordHistoryRepository{db}
}

// LockRecord takes a row-level lock on the parent record so concurrent
// appends to the same record serialize. Must run inside a transaction.
func (r *RecordHistoryRepository) LockRecord(ctx context.Context, tx *sqlx.Tx, recordID int64) error {
	var id int64
	err := tx.QueryRowxContext(ctx, constants.LockRecordById, recordID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("record %d: %w", recordID, ErrNotFound)
		}
		return fmt.Errorf("lock record: %w", err)
	}
	return nil
}

// Append inserts one history row. Appending the same event twice yields
// two rows; the ledger never coalesces entries.
func (r *RecordHistoryRepository) Append(ctx context.Context, q sqlx.QueryerContext, entry *entities.RecordHistory) error {
	err := q.QueryRowxContext(ctx, constants.InsertRecordHistory,
		entry.RecordID,
		entry.Type,
		entry.Date,
		entry.Details,
		entry.ORNumber,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("record %d: %w", entry.RecordID, ErrNotFound)
		}
		return fmt.Errorf("append record history: %w", err)
	}
	return nil
}

func (r *RecordHistoryRepository) ListByRecord(ctx context.Context, recordID int64) ([]entities.RecordHistory, error) {
	entries := []entities.RecordHistory{}
	if err := r.db.SelectContext(ctx, &entries, constants.GetRecordHistoryByRecord, recordID); err != nil {
		return nil, fmt.Errorf("list record history: %w", err)
	}
	return entries, nil
}

// CurrentStatus returns the latest history row for a record: max(date),
// with the sequence id breaking same-day ties by insertion order.
func (r *RecordHistoryRepository) CurrentStatus(ctx context.Context, recordID int64) (*entities.RecordHistory, error) {
	var entry entities.RecordHistory
	err := r.db.QueryRowxContext(ctx, constants.GetCurrentRecordStatus, recordID).StructScan(&entry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %d has no history: %w", recordID, ErrNotFound)
		}
		return nil, fmt.Errorf("current record status: %w", err)
	}
	return &entry, nil
}
