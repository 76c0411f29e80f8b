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

type ViolationRepository struct {
	db *sqlx.DB
}

func NewViolationRepository(db *sqlx.DB) *ViolationRepository {
	return &ViolationRepository{db}
}

// Insert writes one violation. q may be the pool or an open transaction so
// the write can share a transaction with the record-history append.
// A dangling record or driver reference maps to ErrNotFound.
func (r *ViolationRepository) Insert(ctx context.Context, q sqlx.QueryerContext, violation *entities.Violation) error {
	err := q.QueryRowxContext(ctx, constants.InsertViolation,
		violation.RecordID,
		violation.DriverID,
		violation.OrdinanceInfractionReportNo,
		violation.SmokeDensityTestResultNo,
		violation.PlaceOfApprehension,
		violation.DateOfApprehension,
		violation.PaidDriver,
		violation.PaidOperator,
	).Scan(&violation.ID, &violation.CreatedAt, &violation.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("violation references missing record or driver: %w", ErrNotFound)
		}
		return fmt.Errorf("insert violation: %w", err)
	}
	return nil
}

func (r *ViolationRepository) FindByID(ctx context.Context, id int64) (*entities.Violation, error) {
	var violation entities.Violation
	err := r.db.QueryRowxContext(ctx, constants.GetViolationById, id).StructScan(&violation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("violation %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find violation: %w", err)
	}
	return &violation, nil
}

func (r *ViolationRepository) ListByRecord(ctx context.Context, recordID int64) ([]entities.Violation, error) {
	violations := []entities.Violation{}
	if err := r.db.SelectContext(ctx, &violations, constants.GetViolationsByRecord, recordID); err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	return violations, nil
}

// MarkPaid flips the requested payment flags. Flags only ever move from
// false to true; the UPDATE never clears a previously recorded payment.
func (r *ViolationRepository) MarkPaid(ctx context.Context, q sqlx.QueryerContext, id int64, paidDriver, paidOperator bool) (*entities.Violation, error) {
	var violation entities.Violation
	err := q.QueryRowxContext(ctx, constants.MarkViolationPaid, id, paidDriver, paidOperator).StructScan(&violation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("violation %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("mark violation paid: %w", err)
	}
	return &violation, nil
}
