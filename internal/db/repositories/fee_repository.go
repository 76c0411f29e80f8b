package repositories

import (
	"context"
	"fmt"
	"time"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type FeeRepository struct {
	db *sqlx.DB
}

func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db}
}

func (r *FeeRepository) InsertFee(ctx context.Context, fee *entities.Fee) error {
	err := r.db.QueryRowxContext(ctx, constants.InsertFee,
		fee.Amount,
		fee.Category,
		fee.Level,
		fee.EffectiveDate,
	).Scan(&fee.ID, &fee.CreatedAt, &fee.UpdatedAt)

	if err != nil {
		return fmt.Errorf("insert fee: %w", err)
	}
	return nil
}

// ApplicableFees returns up to two candidate rows for (category, level)
// effective at asOf, newest effective_date first. Two rows are enough: the
// first is the winner, and a second row sharing its effective_date exposes
// a tie the resolver must refuse.
func (r *FeeRepository) ApplicableFees(ctx context.Context, category string, level int, asOf time.Time) ([]entities.Fee, error) {
	fees := []entities.Fee{}
	if err := r.db.SelectContext(ctx, &fees, constants.GetApplicableFees, category, level, asOf); err != nil {
		return nil, fmt.Errorf("query applicable fees: %w", err)
	}
	return fees, nil
}

// ListByCategoryLevel returns the full version history for a
// (category, level) pair, newest first.
func (r *FeeRepository) ListByCategoryLevel(ctx context.Context, category string, level int) ([]entities.Fee, error) {
	fees := []entities.Fee{}
	if err := r.db.SelectContext(ctx, &fees, constants.GetFeesByCategoryLevel, category, level); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}
