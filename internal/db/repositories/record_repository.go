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

type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db}
}

func (r *RecordRepository) InsertRecord(ctx context.Context, record *entities.Record) error {
	err := r.db.QueryRowxContext(ctx, constants.InsertRecord,
		record.PlateNumber,
		record.VehicleType,
		record.TransportGroup,
		record.OperatorCompanyName,
		record.OperatorAddress,
		record.OwnerFirstName,
		record.OwnerMiddleName,
		record.OwnerLastName,
		record.MotorNo,
		record.MotorVehicleName,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) FindByID(ctx context.Context, id int64) (*entities.Record, error) {
	var record entities.Record
	err := r.db.QueryRowxContext(ctx, constants.GetRecordById, id).StructScan(&record)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return &record, nil
}

func (r *RecordRepository) SearchByPlate(ctx context.Context, plate string, limit int) ([]entities.Record, error) {
	records := []entities.Record{}
	if err := r.db.SelectContext(ctx, &records, constants.SearchRecordsByPlate, plate, limit); err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	return records, nil
}
