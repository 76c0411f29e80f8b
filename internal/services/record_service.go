package services

import (
	"context"
	"fmt"
	"time"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/logging"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/models/dtos"
	"bantay-usok/lungsod/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// SqlxTxRunner runs transactions on a sqlx database handle.
type SqlxTxRunner struct {
	DB *sqlx.DB
}

func (r SqlxTxRunner) RunTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return repositories.WithinTx(ctx, r.DB, fn)
}

// RecordStore is the persistence surface for smoke-belching records.
type RecordStore interface {
	InsertRecord(ctx context.Context, record *entities.Record) error
	FindByID(ctx context.Context, id int64) (*entities.Record, error)
	SearchByPlate(ctx context.Context, plate string, limit int) ([]entities.Record, error)
}

// ViolationStore is the persistence surface for violations. Write methods
// accept the querier so they can run inside a caller-held transaction.
type ViolationStore interface {
	Insert(ctx context.Context, q sqlx.QueryerContext, violation *entities.Violation) error
	FindByID(ctx context.Context, id int64) (*entities.Violation, error)
	ListByRecord(ctx context.Context, recordID int64) ([]entities.Violation, error)
	MarkPaid(ctx context.Context, q sqlx.QueryerContext, id int64, paidDriver, paidOperator bool) (*entities.Violation, error)
}

// RecordHistoryStore is the persistence surface for the record audit trail.
type RecordHistoryStore interface {
	LockRecord(ctx context.Context, tx *sqlx.Tx, recordID int64) error
	Append(ctx context.Context, q sqlx.QueryerContext, entry *entities.RecordHistory) error
	ListByRecord(ctx context.Context, recordID int64) ([]entities.RecordHistory, error)
	CurrentStatus(ctx context.Context, recordID int64) (*entities.RecordHistory, error)
}

// FeeResolver resolves the fee amount in force at a date.
type FeeResolver interface {
	Resolve(ctx context.Context, category string, level int, asOf time.Time) (*dtos.FeeResolutionResponse, error)
}

// RecordService owns the smoke-belching record lifecycle: filings,
// violations, payments and the append-only history trail behind them.
type RecordService struct {
	tx         TxRunner
	records    RecordStore
	violations ViolationStore
	history    RecordHistoryStore
	fees       FeeResolver
	metrics    *metrics.MetricsRegistry
}

// NewRecordService creates a new record service
func NewRecordService(tx TxRunner, records RecordStore, violations ViolationStore, history RecordHistoryStore, fees FeeResolver, registry *metrics.MetricsRegistry) *RecordService {
	return &RecordService{
		tx:         tx,
		records:    records,
		violations: violations,
		history:    history,
		fees:       fees,
		metrics:    registry,
	}
}

// CreateRecord files a new record for a vehicle and operator.
func (s *RecordService) CreateRecord(ctx context.Context, req dtos.CreateRecordReq) (*entities.Record, error) {
	if req.PlateNumber == "" {
		return nil, fmt.Errorf("plate_number is required: %w", repositories.ErrValidation)
	}
	if req.OperatorCompanyName == "" {
		return nil, fmt.Errorf("operator_company_name is required: %w", repositories.ErrValidation)
	}

	record := &entities.Record{
		PlateNumber:         req.PlateNumber,
		VehicleType:         req.VehicleType,
		TransportGroup:      req.TransportGroup,
		OperatorCompanyName: req.OperatorCompanyName,
		OperatorAddress:     req.OperatorAddress,
		OwnerFirstName:      req.OwnerFirstName,
		OwnerMiddleName:     req.OwnerMiddleName,
		OwnerLastName:       req.OwnerLastName,
		MotorNo:             req.MotorNo,
		MotorVehicleName:    req.MotorVehicleName,
	}
	if err := s.records.InsertRecord(ctx, record); err != nil {
		return nil, err
	}

	logging.Info("Record created", "record_id", record.ID, "plate_number", record.PlateNumber)
	return record, nil
}

// GetRecord fetches a record by id.
func (s *RecordService) GetRecord(ctx context.Context, id int64) (*entities.Record, error) {
	return s.records.FindByID(ctx, id)
}

// SearchRecords finds records by a plate number fragment.
func (s *RecordService) SearchRecords(ctx context.Context, plate string, limit int) ([]entities.Record, error) {
	return s.records.SearchByPlate(ctx, plate, limit)
}

// RecordViolation files an apprehension against a record and appends the
// matching history row in the same transaction. The record row is locked
// first so concurrent appends for one record serialize and each history row
// lands exactly once.
func (s *RecordService) RecordViolation(ctx context.Context, recordID int64, req dtos.RecordViolationReq) (*entities.Violation, error) {
	if req.PlaceOfApprehension == "" {
		return nil, fmt.Errorf("place_of_apprehension is required: %w", repositories.ErrValidation)
	}
	apprehendedOn, err := common.ParseDateOnly(req.DateOfApprehension)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_apprehension: %w", repositories.ErrValidation)
	}

	violation := &entities.Violation{
		RecordID:                    recordID,
		DriverID:                    req.DriverID,
		OrdinanceInfractionReportNo: req.OrdinanceInfractionReportNo,
		SmokeDensityTestResultNo:    req.SmokeDensityTestResultNo,
		PlaceOfApprehension:         req.PlaceOfApprehension,
		DateOfApprehension:          apprehendedOn,
	}

	err = s.tx.RunTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.history.LockRecord(ctx, tx, recordID); err != nil {
			return err
		}
		if err := s.violations.Insert(ctx, tx, violation); err != nil {
			return err
		}
		details := fmt.Sprintf("Apprehended at %s", violation.PlaceOfApprehension)
		entry := &entities.RecordHistory{
			RecordID: recordID,
			Type:     constants.HistoryTypeViolation,
			Date:     apprehendedOn,
			Details:  &details,
			Status:   constants.HistoryStatusPending,
		}
		return s.history.Append(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ViolationsRecordedTotal.Inc()
	s.metrics.HistoryAppendsTotal.WithLabelValues("record").Inc()
	logging.Info("Violation recorded",
		"record_id", recordID, "violation_id", violation.ID,
		"place", violation.PlaceOfApprehension)
	return violation, nil
}

// offenseLevel counts where a violation falls in its record's apprehension
// order. The first offense is level 1. Same-day offenses order by id.
func offenseLevel(all []entities.Violation, v *entities.Violation) int {
	level := 0
	for _, other := range all {
		if other.DateOfApprehension.Before(v.DateOfApprehension) {
			level++
			continue
		}
		if other.DateOfApprehension.Equal(v.DateOfApprehension) && other.ID <= v.ID {
			level++
		}
	}
	if level < 1 {
		level = 1
	}
	return level
}

// PayViolation settles a violation. The amount owed comes from the fee
// schedule as it stood on the apprehension date, at the level matching the
// offense count, so later fee changes never reprice an old apprehension.
// Marking paid and the payment history row commit atomically.
func (s *RecordService) PayViolation(ctx context.Context, violationID int64, req dtos.PayViolationReq) (*dtos.PaymentResponse, error) {
	if !req.PayerDriver && !req.PayerOperator {
		return nil, fmt.Errorf("at least one payer is required: %w", repositories.ErrValidation)
	}

	violation, err := s.violations.FindByID(ctx, violationID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.violations.ListByRecord(ctx, violation.RecordID)
	if err != nil {
		return nil, err
	}
	level := offenseLevel(siblings, violation)

	resolution, err := s.fees.Resolve(ctx, constants.FeeCategoryApprehension, level, violation.DateOfApprehension)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.history.LockRecord(ctx, tx, violation.RecordID); err != nil {
			return err
		}

		paidDriver := violation.PaidDriver || req.PayerDriver
		paidOperator := violation.PaidOperator || req.PayerOperator
		updated, err := s.violations.MarkPaid(ctx, tx, violationID, paidDriver, paidOperator)
		if err != nil {
			return err
		}
		violation = updated

		details := fmt.Sprintf("Payment of %.2f for violation %d", resolution.Amount, violationID)
		entry := &entities.RecordHistory{
			RecordID: violation.RecordID,
			Type:     constants.HistoryTypePayment,
			Date:     time.Now().UTC(),
			Details:  &details,
			ORNumber: req.ORNumber,
			Status:   constants.HistoryStatusCompleted,
		}
		return s.history.Append(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.HistoryAppendsTotal.WithLabelValues("record").Inc()
	logging.Info("Violation paid",
		"violation_id", violationID, "record_id", violation.RecordID,
		"amount", resolution.Amount, "level", level)
	return &dtos.PaymentResponse{
		ViolationID: violationID,
		AmountOwed:  resolution.Amount,
		ORNumber:    req.ORNumber,
	}, nil
}

// RecordClearance appends a clearance entry to a record's history.
func (s *RecordService) RecordClearance(ctx context.Context, recordID int64, details *string, orNumber *string) (*entities.RecordHistory, error) {
	entry := &entities.RecordHistory{
		RecordID: recordID,
		Type:     constants.HistoryTypeClearance,
		Date:     time.Now().UTC(),
		Details:  details,
		ORNumber: orNumber,
		Status:   constants.HistoryStatusCompleted,
	}

	err := s.tx.RunTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.history.LockRecord(ctx, tx, recordID); err != nil {
			return err
		}
		return s.history.Append(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.HistoryAppendsTotal.WithLabelValues("record").Inc()
	return entry, nil
}

// CurrentStatus returns the latest history entry for a record.
func (s *RecordService) CurrentStatus(ctx context.Context, recordID int64) (*dtos.RecordStatusResponse, error) {
	entry, err := s.history.CurrentStatus(ctx, recordID)
	if err != nil {
		return nil, err
	}
	resp := historyToStatus(entry)
	return &resp, nil
}

// History returns a record's full audit trail, newest first.
func (s *RecordService) History(ctx context.Context, recordID int64) ([]dtos.RecordStatusResponse, error) {
	entries, err := s.history.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.RecordStatusResponse, 0, len(entries))
	for i := range entries {
		out = append(out, historyToStatus(&entries[i]))
	}
	return out, nil
}

// Summary assembles a record's full enforcement picture. The record, its
// violations and its history load concurrently.
func (s *RecordService) Summary(ctx context.Context, recordID int64) (*dtos.RecordSummaryResponse, error) {
	var (
		record     *entities.Record
		violations []entities.Violation
		history    []entities.RecordHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = s.records.FindByID(gctx, recordID)
		return err
	})
	g.Go(func() error {
		var err error
		violations, err = s.violations.ListByRecord(gctx, recordID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.history.ListByRecord(gctx, recordID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &dtos.RecordSummaryResponse{
		RecordID:    record.ID,
		PlateNumber: record.PlateNumber,
		Operator:    record.OperatorCompanyName,
		Violations:  make([]dtos.ViolationResponse, 0, len(violations)),
		History:     make([]dtos.RecordStatusResponse, 0, len(history)),
	}
	for _, v := range violations {
		summary.Violations = append(summary.Violations, dtos.ViolationResponse{
			ID:                  v.ID,
			RecordID:            v.RecordID,
			DriverID:            v.DriverID,
			PlaceOfApprehension: v.PlaceOfApprehension,
			DateOfApprehension:  v.DateOfApprehension,
			PaidDriver:          v.PaidDriver,
			PaidOperator:        v.PaidOperator,
		})
	}
	for i := range history {
		summary.History = append(summary.History, historyToStatus(&history[i]))
	}
	if len(summary.History) > 0 {
		summary.CurrentStatus = &summary.History[0]
	}
	return summary, nil
}

func historyToStatus(entry *entities.RecordHistory) dtos.RecordStatusResponse {
	return dtos.RecordStatusResponse{
		RecordID: entry.RecordID,
		Type:     entry.Type,
		Status:   entry.Status,
		Date:     entry.Date,
		Details:  entry.Details,
		ORNumber: entry.ORNumber,
	}
}
