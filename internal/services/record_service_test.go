package services

import (
	"context"
	"testing"
	"time"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/models/dtos"
	"bantay-usok/lungsod/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxRunner invokes the transaction body directly. The mock stores never
// touch the tx handle.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) RunTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type mockRecordStore struct {
	insertFunc func(ctx context.Context, record *entities.Record) error
	findFunc   func(ctx context.Context, id int64) (*entities.Record, error)
	searchFunc func(ctx context.Context, plate string, limit int) ([]entities.Record, error)
}

func (m *mockRecordStore) InsertRecord(ctx context.Context, record *entities.Record) error {
	return m.insertFunc(ctx, record)
}
func (m *mockRecordStore) FindByID(ctx context.Context, id int64) (*entities.Record, error) {
	return m.findFunc(ctx, id)
}
func (m *mockRecordStore) SearchByPlate(ctx context.Context, plate string, limit int) ([]entities.Record, error) {
	return m.searchFunc(ctx, plate, limit)
}

type mockViolationStore struct {
	insertFunc   func(ctx context.Context, q sqlx.QueryerContext, v *entities.Violation) error
	findFunc     func(ctx context.Context, id int64) (*entities.Violation, error)
	listFunc     func(ctx context.Context, recordID int64) ([]entities.Violation, error)
	markPaidFunc func(ctx context.Context, q sqlx.QueryerContext, id int64, paidDriver, paidOperator bool) (*entities.Violation, error)
}

func (m *mockViolationStore) Insert(ctx context.Context, q sqlx.QueryerContext, v *entities.Violation) error {
	return m.insertFunc(ctx, q, v)
}
func (m *mockViolationStore) FindByID(ctx context.Context, id int64) (*entities.Violation, error) {
	return m.findFunc(ctx, id)
}
func (m *mockViolationStore) ListByRecord(ctx context.Context, recordID int64) ([]entities.Violation, error) {
	return m.listFunc(ctx, recordID)
}
func (m *mockViolationStore) MarkPaid(ctx context.Context, q sqlx.QueryerContext, id int64, paidDriver, paidOperator bool) (*entities.Violation, error) {
	return m.markPaidFunc(ctx, q, id, paidDriver, paidOperator)
}

type mockHistoryStore struct {
	lockFunc    func(ctx context.Context, tx *sqlx.Tx, recordID int64) error
	appendFunc  func(ctx context.Context, q sqlx.QueryerContext, entry *entities.RecordHistory) error
	listFunc    func(ctx context.Context, recordID int64) ([]entities.RecordHistory, error)
	currentFunc func(ctx context.Context, recordID int64) (*entities.RecordHistory, error)
}

func (m *mockHistoryStore) LockRecord(ctx context.Context, tx *sqlx.Tx, recordID int64) error {
	return m.lockFunc(ctx, tx, recordID)
}
func (m *mockHistoryStore) Append(ctx context.Context, q sqlx.QueryerContext, entry *entities.RecordHistory) error {
	return m.appendFunc(ctx, q, entry)
}
func (m *mockHistoryStore) ListByRecord(ctx context.Context, recordID int64) ([]entities.RecordHistory, error) {
	return m.listFunc(ctx, recordID)
}
func (m *mockHistoryStore) CurrentStatus(ctx context.Context, recordID int64) (*entities.RecordHistory, error) {
	return m.currentFunc(ctx, recordID)
}

type mockFeeResolver struct {
	resolveFunc func(ctx context.Context, category string, level int, asOf time.Time) (*dtos.FeeResolutionResponse, error)
}

func (m *mockFeeResolver) Resolve(ctx context.Context, category string, level int, asOf time.Time) (*dtos.FeeResolutionResponse, error) {
	return m.resolveFunc(ctx, category, level, asOf)
}

func TestRecordViolation_AppendsHistoryInSameTx(t *testing.T) {
	tx := &fakeTxRunner{}
	var callOrder []string

	violations := &mockViolationStore{
		insertFunc: func(_ context.Context, _ sqlx.QueryerContext, v *entities.Violation) error {
			callOrder = append(callOrder, "insert_violation")
			v.ID = 11
			return nil
		},
	}
	history := &mockHistoryStore{
		lockFunc: func(_ context.Context, _ *sqlx.Tx, recordID int64) error {
			callOrder = append(callOrder, "lock_record")
			assert.Equal(t, int64(5), recordID)
			return nil
		},
		appendFunc: func(_ context.Context, _ sqlx.QueryerContext, entry *entities.RecordHistory) error {
			callOrder = append(callOrder, "append_history")
			assert.Equal(t, constants.HistoryTypeViolation, entry.Type)
			assert.Equal(t, constants.HistoryStatusPending, entry.Status)
			assert.Equal(t, int64(5), entry.RecordID)
			require.NotNil(t, entry.Details)
			return nil
		},
	}

	svc := NewRecordService(tx, &mockRecordStore{}, violations, history, &mockFeeResolver{}, testMetrics())

	v, err := svc.RecordViolation(context.Background(), 5, dtos.RecordViolationReq{
		PlaceOfApprehension: "EDSA corner Timog",
		DateOfApprehension:  "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), v.ID)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []string{"lock_record", "insert_violation", "append_history"}, callOrder)
}

func TestRecordViolation_MissingRecord(t *testing.T) {
	history := &mockHistoryStore{
		lockFunc: func(context.Context, *sqlx.Tx, int64) error {
			return repositories.ErrNotFound
		},
	}
	violations := &mockViolationStore{
		insertFunc: func(context.Context, sqlx.QueryerContext, *entities.Violation) error {
			t.Fatal("violation must not be inserted when the record is missing")
			return nil
		},
	}

	svc := NewRecordService(&fakeTxRunner{}, &mockRecordStore{}, violations, history, &mockFeeResolver{}, testMetrics())

	_, err := svc.RecordViolation(context.Background(), 99, dtos.RecordViolationReq{
		PlaceOfApprehension: "Quezon Ave",
		DateOfApprehension:  "2025-03-10",
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecordViolation_RejectsBadDate(t *testing.T) {
	svc := NewRecordService(&fakeTxRunner{}, &mockRecordStore{}, &mockViolationStore{}, &mockHistoryStore{}, &mockFeeResolver{}, testMetrics())

	_, err := svc.RecordViolation(context.Background(), 5, dtos.RecordViolationReq{
		PlaceOfApprehension: "Quezon Ave",
		DateOfApprehension:  "10-03-2025",
	})
	assert.ErrorIs(t, err, repositories.ErrValidation)
}

func TestPayViolation_PricesAtApprehensionDateAndLevel(t *testing.T) {
	apprehended := date("2025-02-20")

	violations := &mockViolationStore{
		findFunc: func(_ context.Context, id int64) (*entities.Violation, error) {
			return &entities.Violation{ID: id, RecordID: 3, DateOfApprehension: apprehended}, nil
		},
		listFunc: func(context.Context, int64) ([]entities.Violation, error) {
			// Two earlier offenses make this the third.
			return []entities.Violation{
				{ID: 10, RecordID: 3, DateOfApprehension: date("2024-11-02")},
				{ID: 15, RecordID: 3, DateOfApprehension: date("2025-01-08")},
				{ID: 21, RecordID: 3, DateOfApprehension: apprehended},
			}, nil
		},
		markPaidFunc: func(_ context.Context, _ sqlx.QueryerContext, id int64, paidDriver, paidOperator bool) (*entities.Violation, error) {
			assert.True(t, paidDriver)
			assert.False(t, paidOperator)
			return &entities.Violation{ID: id, RecordID: 3, DateOfApprehension: apprehended, PaidDriver: true}, nil
		},
	}

	var appended *entities.RecordHistory
	history := &mockHistoryStore{
		lockFunc: func(context.Context, *sqlx.Tx, int64) error { return nil },
		appendFunc: func(_ context.Context, _ sqlx.QueryerContext, entry *entities.RecordHistory) error {
			appended = entry
			return nil
		},
	}

	var resolvedLevel int
	var resolvedAsOf time.Time
	resolver := &mockFeeResolver{
		resolveFunc: func(_ context.Context, category string, level int, asOf time.Time) (*dtos.FeeResolutionResponse, error) {
			assert.Equal(t, constants.FeeCategoryApprehension, category)
			resolvedLevel = level
			resolvedAsOf = asOf
			return &dtos.FeeResolutionResponse{Category: category, Level: level, Amount: 2500}, nil
		},
	}

	svc := NewRecordService(&fakeTxRunner{}, &mockRecordStore{}, violations, history, resolver, testMetrics())

	orNumber := "OR-2025-0042"
	payment, err := svc.PayViolation(context.Background(), 21, dtos.PayViolationReq{
		PayerDriver: true,
		ORNumber:    &orNumber,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resolvedLevel)
	assert.Equal(t, apprehended, resolvedAsOf)
	assert.Equal(t, 2500.0, payment.AmountOwed)

	require.NotNil(t, appended)
	assert.Equal(t, constants.HistoryTypePayment, appended.Type)
	assert.Equal(t, constants.HistoryStatusCompleted, appended.Status)
	require.NotNil(t, appended.ORNumber)
	assert.Equal(t, orNumber, *appended.ORNumber)
}

func TestPayViolation_RequiresAPayer(t *testing.T) {
	svc := NewRecordService(&fakeTxRunner{}, &mockRecordStore{}, &mockViolationStore{}, &mockHistoryStore{}, &mockFeeResolver{}, testMetrics())

	_, err := svc.PayViolation(context.Background(), 1, dtos.PayViolationReq{})
	assert.ErrorIs(t, err, repositories.ErrValidation)
}

func TestPayViolation_SurfacesFeeErrors(t *testing.T) {
	violations := &mockViolationStore{
		findFunc: func(_ context.Context, id int64) (*entities.Violation, error) {
			return &entities.Violation{ID: id, RecordID: 3, DateOfApprehension: date("2025-02-20")}, nil
		},
		listFunc: func(context.Context, int64) ([]entities.Violation, error) {
			return []entities.Violation{{ID: 1, RecordID: 3, DateOfApprehension: date("2025-02-20")}}, nil
		},
	}
	resolver := &mockFeeResolver{
		resolveFunc: func(context.Context, string, int, time.Time) (*dtos.FeeResolutionResponse, error) {
			return nil, repositories.ErrNoApplicableFee
		},
	}

	svc := NewRecordService(&fakeTxRunner{}, &mockRecordStore{}, violations, &mockHistoryStore{}, resolver, testMetrics())

	_, err := svc.PayViolation(context.Background(), 1, dtos.PayViolationReq{PayerOperator: true})
	assert.ErrorIs(t, err, repositories.ErrNoApplicableFee)
}

func TestOffenseLevel_SameDayOrdersById(t *testing.T) {
	sameDay := date("2025-04-01")
	all := []entities.Violation{
		{ID: 5, DateOfApprehension: sameDay},
		{ID: 9, DateOfApprehension: sameDay},
		{ID: 2, DateOfApprehension: date("2025-01-01")},
	}

	assert.Equal(t, 1, offenseLevel(all, &all[2]))
	assert.Equal(t, 2, offenseLevel(all, &all[0]))
	assert.Equal(t, 3, offenseLevel(all, &all[1]))
}

func TestSummary_AssemblesRecordViewConcurrently(t *testing.T) {
	records := &mockRecordStore{
		findFunc: func(_ context.Context, id int64) (*entities.Record, error) {
			return &entities.Record{ID: id, PlateNumber: "ABC-1234", OperatorCompanyName: "Metro Transit Co"}, nil
		},
	}
	violations := &mockViolationStore{
		listFunc: func(context.Context, int64) ([]entities.Violation, error) {
			return []entities.Violation{{ID: 1, RecordID: 7, DateOfApprehension: date("2025-01-05")}}, nil
		},
	}
	details := "Apprehended at EDSA"
	history := &mockHistoryStore{
		listFunc: func(context.Context, int64) ([]entities.RecordHistory, error) {
			return []entities.RecordHistory{
				{RecordID: 7, Type: constants.HistoryTypePayment, Status: constants.HistoryStatusCompleted, Date: date("2025-02-01")},
				{RecordID: 7, Type: constants.HistoryTypeViolation, Status: constants.HistoryStatusPending, Date: date("2025-01-05"), Details: &details},
			}, nil
		},
	}

	svc := NewRecordService(&fakeTxRunner{}, records, violations, history, &mockFeeResolver{}, testMetrics())

	summary, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ABC-1234", summary.PlateNumber)
	assert.Equal(t, "Metro Transit Co", summary.Operator)
	assert.Len(t, summary.Violations, 1)
	assert.Len(t, summary.History, 2)
	require.NotNil(t, summary.CurrentStatus)
	assert.Equal(t, constants.HistoryTypePayment, summary.CurrentStatus.Type)
}

func TestRecordClearance_AppendsCompletedEntry(t *testing.T) {
	var appended *entities.RecordHistory
	history := &mockHistoryStore{
		lockFunc: func(context.Context, *sqlx.Tx, int64) error { return nil },
		appendFunc: func(_ context.Context, _ sqlx.QueryerContext, entry *entities.RecordHistory) error {
			appended = entry
			return nil
		},
	}

	svc := NewRecordService(&fakeTxRunner{}, &mockRecordStore{}, &mockViolationStore{}, history, &mockFeeResolver{}, testMetrics())

	entry, err := svc.RecordClearance(context.Background(), 4, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, appended)
	assert.Equal(t, constants.HistoryTypeClearance, entry.Type)
	assert.Equal(t, constants.HistoryStatusCompleted, entry.Status)
}
