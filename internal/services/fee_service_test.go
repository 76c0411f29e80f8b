package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/models/dtos"
	"bantay-usok/lungsod/internal/models/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Prometheus collectors register globally, so the package shares one registry.
var (
	testMetricsOnce sync.Once
	testMetricsReg  *metrics.MetricsRegistry
)

func testMetrics() *metrics.MetricsRegistry {
	testMetricsOnce.Do(func() {
		testMetricsReg = metrics.NewMetricsRegistry()
	})
	return testMetricsReg
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Mock FeeStore
type mockFeeStore struct {
	insertFunc     func(ctx context.Context, fee *entities.Fee) error
	applicableFunc func(ctx context.Context, category string, level int, asOf time.Time) ([]entities.Fee, error)
	listFunc       func(ctx context.Context, category string, level int) ([]entities.Fee, error)
}

func (m *mockFeeStore) InsertFee(ctx context.Context, fee *entities.Fee) error {
	return m.insertFunc(ctx, fee)
}

func (m *mockFeeStore) ApplicableFees(ctx context.Context, category string, level int, asOf time.Time) ([]entities.Fee, error) {
	return m.applicableFunc(ctx, category, level, asOf)
}

func (m *mockFeeStore) ListByCategoryLevel(ctx context.Context, category string, level int) ([]entities.Fee, error) {
	return m.listFunc(ctx, category, level)
}

// fakeCache is an in-memory CacheInterface that records deletes.
type fakeCache struct {
	values  map[string]interface{}
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]interface{})}
}

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) { c.values[key] = value }
func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}
func (c *fakeCache) Delete(key string) {
	delete(c.values, key)
	c.deleted = append(c.deleted, key)
}
func (c *fakeCache) GetOrSet(key string, d time.Duration, loader func() (any, error)) (interface{}, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	c.values[key] = v
	return v, nil
}
func (c *fakeCache) Close() error { return nil }

func TestResolve_PicksLatestEffectiveRow(t *testing.T) {
	// Amount was 500 through 2024, raised to 750 from 2025-01-01.
	store := &mockFeeStore{
		applicableFunc: func(_ context.Context, _ string, _ int, asOf time.Time) ([]entities.Fee, error) {
			all := []entities.Fee{
				{ID: 2, Amount: 750, Category: constants.FeeCategoryApprehension, Level: 1, EffectiveDate: date("2025-01-01")},
				{ID: 1, Amount: 500, Category: constants.FeeCategoryApprehension, Level: 1, EffectiveDate: date("2024-01-01")},
			}
			applicable := make([]entities.Fee, 0, 2)
			for _, f := range all {
				if !f.EffectiveDate.After(asOf) {
					applicable = append(applicable, f)
				}
				if len(applicable) == 2 {
					break
				}
			}
			return applicable, nil
		},
	}
	svc := NewFeeService(store, newFakeCache(), testMetrics())

	res, err := svc.Resolve(context.Background(), constants.FeeCategoryApprehension, 1, date("2024-06-15"))
	require.NoError(t, err)
	assert.Equal(t, 500.0, res.Amount)
	assert.Equal(t, date("2024-01-01"), res.EffectiveDate)

	res, err = svc.Resolve(context.Background(), constants.FeeCategoryApprehension, 1, date("2025-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 750.0, res.Amount)

	// A lookup on the boundary date picks the new amount.
	res, err = svc.Resolve(context.Background(), constants.FeeCategoryApprehension, 1, date("2025-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 750.0, res.Amount)
}

func TestResolve_NoApplicableFee(t *testing.T) {
	store := &mockFeeStore{
		applicableFunc: func(context.Context, string, int, time.Time) ([]entities.Fee, error) {
			return nil, nil
		},
	}
	svc := NewFeeService(store, newFakeCache(), testMetrics())

	_, err := svc.Resolve(context.Background(), constants.FeeCategoryVoluntary, 1, date("2020-01-01"))
	assert.ErrorIs(t, err, repositories.ErrNoApplicableFee)
}

func TestResolve_AmbiguousOnEffectiveDateTie(t *testing.T) {
	store := &mockFeeStore{
		applicableFunc: func(context.Context, string, int, time.Time) ([]entities.Fee, error) {
			return []entities.Fee{
				{ID: 7, Amount: 1000, EffectiveDate: date("2025-02-01")},
				{ID: 8, Amount: 1200, EffectiveDate: date("2025-02-01")},
			}, nil
		},
	}
	svc := NewFeeService(store, newFakeCache(), testMetrics())

	_, err := svc.Resolve(context.Background(), constants.FeeCategoryImpound, 2, date("2025-06-01"))
	assert.ErrorIs(t, err, repositories.ErrAmbiguousFee)
}

func TestResolve_RejectsBadInputs(t *testing.T) {
	svc := NewFeeService(&mockFeeStore{}, newFakeCache(), testMetrics())

	_, err := svc.Resolve(context.Background(), "parking", 1, date("2025-01-01"))
	assert.ErrorIs(t, err, repositories.ErrValidation)

	_, err = svc.Resolve(context.Background(), constants.FeeCategoryApprehension, 0, date("2025-01-01"))
	assert.ErrorIs(t, err, repositories.ErrValidation)
}

func TestCreateFee_ValidatesAndInvalidatesCache(t *testing.T) {
	var inserted *entities.Fee
	store := &mockFeeStore{
		insertFunc: func(_ context.Context, fee *entities.Fee) error {
			inserted = fee
			return nil
		},
	}
	cache := newFakeCache()
	svc := NewFeeService(store, cache, testMetrics())

	fee, err := svc.CreateFee(context.Background(), dtos.CreateFeeReq{
		Amount:        750,
		Category:      constants.FeeCategoryApprehension,
		Level:         2,
		EffectiveDate: "2025-01-01",
	})
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, 750.0, fee.Amount)
	assert.Contains(t, cache.deleted, "fees:apprehension:2")

	_, err = svc.CreateFee(context.Background(), dtos.CreateFeeReq{
		Amount: 100, Category: constants.FeeCategoryApprehension, Level: 0, EffectiveDate: "2025-01-01",
	})
	assert.ErrorIs(t, err, repositories.ErrValidation)

	_, err = svc.CreateFee(context.Background(), dtos.CreateFeeReq{
		Amount: 100, Category: constants.FeeCategoryApprehension, Level: 1, EffectiveDate: "January 1",
	})
	assert.ErrorIs(t, err, repositories.ErrValidation)
}

func TestHistory_ServesFromCacheAfterFirstLoad(t *testing.T) {
	calls := 0
	store := &mockFeeStore{
		listFunc: func(context.Context, string, int) ([]entities.Fee, error) {
			calls++
			return []entities.Fee{{ID: 1, Amount: 500, EffectiveDate: date("2024-01-01")}}, nil
		},
	}
	svc := NewFeeService(store, newFakeCache(), testMetrics())

	for i := 0; i < 3; i++ {
		fees, err := svc.History(context.Background(), constants.FeeCategoryTesting, 1)
		require.NoError(t, err)
		require.Len(t, fees, 1)
	}
	assert.Equal(t, 1, calls)
}

func TestHistory_PropagatesStoreError(t *testing.T) {
	store := &mockFeeStore{
		listFunc: func(context.Context, string, int) ([]entities.Fee, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewFeeService(store, newFakeCache(), testMetrics())

	_, err := svc.History(context.Background(), constants.FeeCategoryTesting, 1)
	assert.Error(t, err)
}
