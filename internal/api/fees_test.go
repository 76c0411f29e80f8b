package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/models/entities"
	"bantay-usok/lungsod/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

// Stub FeeStore backed by a fixed fee list.
type stubFeeStore struct {
	fees []entities.Fee
}

func (s *stubFeeStore) InsertFee(_ context.Context, fee *entities.Fee) error {
	s.fees = append(s.fees, *fee)
	return nil
}

func (s *stubFeeStore) ApplicableFees(_ context.Context, category string, level int, asOf time.Time) ([]entities.Fee, error) {
	var out []entities.Fee
	for _, f := range s.fees {
		if f.Category == category && f.Level == level && !f.EffectiveDate.After(asOf) {
			out = append(out, f)
		}
	}
	// Latest first, mirroring the SQL ordering, capped at two rows.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].EffectiveDate.After(out[i].EffectiveDate) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out, nil
}

func (s *stubFeeStore) ListByCategoryLevel(_ context.Context, category string, level int) ([]entities.Fee, error) {
	var out []entities.Fee
	for _, f := range s.fees {
		if f.Category == category && f.Level == level {
			out = append(out, f)
		}
	}
	return out, nil
}

func feeTestDeps(store *stubFeeStore) *Dependencies {
	cache := common.NewCacheService(60, 600)
	feeSvc := services.NewFeeService(store, cache, testMetrics())
	return &Dependencies{
		Services: &Services{Fees: feeSvc, Cache: cache},
		Metrics:  testMetrics(),
	}
}

func feeRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Get("/fees/{category}/{level}/resolve", ResolveFeeHandler(deps))
	r.Get("/fees/{category}/{level}", FeeHistoryHandler(deps))
	return r
}

func TestResolveFeeHandler_OK(t *testing.T) {
	store := &stubFeeStore{fees: []entities.Fee{
		{ID: 1, Amount: 500, Category: constants.FeeCategoryApprehension, Level: 1, EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Amount: 750, Category: constants.FeeCategoryApprehension, Level: 1, EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	router := feeRouter(feeTestDeps(store))

	req := httptest.NewRequest("GET", "/fees/apprehension/1/resolve?as_of=2024-06-15", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"amount":500`)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestResolveFeeHandler_NoApplicableFee(t *testing.T) {
	store := &stubFeeStore{fees: []entities.Fee{
		{ID: 1, Amount: 500, Category: constants.FeeCategoryApprehension, Level: 1, EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	router := feeRouter(feeTestDeps(store))

	req := httptest.NewRequest("GET", "/fees/apprehension/1/resolve?as_of=2023-01-01", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), constants.MsgNoApplicableFee)
}

func TestResolveFeeHandler_AmbiguousTie(t *testing.T) {
	effective := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	store := &stubFeeStore{fees: []entities.Fee{
		{ID: 1, Amount: 500, Category: constants.FeeCategoryImpound, Level: 2, EffectiveDate: effective},
		{ID: 2, Amount: 900, Category: constants.FeeCategoryImpound, Level: 2, EffectiveDate: effective},
	}}
	router := feeRouter(feeTestDeps(store))

	req := httptest.NewRequest("GET", "/fees/impound/2/resolve?as_of=2025-06-01", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), constants.MsgAmbiguousFee)
}

func TestResolveFeeHandler_BadInputs(t *testing.T) {
	router := feeRouter(feeTestDeps(&stubFeeStore{}))

	req := httptest.NewRequest("GET", "/fees/apprehension/abc/resolve", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("GET", "/fees/apprehension/1/resolve?as_of=last-tuesday", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("GET", "/fees/parking/1/resolve", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestFeeHistoryHandler_OK(t *testing.T) {
	store := &stubFeeStore{fees: []entities.Fee{
		{ID: 1, Amount: 500, Category: constants.FeeCategoryTesting, Level: 1, EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Amount: 600, Category: constants.FeeCategoryTesting, Level: 1, EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	router := feeRouter(feeTestDeps(store))

	req := httptest.NewRequest("GET", "/fees/testing/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"amount":600`)
}
