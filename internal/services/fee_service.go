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
)

// FeeStore is the persistence surface the fee service needs.
type FeeStore interface {
	InsertFee(ctx context.Context, fee *entities.Fee) error
	ApplicableFees(ctx context.Context, category string, level int, asOf time.Time) ([]entities.Fee, error)
	ListByCategoryLevel(ctx context.Context, category string, level int) ([]entities.Fee, error)
}

// FeeService resolves effective-dated fee amounts and manages the fee
// configuration history.
type FeeService struct {
	repo    FeeStore
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

// NewFeeService creates a new fee service
func NewFeeService(repo FeeStore, cache common.CacheInterface, registry *metrics.MetricsRegistry) *FeeService {
	return &FeeService{repo: repo, cache: cache, metrics: registry}
}

var validFeeCategories = map[string]bool{
	constants.FeeCategoryApprehension: true,
	constants.FeeCategoryVoluntary:    true,
	constants.FeeCategoryImpound:      true,
	constants.FeeCategoryTesting:      true,
}

func feeHistoryCacheKey(category string, level int) string {
	return fmt.Sprintf("fees:%s:%d", category, level)
}

// CreateFee appends a new fee version. Existing rows for the pair are never
// touched; the new row simply becomes the applicable one from its effective
// date forward.
func (s *FeeService) CreateFee(ctx context.Context, req dtos.CreateFeeReq) (*entities.Fee, error) {
	if !validFeeCategories[req.Category] {
		return nil, fmt.Errorf("unknown fee category %q: %w", req.Category, repositories.ErrValidation)
	}
	if req.Level < 1 {
		return nil, fmt.Errorf("fee level must be at least 1: %w", repositories.ErrValidation)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("fee amount must not be negative: %w", repositories.ErrValidation)
	}
	effectiveDate, err := common.ParseDateOnly(req.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("invalid effective_date: %w", repositories.ErrValidation)
	}

	fee := &entities.Fee{
		Amount:        req.Amount,
		Category:      req.Category,
		Level:         req.Level,
		EffectiveDate: effectiveDate,
	}
	if err := s.repo.InsertFee(ctx, fee); err != nil {
		return nil, err
	}

	s.cache.Delete(feeHistoryCacheKey(fee.Category, fee.Level))

	logging.Info("Fee version created",
		"category", fee.Category, "level", fee.Level,
		"amount", fee.Amount, "effective_date", req.EffectiveDate)
	return fee, nil
}

// Resolve returns the fee amount in force for a category and level at the
// given date. The applicable row is the one with the latest effective date
// not after asOf; two rows tied on that date make the configuration
// ambiguous and the lookup fails rather than guessing.
func (s *FeeService) Resolve(ctx context.Context, category string, level int, asOf time.Time) (*dtos.FeeResolutionResponse, error) {
	if !validFeeCategories[category] {
		s.metrics.FeeLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("unknown fee category %q: %w", category, repositories.ErrValidation)
	}
	if level < 1 {
		s.metrics.FeeLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("fee level must be at least 1: %w", repositories.ErrValidation)
	}

	fees, err := s.repo.ApplicableFees(ctx, category, level, asOf)
	if err != nil {
		return nil, err
	}
	if len(fees) == 0 {
		s.metrics.FeeLookupsTotal.WithLabelValues("none").Inc()
		return nil, fmt.Errorf("category %s level %d as of %s: %w",
			category, level, asOf.Format("2006-01-02"), repositories.ErrNoApplicableFee)
	}
	if len(fees) > 1 && fees[0].EffectiveDate.Equal(fees[1].EffectiveDate) {
		s.metrics.FeeLookupsTotal.WithLabelValues("ambiguous").Inc()
		return nil, fmt.Errorf("category %s level %d has %d rows effective %s: %w",
			category, level, len(fees), fees[0].EffectiveDate.Format("2006-01-02"), repositories.ErrAmbiguousFee)
	}

	s.metrics.FeeLookupsTotal.WithLabelValues("resolved").Inc()
	return &dtos.FeeResolutionResponse{
		Category:      category,
		Level:         level,
		AsOf:          asOf.Format("2006-01-02"),
		Amount:        fees[0].Amount,
		EffectiveDate: fees[0].EffectiveDate,
	}, nil
}

// History lists every fee version recorded for a category and level. The
// listing is read-heavy and changes only on CreateFee, so it sits behind
// the cache.
func (s *FeeService) History(ctx context.Context, category string, level int) ([]entities.Fee, error) {
	if !validFeeCategories[category] {
		return nil, fmt.Errorf("unknown fee category %q: %w", category, repositories.ErrValidation)
	}
	if level < 1 {
		return nil, fmt.Errorf("fee level must be at least 1: %w", repositories.ErrValidation)
	}

	key := feeHistoryCacheKey(category, level)
	cached, err := s.cache.GetOrSet(key, 5*time.Minute, func() (any, error) {
		s.metrics.CacheMissesTotal.WithLabelValues("fees").Inc()
		return s.repo.ListByCategoryLevel(ctx, category, level)
	})
	if err != nil {
		return nil, err
	}
	if fees, ok := cached.([]entities.Fee); ok {
		return fees, nil
	}
	// Redis round-trips lose the concrete type; fall through to the database.
	return s.repo.ListByCategoryLevel(ctx, category, level)
}
