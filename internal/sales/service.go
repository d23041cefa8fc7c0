package sales

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// ReportCache invalidates cached reporting aggregates after a write.
type ReportCache interface {
	Bump(ctx context.Context) error
}

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	// RestockOnCancel returns cancelled quantities to inventory. Off unless
	// explicitly enabled: cancelled goods may not be resellable.
	RestockOnCancel bool
}

// Service is the transaction engine: it drives builder, reservation and
// persistence for one sale as a single unit of work.
type Service struct {
	repo    RepositoryPort
	builder Builder
	cache   ReportCache
	logger  *slog.Logger
	cfg     ServiceConfig
	now     func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, cache ReportCache, logger *slog.Logger, cfg ServiceConfig) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// CreateSale validates, prices and commits a proposed sale. The header
// insert, the line inserts and every stock decrement share one transaction;
// any failure leaves stock and sale tables untouched.
func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (int64, error) {
	if len(input.Items) == 0 || input.Total == nil {
		return 0, ErrMissingFields
	}

	var saleID int64
	var priced PricedSale
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		priced, err = s.builder.Build(ctx, tx, input)
		if err != nil {
			return err
		}
		saleID, err = tx.InsertSale(ctx, priced.Total, s.now().UTC())
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		for _, line := range priced.Lines {
			if err := tx.InsertSaleLine(ctx, saleID, line); err != nil {
				return fmt.Errorf("insert sale line: %w", err)
			}
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// The claimed total is persisted as-is, but a drift from the computed
	// line subtotals is worth surfacing to operators.
	if math.Abs(priced.Total-priced.ComputedTotal) > 0.005 && s.logger != nil {
		s.logger.Warn("sale total differs from computed subtotals",
			slog.Int64("sale_id", saleID),
			slog.Float64("claimed", priced.Total),
			slog.Float64("computed", priced.ComputedTotal))
	}
	s.bumpCache(ctx)
	return saleID, nil
}

// CancelSale marks the sale inactive. Cancelling an already-cancelled sale
// succeeds without further effect.
func (s *Service) CancelSale(ctx context.Context, saleID int64) error {
	if saleID <= 0 {
		return ErrSaleNotFound
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		status, err := tx.GetSaleStatusForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s.cfg.RestockOnCancel && status == SaleStatusActive {
			lines, err := tx.SaleLines(ctx, saleID)
			if err != nil {
				return err
			}
			for _, line := range lines {
				if err := tx.RestoreStock(ctx, line.ProductID, line.Quantity); err != nil {
					return fmt.Errorf("restore stock: %w", err)
				}
			}
		}
		return tx.CancelSale(ctx, saleID)
	})
	if err != nil {
		return err
	}
	s.bumpCache(ctx)
	return nil
}

func (s *Service) bumpCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("report cache bump", slog.Any("error", err))
	}
}
