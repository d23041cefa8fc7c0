package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/balu-pos/balu-pos/internal/catalog/products"
)

// LowStockScanJob sweeps the catalog for products running out of stock and
// surfaces them in the logs for the morning restock round.
type LowStockScanJob struct {
	Products *products.Service
	Logger   *slog.Logger
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(productsSvc *products.Service, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{Products: productsSvc, Logger: logger}
}

// Handle processes low stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Products == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	list, err := j.Products.LowStock(ctx)
	if err != nil {
		j.logger().Error("low stock scan", slog.Any("error", err))
		return err
	}
	if len(list) == 0 {
		j.logger().Info("low stock scan clean")
		return nil
	}
	for _, p := range list {
		j.logger().Warn("product running low",
			slog.Int64("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int("stock", p.Stock))
	}
	j.logger().Info("low stock scan finished", slog.Int("flagged", len(list)))
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
