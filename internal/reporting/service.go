package reporting

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// Store is the query surface the service depends on.
type Store interface {
	DayTotals(ctx context.Context, from, to time.Time) (float64, int64, error)
	DayMostSold(ctx context.Context, from, to time.Time) (string, error)
	DayCancelledCount(ctx context.Context, from, to time.Time) (int64, error)
	HistoryRows(ctx context.Context, from, to time.Time) ([]HistoryRow, error)
	TopSoldProducts(ctx context.Context, categoryID *int64) ([]TopProduct, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

// Service coordinates reporting query execution with the cache layer.
type Service struct {
	store Store
	cache *Cache
	now   func() time.Time
}

// NewService wires a Store with a Cache helper.
func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// EndOfDayBalance aggregates the given calendar day. Dates must be
// YYYY-MM-DD and not in the future. Empty days return zero values with
// the most-sold name set to "No data".
func (s *Service) EndOfDayBalance(ctx context.Context, date string) (DayBalance, error) {
	if date == "" {
		return DayBalance{}, ErrMissingFields
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil || day.After(s.now()) {
		return DayBalance{}, ErrInvalidDate
	}
	from := day
	to := day.AddDate(0, 0, 1)

	var balance DayBalance
	key, err := s.cache.BuildKey(ctx, keyDayBalance(date)...)
	if err != nil {
		return DayBalance{}, err
	}
	err = s.cache.FetchJSON(ctx, key, &balance, func(ctx context.Context) (interface{}, error) {
		return s.loadDayBalance(ctx, from, to)
	})
	return balance, err
}

// The three aggregates are independent, so they run concurrently.
func (s *Service) loadDayBalance(ctx context.Context, from, to time.Time) (DayBalance, error) {
	var (
		total     float64
		count     int64
		mostSold  string
		cancelled int64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, count, err = s.store.DayTotals(ctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		mostSold, err = s.store.DayMostSold(ctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		cancelled, err = s.store.DayCancelledCount(ctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return DayBalance{}, err
	}

	balance := DayBalance{
		MostSoldProduct:  mostSold,
		TotalSales:       total,
		TransactionCount: count,
		CancelledCount:   cancelled,
	}
	if balance.MostSoldProduct == "" {
		balance.MostSoldProduct = NoData
	}
	if count > 0 {
		balance.AverageSale = total / float64(count)
	}
	return balance, nil
}

// SalesHistory returns every sale created in the inclusive [start, end] day
// range, grouped with its line items. The end date may equal the start date.
func (s *Service) SalesHistory(ctx context.Context, start, end string) ([]HistorySale, error) {
	if start == "" || end == "" {
		return nil, ErrMissingFields
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, ErrInvalidDate
	}
	last, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to := last.AddDate(0, 0, 1)
	if !from.Before(to) {
		return nil, ErrInvalidDateRange
	}

	var sales []HistorySale
	key, err := s.cache.BuildKey(ctx, keyHistory(start, end)...)
	if err != nil {
		return nil, err
	}
	err = s.cache.FetchJSON(ctx, key, &sales, func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.HistoryRows(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return groupHistory(rows), nil
	})
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// groupHistory folds flat join rows into sales with nested lines, keeping
// the row order of first appearance.
func groupHistory(rows []HistoryRow) []HistorySale {
	sales := make([]HistorySale, 0, len(rows))
	index := make(map[int64]int, len(rows))
	for _, row := range rows {
		i, ok := index[row.SaleID]
		if !ok {
			i = len(sales)
			index[row.SaleID] = i
			sales = append(sales, HistorySale{
				SaleID:    row.SaleID,
				CreatedAt: row.CreatedAt.Format("2006-01-02 15:04:05"),
				Status:    row.Status,
				Total:     row.Total,
			})
		}
		sales[i].Products = append(sales[i].Products, HistoryLine{
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
		})
	}
	return sales
}

// TopSoldProducts ranks the ten best selling products across active sales,
// optionally restricted to one category.
func (s *Service) TopSoldProducts(ctx context.Context, categoryID *int64) ([]TopProduct, error) {
	if categoryID != nil {
		exists, err := s.store.CategoryExists(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCategoryNotFound
		}
	}

	var products []TopProduct
	key, err := s.cache.BuildKey(ctx, keyTopSold(categoryID)...)
	if err != nil {
		return nil, err
	}
	err = s.cache.FetchJSON(ctx, key, &products, func(ctx context.Context) (interface{}, error) {
		return s.store.TopSoldProducts(ctx, categoryID)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}
