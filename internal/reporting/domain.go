// Package reporting serves the read side of the sales data: end-of-day
// balances, per-day sales history and top sold products. Results are cached
// in Redis behind a version number the sales service bumps on every write.
package reporting

import "errors"

// NoData is reported when a day has no sales to aggregate.
const NoData = "No data"

// DayBalance summarises one calendar day of sales activity.
type DayBalance struct {
	MostSoldProduct  string  `json:"most_sold_product"`
	AverageSale      float64 `json:"average_sale"`
	TotalSales       float64 `json:"total_sales_today"`
	TransactionCount int64   `json:"total_transactions_today"`
	CancelledCount   int64   `json:"total_cancelled_transactions"`
}

// HistorySale is one sale within a history range, with its line items.
type HistorySale struct {
	SaleID    int64         `json:"sale_id"`
	CreatedAt string        `json:"createdAt"`
	Status    int           `json:"status"`
	Total     float64       `json:"total"`
	Products  []HistoryLine `json:"products"`
}

// HistoryLine carries the product as it is named and priced today; history
// rows deliberately reflect the current catalog, not the sale-time snapshot.
type HistoryLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// TopProduct is one row of the top-sold ranking.
type TopProduct struct {
	ProductName       string `json:"product_name"`
	CategoryName      string `json:"category_name"`
	TotalQuantitySold int64  `json:"total_quantity_sold"`
}

var (
	ErrMissingFields    = errors.New("reporting: date fields missing")
	ErrInvalidDate      = errors.New("reporting: invalid format or future date")
	ErrInvalidDateRange = errors.New("reporting: end date before start date")
	ErrCategoryNotFound = errors.New("reporting: category not found")
)
