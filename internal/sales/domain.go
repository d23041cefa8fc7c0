package sales

import (
	"errors"
	"time"
)

// SaleStatus is the closed set of sale states. A sale is created active and
// can only move to cancelled; cancellation keeps the record for audit.
type SaleStatus int

const (
	SaleStatusCancelled SaleStatus = 0
	SaleStatusActive    SaleStatus = 1
)

// Sale is one completed point-of-sale transaction.
type Sale struct {
	ID        int64      `json:"id"`
	Total     float64    `json:"total"`
	Status    SaleStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []SaleLine `json:"products,omitempty"`
}

// SaleLine is a single product/quantity pair within a sale. UnitPrice is the
// catalog price captured when the sale was built.
type SaleLine struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// PricedSale is a validated, priced line-item set ready to commit. Total is
// the caller-claimed total; ComputedTotal is the sum of line subtotals.
type PricedSale struct {
	Total         float64
	ComputedTotal float64
	Lines         []SaleLine
}

// LineInput is an untrusted product/quantity pair from a sale request.
type LineInput struct {
	ProductID int64 `json:"id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}

// CreateSaleInput is the untrusted payload of a create-sale request.
type CreateSaleInput struct {
	Items []LineInput
	Total *float64
}

// Sentinel errors for the sale transaction path. Line-level failures are
// wrapped with the offending product id, e.g.
// fmt.Errorf("%w: product 7", ErrInsufficientStock).
var (
	ErrMissingFields     = errors.New("sales: products or total missing")
	ErrInvalidQuantity   = errors.New("sales: invalid quantity")
	ErrProductNotFound   = errors.New("sales: product not found")
	ErrInsufficientStock = errors.New("sales: insufficient stock")
	ErrSaleNotFound      = errors.New("sales: sale not found")
)
