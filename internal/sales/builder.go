package sales

import (
	"context"
	"errors"
	"fmt"
)

// Builder turns an untrusted list of product/quantity pairs plus a claimed
// total into a priced, validated line-item set. It runs inside the commit
// transaction so the stock it validates against is the stock the reservation
// will decrement: GetProductForUpdate locks each product row and the lock is
// held until the surrounding transaction resolves.
type Builder struct{}

// Build validates and prices the requested lines. Per item the precedence is
// invalid quantity, then unknown product, then insufficient stock; the first
// violation in input order is the one reported, wrapped with the offending
// product id.
func (Builder) Build(ctx context.Context, tx TxRepository, input CreateSaleInput) (PricedSale, error) {
	if len(input.Items) == 0 || input.Total == nil {
		return PricedSale{}, ErrMissingFields
	}

	priced := PricedSale{Total: *input.Total}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return PricedSale{}, fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ProductID)
		}
		product, err := tx.GetProductForUpdate(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return PricedSale{}, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
			}
			return PricedSale{}, err
		}
		if product.Stock < item.Quantity {
			return PricedSale{}, fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
		}
		priced.Lines = append(priced.Lines, SaleLine{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		priced.ComputedTotal += product.Price * float64(item.Quantity)
	}
	return priced, nil
}
