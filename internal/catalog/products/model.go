package products

import (
	"errors"
	"fmt"
	"strings"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

// Product is one catalog entry. Image holds a data URL; Description always
// carries a value, defaulting when the caller sends none.
type Product struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Status      shared.Status `json:"status"`
	CategoryID  *int64        `json:"category_id"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
}

// WithCategory pairs a product with its category name for detail reads.
type WithCategory struct {
	Product
	CategoryName string `json:"category_name"`
}

// CreateInput is the untrusted payload for product creation. Pointer fields
// distinguish absent from zero.
type CreateInput struct {
	Name        string   `json:"name"`
	Stock       *int     `json:"stock"`
	Price       *float64 `json:"price"`
	CategoryID  *int64   `json:"category_id"`
	Image       string   `json:"image"`
	Description *string  `json:"description"`
}

// UpdateInput is the untrusted payload for a full product update; every
// field is required.
type UpdateInput struct {
	ID          *int64   `json:"id"`
	Name        string   `json:"name"`
	Stock       *int     `json:"stock"`
	Price       *float64 `json:"price"`
	Status      *int     `json:"status"`
	CategoryID  *int64   `json:"category_id"`
	Image       string   `json:"image"`
	Description *string  `json:"description"`
}

var (
	ErrInvalidName        = errors.New("products: invalid name")
	ErrInvalidStock       = errors.New("products: stock must be zero or greater")
	ErrInvalidPrice       = errors.New("products: price must be greater than zero")
	ErrInvalidCategoryID  = errors.New("products: category id must be a positive integer")
	ErrInvalidImage       = errors.New("products: image must be a png or jpeg data url")
	ErrDescriptionTooLong = errors.New("products: description exceeds 255 characters")
	ErrCategoryNotFound   = errors.New("products: category not found")
	ErrProductExists      = errors.New("products: name already used in category")
	ErrNotFound           = errors.New("products: product not found")
)

// MissingFieldsError lists the required fields absent from a payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("products: missing fields: %s", strings.Join(e.Fields, ", "))
}
