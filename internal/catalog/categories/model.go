package categories

import (
	"errors"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

// Category represents a product category.
type Category struct {
	ID     int64         `json:"id"`
	Name   string        `json:"name"`
	Status shared.Status `json:"status"`
}

var (
	ErrMissingFields     = errors.New("categories: name is required")
	ErrInvalidCharacters = errors.New("categories: name contains invalid characters")
	ErrDuplicateName     = errors.New("categories: name already in use")
	ErrNotFound          = errors.New("categories: category not found")
)
