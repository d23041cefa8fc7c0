package products

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

// CategoryDirectory answers category existence checks without importing the
// categories package.
type CategoryDirectory interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	// LowStockThreshold is the stock level at or below which an active
	// product appears in the low-stock report.
	LowStockThreshold int
}

type Service struct {
	repo       Repository
	categories CategoryDirectory
	cfg        ServiceConfig
}

func NewService(repo Repository, categories CategoryDirectory, cfg ServiceConfig) *Service {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = 5
	}
	return &Service{repo: repo, categories: categories, cfg: cfg}
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// List returns the catalog with category names, optionally filtered to
// products whose category has the given status.
func (s *Service) List(ctx context.Context, categoryStatus *shared.Status) ([]WithCategory, error) {
	return s.repo.List(ctx, categoryStatus)
}

func (s *Service) Get(ctx context.Context, id int64) (WithCategory, error) {
	if id <= 0 {
		return WithCategory{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// LowStock lists active products at or below the configured threshold.
func (s *Service) LowStock(ctx context.Context) ([]Product, error) {
	return s.repo.LowStock(ctx, s.cfg.LowStockThreshold)
}

// Create validates and stores a new active product. Field checks run in a
// fixed order so the first offending field decides the outcome.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	description, err := resolveDescription(in.Description)
	if err != nil {
		return 0, err
	}
	if missing := missingCreateFields(in); len(missing) > 0 {
		return 0, &MissingFieldsError{Fields: missing}
	}
	if err := validateName(in.Name); err != nil {
		return 0, err
	}
	if *in.Stock < 0 {
		return 0, ErrInvalidStock
	}
	if *in.Price <= 0 {
		return 0, ErrInvalidPrice
	}
	if in.CategoryID != nil {
		if *in.CategoryID <= 0 {
			return 0, ErrInvalidCategoryID
		}
		exists, err := s.categories.ExistsByID(ctx, *in.CategoryID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, ErrCategoryNotFound
		}
	}
	taken, err := s.repo.ExistsInCategory(ctx, in.CategoryID, foldName(in.Name), 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrProductExists
	}
	if err := validateImage(in.Image); err != nil {
		return 0, err
	}

	return s.repo.Create(ctx, Product{
		Name:        in.Name,
		Price:       *in.Price,
		Stock:       *in.Stock,
		Status:      shared.StatusActive,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		Description: description,
	})
}

// Update replaces every field of an existing product.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	description, err := resolveDescription(in.Description)
	if err != nil {
		return err
	}
	if missing := missingUpdateFields(in); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	if err := validateName(in.Name); err != nil {
		return err
	}
	if *in.Stock < 0 {
		return ErrInvalidStock
	}
	if *in.Price <= 0 {
		return ErrInvalidPrice
	}
	if *in.CategoryID <= 0 {
		return ErrInvalidCategoryID
	}
	status, err := shared.ParseStatus(*in.Status)
	if err != nil {
		return err
	}
	exists, err := s.categories.ExistsByID(ctx, *in.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}
	taken, err := s.repo.ExistsInCategory(ctx, in.CategoryID, foldName(in.Name), *in.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrProductExists
	}
	if err := validateImage(in.Image); err != nil {
		return err
	}

	return s.repo.Update(ctx, Product{
		ID:          *in.ID,
		Name:        in.Name,
		Price:       *in.Price,
		Stock:       *in.Stock,
		Status:      status,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		Description: description,
	})
}

// SetStatus activates or deactivates a product.
func (s *Service) SetStatus(ctx context.Context, id int64, raw int) error {
	status, err := shared.ParseStatus(raw)
	if err != nil {
		return err
	}
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.SetStatus(ctx, id, status)
}
