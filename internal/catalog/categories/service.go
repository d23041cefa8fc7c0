package categories

import (
	"context"
	"strings"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, status *shared.Status) ([]Category, error) {
	return s.repo.List(ctx, status)
}

// Create registers a new active category. Names are unique ignoring case.
func (s *Service) Create(ctx context.Context, name string) (Category, error) {
	if err := validateName(name); err != nil {
		return Category{}, err
	}
	taken, err := s.repo.ExistsByFoldedName(ctx, foldName(name), 0)
	if err != nil {
		return Category{}, err
	}
	if taken {
		return Category{}, ErrDuplicateName
	}
	return s.repo.Create(ctx, name)
}

// Rename changes a category name, keeping case-insensitive uniqueness.
func (s *Service) Rename(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return ErrNotFound
	}
	if err := validateName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	taken, err := s.repo.ExistsByFoldedName(ctx, foldName(name), id)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateName
	}
	return s.repo.UpdateName(ctx, id, name)
}

// SetStatus activates or deactivates a category.
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
