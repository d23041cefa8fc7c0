package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

type memRepo struct {
	byID   map[int64]Category
	nextID int64
}

func newMemRepo(existing ...Category) *memRepo {
	repo := &memRepo{byID: make(map[int64]Category), nextID: 1}
	for _, c := range existing {
		repo.byID[c.ID] = c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (m *memRepo) List(_ context.Context, status *shared.Status) ([]Category, error) {
	var out []Category
	for _, c := range m.byID {
		if status == nil || c.Status == *status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memRepo) ExistsByFoldedName(_ context.Context, folded string, excludeID int64) (bool, error) {
	for _, c := range m.byID {
		if c.ID != excludeID && foldName(c.Name) == folded {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Create(_ context.Context, name string) (Category, error) {
	c := Category{ID: m.nextID, Name: name, Status: shared.StatusActive}
	m.byID[c.ID] = c
	m.nextID++
	return c, nil
}

func (m *memRepo) UpdateName(_ context.Context, id int64, name string) error {
	c, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	c.Name = name
	m.byID[id] = c
	return nil
}

func (m *memRepo) SetStatus(_ context.Context, id int64, status shared.Status) error {
	c, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	m.byID[id] = c
	return nil
}

func TestCreateCategory(t *testing.T) {
	svc := NewService(newMemRepo())

	c, err := svc.Create(context.Background(), "Bebidas")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, shared.StatusActive, c.Status)
}

func TestCreateCategoryValidation(t *testing.T) {
	repo := newMemRepo(Category{ID: 1, Name: "Bebidas", Status: shared.StatusActive})
	svc := NewService(repo)

	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrMissingFields},
		{"whitespace only", "   ", ErrMissingFields},
		{"markup characters", "Bebidas<script>", ErrInvalidCharacters},
		{"duplicate", "Bebidas", ErrDuplicateName},
		{"duplicate ignoring case", "BEBIDAS", ErrDuplicateName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRenameCategory(t *testing.T) {
	repo := newMemRepo(
		Category{ID: 1, Name: "Bebidas", Status: shared.StatusActive},
		Category{ID: 2, Name: "Panaderia", Status: shared.StatusActive},
	)
	svc := NewService(repo)

	require.NoError(t, svc.Rename(context.Background(), 1, "  Bebidas frias  "))
	assert.Equal(t, "Bebidas frias", repo.byID[1].Name)

	// Renaming to its own name is allowed; to a sibling's name is not.
	assert.NoError(t, svc.Rename(context.Background(), 1, "Bebidas frias"))
	assert.ErrorIs(t, svc.Rename(context.Background(), 1, "panaderia"), ErrDuplicateName)
	assert.ErrorIs(t, svc.Rename(context.Background(), 9, "Abarrotes"), ErrNotFound)
}

func TestSetCategoryStatus(t *testing.T) {
	repo := newMemRepo(Category{ID: 1, Name: "Bebidas", Status: shared.StatusActive})
	svc := NewService(repo)

	require.NoError(t, svc.SetStatus(context.Background(), 1, 0))
	assert.Equal(t, shared.StatusInactive, repo.byID[1].Status)

	assert.ErrorIs(t, svc.SetStatus(context.Background(), 1, 7), shared.ErrInvalidStatus)
	assert.ErrorIs(t, svc.SetStatus(context.Background(), 9, 1), ErrNotFound)
}

func TestListCategoriesByStatus(t *testing.T) {
	repo := newMemRepo(
		Category{ID: 1, Name: "Bebidas", Status: shared.StatusActive},
		Category{ID: 2, Name: "Descontinuados", Status: shared.StatusInactive},
	)
	svc := NewService(repo)

	active := shared.StatusActive
	list, err := svc.List(context.Background(), &active)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bebidas", list[0].Name)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
