package products

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balu-pos/balu-pos/internal/catalog/shared"
)

const validImage = "data:image/png;base64,aGVsbG8="

type categoryRow struct {
	name   string
	status shared.Status
}

type memRepo struct {
	byID       map[int64]Product
	categories map[int64]categoryRow
	nextID     int64
}

func newMemRepo(existing ...Product) *memRepo {
	repo := &memRepo{
		byID:       make(map[int64]Product),
		categories: map[int64]categoryRow{7: {name: "Bebidas", status: shared.StatusActive}},
		nextID:     1,
	}
	for _, p := range existing {
		repo.byID[p.ID] = p
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

// List mirrors the SQL join: uncategorized products drop out, the filter
// applies to the category's status.
func (m *memRepo) List(_ context.Context, categoryStatus *shared.Status) ([]WithCategory, error) {
	var out []WithCategory
	for _, p := range m.byID {
		if p.CategoryID == nil {
			continue
		}
		c, ok := m.categories[*p.CategoryID]
		if !ok {
			continue
		}
		if categoryStatus != nil && c.status != *categoryStatus {
			continue
		}
		out = append(out, WithCategory{Product: p, CategoryName: c.name})
	}
	return out, nil
}

func (m *memRepo) Get(_ context.Context, id int64) (WithCategory, error) {
	p, ok := m.byID[id]
	if !ok {
		return WithCategory{}, ErrNotFound
	}
	return WithCategory{Product: p, CategoryName: "Bebidas"}, nil
}

func (m *memRepo) LowStock(_ context.Context, threshold int) ([]Product, error) {
	var out []Product
	for _, p := range m.byID {
		if p.Stock <= threshold && p.Status == shared.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) ExistsInCategory(_ context.Context, categoryID *int64, folded string, excludeID int64) (bool, error) {
	for _, p := range m.byID {
		if p.ID == excludeID {
			continue
		}
		sameCategory := (categoryID == nil && p.CategoryID == nil) ||
			(categoryID != nil && p.CategoryID != nil && *categoryID == *p.CategoryID)
		if sameCategory && foldName(p.Name) == folded {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Create(_ context.Context, p Product) (int64, error) {
	p.ID = m.nextID
	m.byID[p.ID] = p
	m.nextID++
	return p.ID, nil
}

func (m *memRepo) Update(_ context.Context, p Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return ErrNotFound
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memRepo) SetStatus(_ context.Context, id int64, status shared.Status) error {
	p, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	m.byID[id] = p
	return nil
}

type stubCategories struct {
	known map[int64]bool
}

func (s stubCategories) ExistsByID(_ context.Context, id int64) (bool, error) {
	return s.known[id], nil
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func int64p(v int64) *int64     { return &v }
func strp(v string) *string     { return &v }

func validCreateInput() CreateInput {
	return CreateInput{
		Name:       "Cafe molido",
		Stock:      intp(10),
		Price:      floatp(120),
		CategoryID: int64p(7),
		Image:      validImage,
	}
}

func newTestService(repo *memRepo) *Service {
	return NewService(repo, stubCategories{known: map[int64]bool{7: true}}, ServiceConfig{LowStockThreshold: 5})
}

func TestCreateProduct(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	p := repo.byID[id]
	assert.Equal(t, "Cafe molido", p.Name)
	assert.Equal(t, shared.StatusActive, p.Status)
	assert.Equal(t, "Sin descripción", p.Description)
}

func TestCreateProductWithoutCategory(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	in := validCreateInput()
	in.CategoryID = nil
	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, repo.byID[id].CategoryID)
}

func TestCreateProductValidation(t *testing.T) {
	existing := Product{ID: 1, Name: "Cafe molido", CategoryID: int64p(7), Status: shared.StatusActive}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
		want   error
	}{
		{"empty name", func(in *CreateInput) { in.Name = "  " }, ErrInvalidName},
		{"name with symbols", func(in *CreateInput) { in.Name = "Cafe@#" }, ErrInvalidName},
		{"negative stock", func(in *CreateInput) { in.Stock = intp(-1) }, ErrInvalidStock},
		{"zero price", func(in *CreateInput) { in.Price = floatp(0) }, ErrInvalidPrice},
		{"negative category", func(in *CreateInput) { in.CategoryID = int64p(-2) }, ErrInvalidCategoryID},
		{"unknown category", func(in *CreateInput) { in.CategoryID = int64p(99) }, ErrCategoryNotFound},
		{"duplicate in category", func(in *CreateInput) { in.Name = "CAFE MOLIDO" }, ErrProductExists},
		{"bad image", func(in *CreateInput) { in.Image = "http://example.com/x.png" }, ErrInvalidImage},
		{
			"long description",
			func(in *CreateInput) { in.Description = strp(strings.Repeat("a", 256)) },
			ErrDescriptionTooLong,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newMemRepo(existing))
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDescriptionCapCountsCharacters(t *testing.T) {
	svc := newTestService(newMemRepo())

	// 255 characters, 510 bytes: fills the cap exactly and must pass.
	in := validCreateInput()
	in.Description = strp(strings.Repeat("ó", 255))
	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotZero(t, id)

	over := validCreateInput()
	over.Name = "Cafe de olla"
	over.Description = strp(strings.Repeat("ó", 256))
	_, err = svc.Create(context.Background(), over)
	assert.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestCreateProductMissingFields(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.Create(context.Background(), CreateInput{Name: "Cafe"})
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"stock", "price", "image"}, missing.Fields)
}

func TestUpdateProduct(t *testing.T) {
	repo := newMemRepo(Product{
		ID: 1, Name: "Cafe", Price: 100, Stock: 5,
		Status: shared.StatusActive, CategoryID: int64p(7), Image: validImage,
	})
	svc := newTestService(repo)

	err := svc.Update(context.Background(), UpdateInput{
		ID:          int64p(1),
		Name:        "Cafe premium",
		Stock:       intp(8),
		Price:       floatp(150),
		Status:      intp(1),
		CategoryID:  int64p(7),
		Image:       validImage,
		Description: strp("Tueste medio"),
	})
	require.NoError(t, err)

	p := repo.byID[1]
	assert.Equal(t, "Cafe premium", p.Name)
	assert.Equal(t, 150.0, p.Price)
	assert.Equal(t, "Tueste medio", p.Description)
}

func TestUpdateProductMissingFields(t *testing.T) {
	svc := newTestService(newMemRepo())

	err := svc.Update(context.Background(), UpdateInput{Name: "Cafe"})
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Fields, "id")
	assert.Contains(t, missing.Fields, "status")
	assert.Contains(t, missing.Fields, "category_id")
}

func TestLowStockUsesThreshold(t *testing.T) {
	repo := newMemRepo(
		Product{ID: 1, Name: "Cafe", Stock: 2, Status: shared.StatusActive},
		Product{ID: 2, Name: "Azucar", Stock: 5, Status: shared.StatusActive},
		Product{ID: 3, Name: "Harina", Stock: 9, Status: shared.StatusActive},
		Product{ID: 4, Name: "Viejo", Stock: 0, Status: shared.StatusInactive},
	)
	svc := newTestService(repo)

	list, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListProductsJoinsCategories(t *testing.T) {
	repo := newMemRepo(
		Product{ID: 1, Name: "Cafe", CategoryID: int64p(7), Status: shared.StatusActive},
		Product{ID: 2, Name: "Descontinuado", CategoryID: int64p(8), Status: shared.StatusActive},
		Product{ID: 3, Name: "Sin categoria", Status: shared.StatusActive},
	)
	repo.categories[8] = categoryRow{name: "Temporada", status: shared.StatusInactive}
	svc := newTestService(repo)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	// The join drops the uncategorized product.
	require.Len(t, all, 2)
	for _, p := range all {
		assert.NotEmpty(t, p.CategoryName)
	}

	active := shared.StatusActive
	list, err := svc.List(context.Background(), &active)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cafe", list[0].Name)
	assert.Equal(t, "Bebidas", list[0].CategoryName)
}

func TestGetProduct(t *testing.T) {
	repo := newMemRepo(Product{ID: 1, Name: "Cafe", CategoryID: int64p(7), Status: shared.StatusActive})
	svc := newTestService(repo)

	p, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", p.CategoryName)

	_, err = svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(context.Background(), -1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetProductStatus(t *testing.T) {
	repo := newMemRepo(Product{ID: 1, Name: "Cafe", Status: shared.StatusActive})
	svc := newTestService(repo)

	require.NoError(t, svc.SetStatus(context.Background(), 1, 0))
	assert.Equal(t, shared.StatusInactive, repo.byID[1].Status)
	assert.ErrorIs(t, svc.SetStatus(context.Background(), 1, 3), shared.ErrInvalidStatus)
}
