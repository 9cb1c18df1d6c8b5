package product_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
	"github.com/JoelVR2k/InventoryManager/internal/infra/persistence/memory"
	"github.com/JoelVR2k/InventoryManager/internal/usecase/product"
)

type fakeCache struct {
	products           map[int64]*domproduct.Product
	invalidatedIDs     []int64
	metricsInvalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: map[int64]*domproduct.Product{}}
}

func (c *fakeCache) GetProduct(_ context.Context, id int64) (*domproduct.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

func (c *fakeCache) SetProduct(_ context.Context, p *domproduct.Product) {
	c.products[p.ID] = p
}

func (c *fakeCache) InvalidateProduct(_ context.Context, id int64) {
	delete(c.products, id)
	c.invalidatedIDs = append(c.invalidatedIDs, id)
}

func (c *fakeCache) InvalidateMetrics(_ context.Context) {
	c.metricsInvalidated++
}

func newTestService(t *testing.T) (*product.Service, *memory.ProductRepository, *fakeCache) {
	t.Helper()
	repo := memory.NewProductRepository()
	cache := newFakeCache()
	return product.NewService(repo, cache), repo, cache
}

func validProduct() *domproduct.Product {
	return &domproduct.Product{
		Name:            "Bread",
		Category:        domproduct.CategoryFood,
		UnitPrice:       2.50,
		QuantityInStock: 10,
	}
}

func TestCreateNormalizesCategory(t *testing.T) {
	svc, _, cache := newTestService(t)

	p := validProduct()
	p.Category = "CLOTHES"
	created, err := svc.Create(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, domproduct.CategoryClothing, created.Category)
	require.Equal(t, 1, cache.metricsInvalidated)
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc, _, cache := newTestService(t)

	tests := []struct {
		name    string
		mutate  func(*domproduct.Product)
		wantErr error
	}{
		{"empty name", func(p *domproduct.Product) { p.Name = "" }, domproduct.ErrInvalidName},
		{"unknown category", func(p *domproduct.Product) { p.Category = "toys" }, domproduct.ErrInvalidCategory},
		{"negative price", func(p *domproduct.Product) { p.UnitPrice = -1 }, domproduct.ErrInvalidPrice},
		{"negative stock", func(p *domproduct.Product) { p.QuantityInStock = -1 }, domproduct.ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			_, err := svc.Create(context.Background(), p)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
	require.Zero(t, cache.metricsInvalidated, "rejected creates must not touch the cache")
}

func TestListDefaults(t *testing.T) {
	svc, repo, _ := newTestService(t)
	for i := 0; i < 15; i++ {
		_, err := repo.Create(context.Background(), validProduct())
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), domproduct.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Content, domproduct.DefaultPageSize)
	require.Equal(t, int64(15), page.TotalElements)
	require.Equal(t, 2, page.TotalPages)

	// Default sort is id descending, so the newest record comes first.
	require.Equal(t, int64(15), page.Content[0].ID)
}

func TestListClampsPageSize(t *testing.T) {
	svc, repo, _ := newTestService(t)
	_, err := repo.Create(context.Background(), validProduct())
	require.NoError(t, err)

	page, err := svc.List(context.Background(), domproduct.ListFilter{Size: 100000})
	require.NoError(t, err)
	require.Equal(t, 1000, page.Size)
}

func TestGetByIDUsesCache(t *testing.T) {
	svc, repo, cache := newTestService(t)
	created, err := repo.Create(context.Background(), validProduct())
	require.NoError(t, err)

	// First read warms the cache, second read is served from it.
	_, err = svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Contains(t, cache.products, created.ID)

	cache.products[created.ID].Name = "From cache"
	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "From cache", got.Name)
}

func TestGetByIDMissing(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	svc, repo, cache := newTestService(t)
	created, err := repo.Create(context.Background(), validProduct())
	require.NoError(t, err)

	created.UnitPrice = 3.00
	_, err = svc.Update(context.Background(), created)
	require.NoError(t, err)
	require.Equal(t, []int64{created.ID}, cache.invalidatedIDs)
	require.Equal(t, 1, cache.metricsInvalidated)
}

func TestUpdateMissingProduct(t *testing.T) {
	svc, _, _ := newTestService(t)

	p := validProduct()
	p.ID = 42
	_, err := svc.Update(context.Background(), p)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	svc, repo, cache := newTestService(t)
	created, err := repo.Create(context.Background(), validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, []int64{created.ID}, cache.invalidatedIDs)

	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), domproduct.ErrProductNotFound)
}

func TestMarkOutOfStock(t *testing.T) {
	svc, repo, _ := newTestService(t)
	created, err := repo.Create(context.Background(), validProduct())
	require.NoError(t, err)

	updated, err := svc.MarkOutOfStock(context.Background(), created.ID)
	require.NoError(t, err)
	require.Zero(t, updated.QuantityInStock)
	require.Equal(t, domproduct.StockOut, updated.StockLevel())
}

func TestMarkInStock(t *testing.T) {
	svc, repo, _ := newTestService(t)
	p := validProduct()
	p.QuantityInStock = 0
	created, err := repo.Create(context.Background(), p)
	require.NoError(t, err)

	updated, err := svc.MarkInStock(context.Background(), created.ID, 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), updated.QuantityInStock)

	_, err = svc.MarkInStock(context.Background(), created.ID, -1)
	require.ErrorIs(t, err, domproduct.ErrInvalidStock)

	_, err = svc.MarkInStock(context.Background(), 9999, 1)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestNilCacheIsAllowed(t *testing.T) {
	repo := memory.NewProductRepository()
	svc := product.NewService(repo, nil)

	created, err := svc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))
}

func TestSeed(t *testing.T) {
	svc, repo, _ := newTestService(t)

	require.NoError(t, svc.Seed(context.Background()))
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 10)

	// Seeding again must not duplicate the catalog.
	require.NoError(t, svc.Seed(context.Background()))
	all, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 10)
}
