package memory

import (
	"context"
	"sort"
	"sync"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// ProductRepository keeps the catalog in process memory. It is the reference
// implementation of the listing semantics, backs the default driver and the
// test suites; the SQL repositories translate the same rules to queries.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*domproduct.Product
	nextID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[int64]*domproduct.Product),
		nextID:   1,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(p)
	stored.ID = r.nextID
	r.nextID++
	r.products[stored.ID] = stored
	return clone(stored), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	r.products[p.ID] = clone(p)
	return clone(p), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.products[id]; ok {
		return clone(p), nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) (*domproduct.Page, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all[:0]
	for _, p := range all {
		if filter.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	domproduct.Sort(filtered, filter.SortKey, filter.Desc)
	return domproduct.Paginate(filtered, filter.Page, filter.Size), nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domproduct.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, clone(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func clone(p *domproduct.Product) *domproduct.Product {
	c := *p
	if p.ExpirationDate != nil {
		d := *p.ExpirationDate
		c.ExpirationDate = &d
	}
	return &c
}
