package product

import (
	"context"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// maxPageSize bounds a single listing request. The biggest legitimate page is
// the unpaginated fetch the metrics view performs (size=1000).
const maxPageSize = 1000

// Cache is the optional read cache in front of the repository. Mutations
// drop the affected product entry and the metrics report; a new value is
// only written back on the read path.
type Cache interface {
	GetProduct(ctx context.Context, id int64) (*domproduct.Product, bool)
	SetProduct(ctx context.Context, p *domproduct.Product)
	InvalidateProduct(ctx context.Context, id int64)
	InvalidateMetrics(ctx context.Context)
}

type Service struct {
	repo  domproduct.Repository
	cache Cache
}

// NewService builds the product service. cache may be nil.
func NewService(repo domproduct.Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, filter domproduct.ListFilter) (*domproduct.Page, error) {
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = domproduct.DefaultPageSize
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}
	if filter.SortKey == "" {
		filter.SortKey = domproduct.SortByID
		filter.Desc = true
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListAll(ctx context.Context) ([]*domproduct.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if s.cache != nil {
		if p, ok := s.cache.GetProduct(ctx, id); ok {
			return p, nil
		}
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetProduct(ctx, p)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.Category = domproduct.NormalizeCategory(string(p.Category))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateMetrics(ctx)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.Category = domproduct.NormalizeCategory(string(p.Category))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// MarkOutOfStock zeroes the stock of an existing product.
func (s *Service) MarkOutOfStock(ctx context.Context, id int64) (*domproduct.Product, error) {
	return s.setStock(ctx, id, 0)
}

// MarkInStock sets the stock of an existing product to quantity.
func (s *Service) MarkInStock(ctx context.Context, id int64, quantity int64) (*domproduct.Product, error) {
	if quantity < 0 {
		return nil, domproduct.ErrInvalidStock
	}
	return s.setStock(ctx, id, quantity)
}

func (s *Service) setStock(ctx context.Context, id int64, quantity int64) (*domproduct.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.QuantityInStock = quantity
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateProduct(ctx, id)
	s.cache.InvalidateMetrics(ctx)
}
