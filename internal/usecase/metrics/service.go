package metrics

import (
	"context"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// Cache holds a previously computed report. Mutating product operations
// invalidate it; see usecase/product.
type Cache interface {
	GetReport(ctx context.Context) (*domproduct.MetricsReport, bool)
	SetReport(ctx context.Context, report *domproduct.MetricsReport)
}

type Service struct {
	repo  domproduct.Repository
	cache Cache
}

// NewService builds the metrics service. cache may be nil.
func NewService(repo domproduct.Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Report aggregates the full product set from scratch, per-category plus an
// overall row.
func (s *Service) Report(ctx context.Context) (*domproduct.MetricsReport, error) {
	if s.cache != nil {
		if report, ok := s.cache.GetReport(ctx); ok {
			return report, nil
		}
	}
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	report := domproduct.ComputeMetrics(products)
	if s.cache != nil {
		s.cache.SetReport(ctx, report)
	}
	return report, nil
}
