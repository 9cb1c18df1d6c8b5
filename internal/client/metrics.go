package client

import (
	"context"
	"time"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// Metrics aggregates the full unpaginated product set client-side. It shares
// the staleness guard with Listing and keeps the last good report when a
// refresh fails.
type Metrics struct {
	client *Client
	report *domproduct.MetricsReport
	err    error
	gen    uint64
	dirty  bool
}

func NewMetrics(c *Client) *Metrics {
	return &Metrics{client: c, dirty: true}
}

func (m *Metrics) Refresh(ctx context.Context) error {
	m.gen++
	token := m.gen

	products, err := m.client.ListAllProducts(ctx)
	if token != m.gen {
		return nil
	}
	if err != nil {
		m.err = err
		return err
	}
	m.err = nil
	m.dirty = false
	m.report = domproduct.ComputeMetrics(toDomain(products))
	return nil
}

func (m *Metrics) Invalidate() {
	m.dirty = true
}

func (m *Metrics) Dirty() bool                       { return m.dirty }
func (m *Metrics) Err() error                        { return m.err }
func (m *Metrics) Report() *domproduct.MetricsReport { return m.report }

func toDomain(products []Product) []*domproduct.Product {
	out := make([]*domproduct.Product, 0, len(products))
	for _, p := range products {
		dp := &domproduct.Product{
			ID:              p.ID,
			Name:            p.Name,
			Category:        domproduct.Category(p.Category),
			UnitPrice:       p.UnitPrice,
			QuantityInStock: p.QuantityInStock,
		}
		if p.ExpirationDate != "" {
			if d, err := time.Parse("2006-01-02", p.ExpirationDate); err == nil {
				dp.ExpirationDate = &d
			}
		}
		out = append(out, dp)
	}
	return out
}
