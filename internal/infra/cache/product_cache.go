package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

const (
	productTTL = 10 * time.Minute
	metricsTTL = 5 * time.Minute

	metricsKey = "metrics:report"
)

// ProductCache is a read cache for single-product lookups and the metrics
// report. Every mutating product operation drops the affected keys, so a
// stale entry can only outlive a write by the TTL of a concurrent fill.
// Cache errors are logged and otherwise ignored; the store stays the source
// of truth.
type ProductCache struct {
	rdb *redis.Client
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *ProductCache) GetProduct(ctx context.Context, id int64) (*domproduct.Product, bool) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var p domproduct.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) SetProduct(ctx context.Context, p *domproduct.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productKey(p.ID), data, productTTL).Err(); err != nil {
		log.Printf("cache: set %s: %v", productKey(p.ID), err)
	}
}

func (c *ProductCache) InvalidateProduct(ctx context.Context, id int64) {
	if err := c.rdb.Del(ctx, productKey(id)).Err(); err != nil {
		log.Printf("cache: del %s: %v", productKey(id), err)
	}
}

func (c *ProductCache) GetReport(ctx context.Context) (*domproduct.MetricsReport, bool) {
	data, err := c.rdb.Get(ctx, metricsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var report domproduct.MetricsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (c *ProductCache) SetReport(ctx context.Context, report *domproduct.MetricsReport) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, metricsKey, data, metricsTTL).Err(); err != nil {
		log.Printf("cache: set %s: %v", metricsKey, err)
	}
}

func (c *ProductCache) InvalidateMetrics(ctx context.Context) {
	if err := c.rdb.Del(ctx, metricsKey).Err(); err != nil {
		log.Printf("cache: del %s: %v", metricsKey, err)
	}
}
