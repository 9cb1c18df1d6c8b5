package product

// CategoryMetrics is one aggregation row. Totals only count products that
// are actually in stock; AverageUnitPrice divides the in-stock value by the
// number of in-stock products and is zero when there are none.
type CategoryMetrics struct {
	Category          string  `json:"category"`
	TotalUnitsInStock int64   `json:"totalUnitsInStock"`
	TotalValueInStock float64 `json:"totalValueInStock"`
	AverageUnitPrice  float64 `json:"averageUnitPrice"`
}

type MetricsReport struct {
	Categories []CategoryMetrics `json:"categories"`
	Overall    CategoryMetrics   `json:"overall"`
}

type metricsAcc struct {
	units int64
	value float64
	count int64
}

func (a *metricsAcc) add(p *Product) {
	a.units += p.QuantityInStock
	a.value += p.UnitPrice * float64(p.QuantityInStock)
	a.count++
}

func (a *metricsAcc) row(category string) CategoryMetrics {
	m := CategoryMetrics{
		Category:          category,
		TotalUnitsInStock: a.units,
		TotalValueInStock: a.value,
	}
	if a.count > 0 {
		m.AverageUnitPrice = a.value / float64(a.count)
	}
	return m
}

// ComputeMetrics aggregates the full product set from scratch. Legacy
// category spellings are folded before bucketing; products in categories
// that are still unknown after folding contribute to the overall row only.
func ComputeMetrics(products []*Product) *MetricsReport {
	perCategory := make(map[Category]*metricsAcc, len(Categories))
	for _, c := range Categories {
		perCategory[c] = &metricsAcc{}
	}
	overall := &metricsAcc{}

	for _, p := range products {
		if p.QuantityInStock <= 0 {
			continue
		}
		overall.add(p)
		if acc, ok := perCategory[NormalizeCategory(string(p.Category))]; ok {
			acc.add(p)
		}
	}

	report := &MetricsReport{Categories: make([]CategoryMetrics, 0, len(Categories))}
	for _, c := range Categories {
		report.Categories = append(report.Categories, perCategory[c].row(string(c)))
	}
	report.Overall = overall.row("overall")
	return report
}
