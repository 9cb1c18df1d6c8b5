package product

type StockLevel string

const (
	StockOut StockLevel = "out_of_stock"
	StockLow StockLevel = "low_stock"
	StockOK  StockLevel = "in_stock"
)

// lowStockMax is the top of the low-stock band: quantities in 1..lowStockMax
// render as low stock, anything above as in stock.
const lowStockMax = 10

// LevelFor classifies a raw quantity. Exposed for callers that only have the
// wire representation of a product.
func LevelFor(quantity int64) StockLevel {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= lowStockMax:
		return StockLow
	default:
		return StockOK
	}
}

func (p *Product) StockLevel() StockLevel {
	return LevelFor(p.QuantityInStock)
}

// Strike reports whether the row should be rendered struck through.
func (p *Product) Strike() bool {
	return p.QuantityInStock <= 0
}
