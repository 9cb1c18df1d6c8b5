package product

import "time"

const MaxNameLength = 120

type Product struct {
	ID              int64
	Name            string
	Category        Category
	UnitPrice       float64
	QuantityInStock int64
	ExpirationDate  *time.Time
}

// Validate checks the invariants every stored product must satisfy. The HTTP
// layer validates request payloads before they get here; this is the last
// line before a repository write.
func (p *Product) Validate() error {
	if p.Name == "" || len(p.Name) > MaxNameLength {
		return ErrInvalidName
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}
	if p.UnitPrice < 0 {
		return ErrInvalidPrice
	}
	if p.QuantityInStock < 0 {
		return ErrInvalidStock
	}
	return nil
}
