package product

import (
	"context"
	"time"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// Seed inserts the starter catalog when the store is empty, so a fresh
// deployment has something to show. It is a no-op otherwise.
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	days := func(n int) *time.Time {
		d := now.AddDate(0, 0, n)
		return &d
	}
	years := func(n int) *time.Time {
		d := now.AddDate(n, 0, 0)
		return &d
	}

	samples := []*domproduct.Product{
		{Name: "Laptop", Category: domproduct.CategoryElectronics, UnitPrice: 1200.00, QuantityInStock: 50, ExpirationDate: years(2)},
		{Name: "Smartphone", Category: domproduct.CategoryElectronics, UnitPrice: 800.00, QuantityInStock: 0, ExpirationDate: years(1)},
		{Name: "Bread", Category: domproduct.CategoryFood, UnitPrice: 2.50, QuantityInStock: 10, ExpirationDate: days(5)},
		{Name: "Milk", Category: domproduct.CategoryFood, UnitPrice: 3.00, QuantityInStock: 0, ExpirationDate: days(2)},
		{Name: "T-Shirt", Category: domproduct.CategoryClothing, UnitPrice: 25.00, QuantityInStock: 20},
		{Name: "Jeans", Category: domproduct.CategoryClothing, UnitPrice: 50.00, QuantityInStock: 5},
		{Name: "Monitor", Category: domproduct.CategoryElectronics, UnitPrice: 300.00, QuantityInStock: 15, ExpirationDate: years(3)},
		{Name: "Eggs", Category: domproduct.CategoryFood, UnitPrice: 4.00, QuantityInStock: 0, ExpirationDate: days(3)},
		{Name: "Dress", Category: domproduct.CategoryClothing, UnitPrice: 70.00, QuantityInStock: 12},
		{Name: "Mouse", Category: domproduct.CategoryElectronics, UnitPrice: 25.00, QuantityInStock: 30, ExpirationDate: years(1)},
	}

	for _, p := range samples {
		if _, err := s.repo.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
