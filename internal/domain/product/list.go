package product

import (
	"sort"
	"strings"
)

const DefaultPageSize = 10

// Availability filter values, straight from the query string.
const (
	AvailableAny = ""
	AvailableIn  = "in"
	AvailableOut = "out"
)

// Sortable field names accepted by List. They match the JSON field names of
// the product payload.
const (
	SortByID       = "id"
	SortByName     = "name"
	SortByCategory = "category"
	SortByPrice    = "unitPrice"
	SortByStock    = "quantityInStock"
	SortByExpiry   = "expirationDate"
)

type ListFilter struct {
	Name      string
	Category  string
	Available string
	Page      int // 0-based
	Size      int
	SortKey   string
	Desc      bool
}

type Page struct {
	Content       []*Product
	TotalElements int64
	TotalPages    int
	Number        int
	Size          int
}

// Matches reports whether p passes the name/category/availability filters.
// Pagination and sorting are handled separately.
func (f ListFilter) Matches(p *Product) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Category != "" && NormalizeCategory(string(p.Category)) != NormalizeCategory(f.Category) {
		return false
	}
	switch f.Available {
	case AvailableIn:
		return p.QuantityInStock > 0
	case AvailableOut:
		return p.QuantityInStock <= 0
	}
	return true
}

// Sort orders products by (key, direction) in place. Name and category
// compare case-insensitively; products without an expiration date always
// sort after dated ones. An unknown key leaves the slice untouched.
func Sort(products []*Product, key string, desc bool) {
	switch key {
	case SortByID, SortByName, SortByCategory, SortByPrice, SortByStock:
	case SortByExpiry:
		sort.SliceStable(products, func(i, j int) bool {
			a, b := products[i].ExpirationDate, products[j].ExpirationDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			case desc:
				return a.After(*b)
			default:
				return a.Before(*b)
			}
		})
		return
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		c := compareBy(products[i], products[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareBy(a, b *Product, key string) int {
	switch key {
	case SortByID:
		return compareInt64(a.ID, b.ID)
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByCategory:
		return strings.Compare(strings.ToLower(string(a.Category)), strings.ToLower(string(b.Category)))
	case SortByPrice:
		return compareFloat64(a.UnitPrice, b.UnitPrice)
	case SortByStock:
		return compareInt64(a.QuantityInStock, b.QuantityInStock)
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate slices products into the requested page. A non-positive size
// falls back to DefaultPageSize; pages past the end yield empty content
// rather than an error.
func Paginate(products []*Product, page, size int) *Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	total := int64(len(products))
	totalPages := int((total + int64(size) - 1) / int64(size))

	start := page * size
	if start > len(products) {
		start = len(products)
	}
	end := start + size
	if end > len(products) {
		end = len(products)
	}

	content := make([]*Product, end-start)
	copy(content, products[start:end])

	return &Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        page,
		Size:          size,
	}
}
