package client

import (
	"net/url"
	"strconv"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// PageSize is the fixed listing page size.
const PageSize = 10

type Availability string

const (
	AvailabilityAll        Availability = "all"
	AvailabilityInStock    Availability = "inStock"
	AvailabilityOutOfStock Availability = "outOfStock"
)

func (a Availability) queryValue() string {
	switch a {
	case AvailabilityInStock:
		return domproduct.AvailableIn
	case AvailabilityOutOfStock:
		return domproduct.AvailableOut
	}
	return ""
}

// Query is the serializable listing view state: filters, sort and the
// 1-based page the user is looking at. It only changes through the named
// actions below.
type Query struct {
	Name         string
	Category     string
	Availability Availability
	Page         int
	SortKey      string
	Desc         bool
}

func DefaultQuery() Query {
	return Query{
		Availability: AvailabilityAll,
		Page:         1,
		SortKey:      domproduct.SortByID,
		Desc:         true,
	}
}

// SubmitSearch applies a name filter. The search term is applied on explicit
// submission, not per keystroke, so typing does not fan out into requests.
func (q *Query) SubmitSearch(term string) {
	q.Name = term
	q.Page = 1
}

func (q *Query) SetCategory(category string) {
	q.Category = category
	q.Page = 1
}

func (q *Query) SetAvailability(a Availability) {
	q.Availability = a
	q.Page = 1
}

func (q *Query) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q.Page = page
}

// ToggleSort selects key as the sort column and flips the direction the
// previous state had.
func (q *Query) ToggleSort(key string) {
	q.SortKey = key
	q.Desc = !q.Desc
}

// ClearFilters resets filters and page to their defaults, keeping the sort.
func (q *Query) ClearFilters() {
	q.Name = ""
	q.Category = ""
	q.Availability = AvailabilityAll
	q.Page = 1
}

// Values renders the HTTP query for the listing endpoint. The 1-based UI
// page becomes the API's 0-based index; empty filters and the "all"
// availability are omitted entirely.
func (q Query) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page-1))
	values.Set("size", strconv.Itoa(PageSize))

	dir := "asc"
	if q.Desc {
		dir = "desc"
	}
	values.Set("sortBy", q.SortKey+","+dir)

	if q.Name != "" {
		values.Set("name", q.Name)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if v := q.Availability.queryValue(); v != "" {
		values.Set("available", v)
	}
	return values
}
