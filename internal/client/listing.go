package client

import (
	"context"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// Row is a product annotated with its presentation hints. The hints are pure
// functions of the product, recomputed on every refresh and never stored.
type Row struct {
	Product
	StockLevel domproduct.StockLevel
	Strike     bool
	Expiration string
}

// Listing drives the paginated table: it derives the HTTP query from Query,
// fetches one page and annotates the rows. The view models are cooperative
// and single-threaded; requests that complete after a newer one started are
// discarded via a generation counter rather than cancelled in flight.
type Listing struct {
	Query Query

	client     *Client
	rows       []Row
	totalPages int
	total      int64
	err        error
	gen        uint64
	dirty      bool
}

func NewListing(c *Client) *Listing {
	return &Listing{client: c, Query: DefaultQuery(), dirty: true}
}

// Refresh fetches the page described by Query. On failure the previous rows
// stay visible and Err carries what went wrong.
func (l *Listing) Refresh(ctx context.Context) error {
	token := l.begin()
	page, err := l.client.ListProducts(ctx, l.Query.Values())
	return l.complete(token, page, err)
}

// begin registers interest in a new fetch and returns its generation token.
func (l *Listing) begin() uint64 {
	l.gen++
	return l.gen
}

// complete applies a fetch result unless a newer fetch has started since.
func (l *Listing) complete(token uint64, page *Page, err error) error {
	if token != l.gen {
		// Stale response; a newer request owns the view now.
		return nil
	}
	if err != nil {
		l.err = err
		return err
	}
	l.err = nil
	l.dirty = false
	l.totalPages = page.TotalPages
	l.total = page.TotalElements
	l.rows = annotate(page.Content)
	return nil
}

// Invalidate marks the snapshot stale after a mutation elsewhere.
func (l *Listing) Invalidate() {
	l.dirty = true
}

func (l *Listing) Dirty() bool       { return l.dirty }
func (l *Listing) Rows() []Row       { return l.rows }
func (l *Listing) TotalPages() int   { return l.totalPages }
func (l *Listing) TotalItems() int64 { return l.total }
func (l *Listing) Err() error        { return l.err }

func annotate(products []Product) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, Row{
			Product:    p,
			StockLevel: domproduct.LevelFor(p.QuantityInStock),
			Strike:     p.QuantityInStock <= 0,
			Expiration: expirationLabel(p),
		})
	}
	return rows
}

// expirationLabel shows the date only for food with a date set; everything
// else renders the placeholder.
func expirationLabel(p Product) string {
	if domproduct.NormalizeCategory(p.Category) == domproduct.CategoryFood && p.ExpirationDate != "" {
		return p.ExpirationDate
	}
	return "N/A"
}
