package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

// ErrValidation is returned by Submit when field validation failed; no
// request has been issued in that case.
var ErrValidation = errors.New("form has validation errors")

type FormState string

const (
	StateCreate      FormState = "create"
	StateEditLoading FormState = "edit_loading"
	StateEditReady   FormState = "edit_ready"
	StateSubmitting  FormState = "submitting"
	StateDone        FormState = "done"
	StateFailed      FormState = "failed"
)

// FormFields holds the raw user input. Everything is a string until
// validation parses it; numeric fields render without trailing zeros.
type FormFields struct {
	Name            string
	Category        string
	UnitPrice       string
	QuantityInStock string
	ExpirationDate  string
}

// Form is the create/edit view model. A successful submit invalidates the
// listing and metrics view models and records the page to navigate to.
type Form struct {
	State  FormState
	Fields FormFields
	Errors map[string]string
	Err    error

	// Destination is the 1-based listing page to show after a successful
	// submit. Creates land on the last page so the new row is visible.
	Destination int

	client  *Client
	listing *Listing
	metrics *Metrics
	id      int64
}

func NewCreateForm(c *Client, listing *Listing, metrics *Metrics) *Form {
	return &Form{
		State:       StateCreate,
		Errors:      map[string]string{},
		Destination: 1,
		client:      c,
		listing:     listing,
		metrics:     metrics,
	}
}

func NewEditForm(c *Client, listing *Listing, metrics *Metrics, id int64) *Form {
	return &Form{
		State:       StateEditLoading,
		Errors:      map[string]string{},
		Destination: 1,
		client:      c,
		listing:     listing,
		metrics:     metrics,
		id:          id,
	}
}

// Load fetches the product being edited and fills the fields. A missing
// record is an unrecoverable failure for this form instance.
func (f *Form) Load(ctx context.Context) error {
	if f.State != StateEditLoading {
		return nil
	}
	p, err := f.client.GetProduct(ctx, f.id)
	if err != nil {
		f.State = StateFailed
		f.Err = err
		return err
	}

	f.Fields = FormFields{
		Name:            p.Name,
		Category:        p.Category,
		UnitPrice:       strconv.FormatFloat(p.UnitPrice, 'f', -1, 64),
		QuantityInStock: strconv.FormatInt(p.QuantityInStock, 10),
		ExpirationDate:  p.ExpirationDate,
	}
	f.State = StateEditReady
	return nil
}

// Validate checks the fields and fills Errors with per-field messages.
// An empty stock field counts as zero; an empty price does not.
func (f *Form) Validate() bool {
	f.Errors = map[string]string{}

	if f.Fields.Name == "" || len(f.Fields.Name) > domproduct.MaxNameLength {
		f.Errors["name"] = "Name is required (max 120 characters)"
	}

	if f.Fields.Category == "" {
		f.Errors["category"] = "Category is required"
	} else if _, err := domproduct.ParseCategory(f.Fields.Category); err != nil {
		f.Errors["category"] = "Category must be one of electronics, food, clothing"
	}

	if f.Fields.UnitPrice == "" {
		f.Errors["unitPrice"] = "Unit price is required"
	} else if price, err := strconv.ParseFloat(f.Fields.UnitPrice, 64); err != nil {
		f.Errors["unitPrice"] = "Unit price must be a number"
	} else if price < 0 {
		f.Errors["unitPrice"] = "Unit price must not be negative"
	}

	if f.Fields.QuantityInStock != "" {
		if qty, err := strconv.ParseInt(f.Fields.QuantityInStock, 10, 64); err != nil {
			f.Errors["quantityInStock"] = "Stock must be a whole number"
		} else if qty < 0 {
			f.Errors["quantityInStock"] = "Stock must not be negative"
		}
	}

	if f.Fields.ExpirationDate != "" {
		if _, err := time.Parse("2006-01-02", f.Fields.ExpirationDate); err != nil {
			f.Errors["expirationDate"] = "Expiration date must be yyyy-mm-dd"
		}
	}

	return len(f.Errors) == 0
}

// Submit validates and issues the create or update request. Validation
// failures never reach the network; the form keeps its state and the
// per-field messages. A network failure keeps the input and records an
// action-specific error.
func (f *Form) Submit(ctx context.Context) error {
	if !f.Validate() {
		return ErrValidation
	}

	editing := f.id != 0
	prev := f.State
	f.State = StateSubmitting

	payload := f.payload()
	var err error
	if editing {
		payload.ID = f.id
		_, err = f.client.UpdateProduct(ctx, payload)
	} else {
		_, err = f.client.CreateProduct(ctx, payload)
	}
	if err != nil {
		f.State = prev
		f.Err = err
		return err
	}

	if editing {
		f.Destination = 1
	} else {
		// Land on the last page of the refreshed listing so the new
		// record is visible.
		if page, perr := f.client.ListProducts(ctx, DefaultQuery().Values()); perr == nil && page.TotalPages > 0 {
			f.Destination = page.TotalPages
		} else {
			f.Destination = 1
		}
	}

	if f.listing != nil {
		f.listing.Invalidate()
	}
	if f.metrics != nil {
		f.metrics.Invalidate()
	}

	f.Err = nil
	f.State = StateDone
	return nil
}

func (f *Form) payload() Product {
	price, _ := strconv.ParseFloat(f.Fields.UnitPrice, 64)
	var qty int64
	if f.Fields.QuantityInStock != "" {
		qty, _ = strconv.ParseInt(f.Fields.QuantityInStock, 10, 64)
	}
	return Product{
		Name:            f.Fields.Name,
		Category:        f.Fields.Category,
		UnitPrice:       price,
		QuantityInStock: qty,
		ExpirationDate:  f.Fields.ExpirationDate,
	}
}

// FieldError returns the validation message for a field, empty when clean.
func (f *Form) FieldError(field string) string {
	return f.Errors[field]
}

func (f *Form) String() string {
	return fmt.Sprintf("form(state=%s, id=%d)", f.State, f.id)
}
