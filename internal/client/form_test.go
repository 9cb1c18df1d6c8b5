package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyFormValidation(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	f := NewCreateForm(New(srv.URL), nil, nil)
	err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, requests, "validation failure must not reach the network")

	// Name, category and price are required; stock defaults to zero and
	// the expiration date is optional, so neither produces a message.
	require.Len(t, f.Errors, 3)
	require.NotEmpty(t, f.FieldError("name"))
	require.NotEmpty(t, f.FieldError("category"))
	require.NotEmpty(t, f.FieldError("unitPrice"))
	require.Empty(t, f.FieldError("quantityInStock"))
	require.Empty(t, f.FieldError("expirationDate"))
}

func TestFormFieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FormFields)
		field   string
		message bool
	}{
		{"bad price", func(ff *FormFields) { ff.UnitPrice = "abc" }, "unitPrice", true},
		{"negative price", func(ff *FormFields) { ff.UnitPrice = "-1" }, "unitPrice", true},
		{"zero price ok", func(ff *FormFields) { ff.UnitPrice = "0" }, "unitPrice", false},
		{"bad stock", func(ff *FormFields) { ff.QuantityInStock = "ten" }, "quantityInStock", true},
		{"negative stock", func(ff *FormFields) { ff.QuantityInStock = "-5" }, "quantityInStock", true},
		{"unknown category", func(ff *FormFields) { ff.Category = "toys" }, "category", true},
		{"legacy category ok", func(ff *FormFields) { ff.Category = "clothes" }, "category", false},
		{"bad date", func(ff *FormFields) { ff.ExpirationDate = "31-08-2026" }, "expirationDate", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCreateForm(nil, nil, nil)
			f.Fields = FormFields{Name: "Bread", Category: "food", UnitPrice: "2.50"}
			tt.mutate(&f.Fields)
			f.Validate()
			if tt.message {
				require.NotEmpty(t, f.FieldError(tt.field))
			} else {
				require.Empty(t, f.FieldError(tt.field))
			}
		})
	}
}

func TestCreateSubmitNavigatesToLastPage(t *testing.T) {
	creates := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			creates++
			var p Product
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			require.Equal(t, "Keyboard", p.Name)
			require.Equal(t, 49.99, p.UnitPrice)
			p.ID = 11
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(p)
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(Page{TotalElements: 11, TotalPages: 2})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	listing := NewListing(c)
	listing.dirty = false
	metrics := NewMetrics(c)
	metrics.dirty = false

	f := NewCreateForm(c, listing, metrics)
	f.Fields = FormFields{Name: "Keyboard", Category: "electronics", UnitPrice: "49.99", QuantityInStock: "30"}

	require.NoError(t, f.Submit(context.Background()))
	require.Equal(t, StateDone, f.State)
	require.Equal(t, 1, creates, "exactly one create request")
	require.Equal(t, 2, f.Destination, "new record lands on the last page")
	require.True(t, listing.Dirty())
	require.True(t, metrics.Dirty())
}

func TestEditLoadFormatsPriceWithoutTrailingZeros(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Product{
			ID: 1, Name: "Laptop", Category: "electronics",
			UnitPrice: 1200, QuantityInStock: 50,
		})
	}))
	defer srv.Close()

	f := NewEditForm(New(srv.URL), nil, nil, 1)
	require.NoError(t, f.Load(context.Background()))
	require.Equal(t, StateEditReady, f.State)
	require.Equal(t, "1200", f.Fields.UnitPrice)
	require.Equal(t, "50", f.Fields.QuantityInStock)
}

func TestEditLoadMissingProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewEditForm(New(srv.URL), nil, nil, 99)
	err := f.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, StateFailed, f.State)
}

func TestEditSubmitSendsID(t *testing.T) {
	var gotPath string
	var gotID int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		var p Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		gotID = p.ID
		_ = json.NewEncoder(w).Encode(p)
	}))
	defer srv.Close()

	f := NewEditForm(New(srv.URL), nil, nil, 7)
	f.State = StateEditReady
	f.Fields = FormFields{Name: "Jeans", Category: "clothing", UnitPrice: "50", QuantityInStock: "5"}

	require.NoError(t, f.Submit(context.Background()))
	require.Equal(t, "/api/products/7", gotPath)
	require.Equal(t, int64(7), gotID)
	require.Equal(t, 1, f.Destination, "edits return to the first page")
}

func TestSubmitFailureKeepsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
	}))
	defer srv.Close()

	f := NewCreateForm(New(srv.URL), nil, nil)
	f.Fields = FormFields{Name: "Bread", Category: "food", UnitPrice: "2.50"}

	err := f.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateCreate, f.State)
	require.Equal(t, "Bread", f.Fields.Name)
	require.Error(t, f.Err)
}
