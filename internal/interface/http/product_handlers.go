package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

const dateLayout = "2006-01-02"

// parseListFilter reads the listing query parameters. page is 0-based on the
// wire; sortBy carries "field,dir" and defaults to newest-first by id.
func parseListFilter(r *http.Request) domproduct.ListFilter {
	q := r.URL.Query()

	filter := domproduct.ListFilter{
		Name:      q.Get("name"),
		Category:  q.Get("category"),
		Available: strings.ToLower(q.Get("available")),
		SortKey:   domproduct.SortByID,
		Desc:      true,
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	filter.Size = domproduct.DefaultPageSize
	if size, err := strconv.Atoi(q.Get("size")); err == nil && size > 0 {
		filter.Size = size
	}

	if sortBy := q.Get("sortBy"); sortBy != "" {
		parts := strings.SplitN(sortBy, ",", 2)
		filter.SortKey = parts[0]
		filter.Desc = len(parts) < 2 || !strings.EqualFold(parts[1], "asc")
	}

	return filter
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := a.productSvc.List(r.Context(), parseListFilter(r))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPage(page))
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

type productRequest struct {
	ID              *int64   `json:"id"`
	Name            string   `json:"name" validate:"required,max=120"`
	Category        string   `json:"category" validate:"required"`
	UnitPrice       *float64 `json:"unitPrice" validate:"required,gte=0"`
	QuantityInStock *int64   `json:"quantityInStock" validate:"required,gte=0"`
	ExpirationDate  string   `json:"expirationDate" validate:"omitempty,datetime=2006-01-02"`
}

func (req *productRequest) toDomain() *domproduct.Product {
	p := &domproduct.Product{
		Name:            req.Name,
		Category:        domproduct.Category(req.Category),
		UnitPrice:       *req.UnitPrice,
		QuantityInStock: *req.QuantityInStock,
	}
	if req.ExpirationDate != "" {
		// Format already validated.
		d, _ := time.Parse(dateLayout, req.ExpirationDate)
		p.ExpirationDate = &d
	}
	return p
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	created, err := a.productSvc.Create(r.Context(), req.toDomain())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(created))
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if req.ID != nil && *req.ID != id {
		handleDomainError(w, domproduct.ErrIDMismatch)
		return
	}

	p := req.toDomain()
	p.ID = id
	updated, err := a.productSvc.Update(r.Context(), p)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(updated))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.productSvc.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMarkOutOfStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := a.productSvc.MarkOutOfStock(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleMarkInStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	quantity := int64(1)
	if qStr := r.URL.Query().Get("quantity"); qStr != "" {
		quantity, err = strconv.ParseInt(qStr, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	p, err := a.productSvc.MarkInStock(r.Context(), id, quantity)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func mapProduct(p *domproduct.Product) map[string]any {
	m := map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"category":        string(p.Category),
		"unitPrice":       p.UnitPrice,
		"quantityInStock": p.QuantityInStock,
	}
	if p.ExpirationDate != nil {
		m["expirationDate"] = p.ExpirationDate.Format(dateLayout)
	}
	return m
}

func mapPage(page *domproduct.Page) map[string]any {
	content := make([]map[string]any, 0, len(page.Content))
	for _, p := range page.Content {
		content = append(content, mapProduct(p))
	}
	return map[string]any{
		"content":       content,
		"totalElements": page.TotalElements,
		"totalPages":    page.TotalPages,
		"number":        page.Number,
		"size":          page.Size,
	}
}
