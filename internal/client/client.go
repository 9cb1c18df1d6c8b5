package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound reports a 404 from the API.
var ErrNotFound = errors.New("not found")

// APIError is any non-2xx response other than a 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Product is the wire representation exchanged with the API. ExpirationDate
// is a plain yyyy-mm-dd string, empty when absent.
type Product struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	UnitPrice       float64 `json:"unitPrice"`
	QuantityInStock int64   `json:"quantityInStock"`
	ExpirationDate  string  `json:"expirationDate,omitempty"`
}

type Page struct {
	Content       []Product `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// Client is a thin wrapper over the product API.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &result); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	c.token = result.Token
	return result.Token, nil
}

func (c *Client) ListProducts(ctx context.Context, query url.Values) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &page, nil
}

// ListAllProducts fetches the full unpaginated product set in one request.
func (c *Client) ListAllProducts(ctx context.Context) ([]Product, error) {
	query := url.Values{"page": {"0"}, "size": {"1000"}}
	var page Page
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &page); err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return page.Content, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), nil, nil, &p); err != nil {
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var created Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, p, &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p Product) (*Product, error) {
	var updated Product
	path := "/api/products/" + strconv.FormatInt(p.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, p, &updated); err != nil {
		return nil, fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return &updated, nil
}

func (c *Client) MarkOutOfStock(ctx context.Context, id int64) (*Product, error) {
	var p Product
	path := "/api/products/" + strconv.FormatInt(id, 10) + "/outofstock"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &p); err != nil {
		return nil, fmt.Errorf("mark product %d out of stock: %w", id, err)
	}
	return &p, nil
}

func (c *Client) MarkInStock(ctx context.Context, id int64, quantity int64) (*Product, error) {
	var p Product
	path := "/api/products/" + strconv.FormatInt(id, 10) + "/instock"
	query := url.Values{"quantity": {strconv.FormatInt(quantity, 10)}}
	if err := c.do(ctx, http.MethodPut, path, query, nil, &p); err != nil {
		return nil, fmt.Errorf("restock product %d: %w", id, err)
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := "/api/products/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
