package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
	domuser "github.com/JoelVR2k/InventoryManager/internal/domain/user"
	httpapi "github.com/JoelVR2k/InventoryManager/internal/interface/http"
	"github.com/JoelVR2k/InventoryManager/internal/infra/persistence/memory"
	authuc "github.com/JoelVR2k/InventoryManager/internal/usecase/auth"
	metricsuc "github.com/JoelVR2k/InventoryManager/internal/usecase/metrics"
	productuc "github.com/JoelVR2k/InventoryManager/internal/usecase/product"
)

const (
	adminToken = "test-admin-token"
	staffToken = "test-staff-token"
)

type stubTokens struct{}

func (stubTokens) GenerateToken(u *domuser.User) (string, error) {
	if u.RoleCode == domuser.RoleCodeAdmin {
		return adminToken, nil
	}
	return staffToken, nil
}

func (stubTokens) ParseToken(token string) (*authuc.Claims, error) {
	switch token {
	case adminToken:
		return &authuc.Claims{UserID: 1, RoleCode: domuser.RoleCodeAdmin, Email: "admin@example.com"}, nil
	case staffToken:
		return &authuc.Claims{UserID: 2, RoleCode: domuser.RoleCodeStaff, Email: "staff@example.com"}, nil
	}
	return nil, errors.New("invalid token")
}

type plainComparer struct{}

func (plainComparer) Compare(hash, password string) error {
	if hash != password {
		return errors.New("mismatch")
	}
	return nil
}

type testEnv struct {
	router http.Handler
	repo   *memory.ProductRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	productRepo := memory.NewProductRepository()
	userRepo := memory.NewUserRepository()
	_, err := userRepo.Create(context.Background(), &domuser.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: "secret",
		RoleCode:     domuser.RoleCodeAdmin,
	})
	require.NoError(t, err)

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService: productuc.NewService(productRepo, nil),
		MetricsService: metricsuc.NewService(productRepo, nil),
		AuthService:    authuc.NewService(userRepo, plainComparer{}, stubTokens{}),
		TokenService:   stubTokens{},
	})
	return &testEnv{router: api.Router(), repo: productRepo}
}

func (e *testEnv) seed(t *testing.T, products ...*domproduct.Product) {
	t.Helper()
	for _, p := range products {
		_, err := e.repo.Create(context.Background(), p)
		require.NoError(t, err)
	}
}

func (e *testEnv) request(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sampleCatalog() []*domproduct.Product {
	return []*domproduct.Product{
		{Name: "Laptop", Category: domproduct.CategoryElectronics, UnitPrice: 1200, QuantityInStock: 50},
		{Name: "Bread", Category: domproduct.CategoryFood, UnitPrice: 2.50, QuantityInStock: 10},
		{Name: "Milk", Category: domproduct.CategoryFood, UnitPrice: 3, QuantityInStock: 0},
		{Name: "Jeans", Category: domproduct.CategoryClothing, UnitPrice: 50, QuantityInStock: 5},
	}
}

func contentNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	content, ok := body["content"].([]any)
	require.True(t, ok)
	names := make([]string, 0, len(content))
	for _, item := range content {
		names = append(names, item.(map[string]any)["name"].(string))
	}
	return names
}
