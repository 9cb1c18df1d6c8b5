package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, adminToken, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "admin@example.com", user["email"])
	require.Equal(t, "admin", user["role_code"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, details, "email")
	require.Contains(t, details, "password")
}
