package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleCatalog()...)

	rec := env.request(t, http.MethodGet, "/api/products/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	categories, ok := body["categories"].([]any)
	require.True(t, ok)
	require.Len(t, categories, 3)

	rows := map[string]map[string]any{}
	for _, c := range categories {
		row := c.(map[string]any)
		rows[row["category"].(string)] = row
	}

	require.Equal(t, float64(50), rows["electronics"]["totalUnitsInStock"])
	require.Equal(t, float64(60000), rows["electronics"]["totalValueInStock"])

	// Out-of-stock milk contributes nothing to the food rollup.
	require.Equal(t, float64(10), rows["food"]["totalUnitsInStock"])
	require.Equal(t, float64(25), rows["food"]["totalValueInStock"])

	overall, ok := body["overall"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(65), overall["totalUnitsInStock"])
}

func TestMetricsEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/products/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Len(t, body["categories"].([]any), 3)
	require.Equal(t, float64(0), body["overall"].(map[string]any)["totalUnitsInStock"])
}
