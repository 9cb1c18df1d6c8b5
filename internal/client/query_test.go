package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultQueryValues(t *testing.T) {
	values := DefaultQuery().Values()

	require.Equal(t, "0", values.Get("page"))
	require.Equal(t, "10", values.Get("size"))
	require.Equal(t, "id,desc", values.Get("sortBy"))
	require.Empty(t, values.Get("name"))
	require.Empty(t, values.Get("category"))
	require.Empty(t, values.Get("available"))
}

func TestQueryValuesWithFilters(t *testing.T) {
	q := DefaultQuery()
	q.SubmitSearch("milk")
	q.SetCategory("food")
	q.SetAvailability(AvailabilityOutOfStock)
	q.SetPage(3)

	values := q.Values()
	require.Equal(t, "2", values.Get("page"))
	require.Equal(t, "milk", values.Get("name"))
	require.Equal(t, "food", values.Get("category"))
	require.Equal(t, "out", values.Get("available"))
}

func TestFilterChangesResetPage(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Query)
	}{
		{"search", func(q *Query) { q.SubmitSearch("x") }},
		{"category", func(q *Query) { q.SetCategory("food") }},
		{"availability", func(q *Query) { q.SetAvailability(AvailabilityInStock) }},
		{"clear", func(q *Query) { q.ClearFilters() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuery()
			q.SetPage(5)
			tt.apply(&q)
			require.Equal(t, 1, q.Page)
		})
	}
}

func TestToggleSortFlipsDirection(t *testing.T) {
	q := DefaultQuery()
	require.True(t, q.Desc)

	q.ToggleSort("name")
	require.Equal(t, "name", q.SortKey)
	require.False(t, q.Desc)

	q.ToggleSort("name")
	require.True(t, q.Desc)

	// Switching column flips too; the direction carries over from the
	// previous column rather than resetting.
	q.ToggleSort("unitPrice")
	require.Equal(t, "unitPrice", q.SortKey)
	require.False(t, q.Desc)
}

func TestClearFiltersKeepsSort(t *testing.T) {
	q := DefaultQuery()
	q.SubmitSearch("bread")
	q.SetCategory("food")
	q.ToggleSort("unitPrice")

	q.ClearFilters()
	require.Empty(t, q.Name)
	require.Empty(t, q.Category)
	require.Equal(t, AvailabilityAll, q.Availability)
	require.Equal(t, "unitPrice", q.SortKey)
}

func TestSetPageClampsToOne(t *testing.T) {
	q := DefaultQuery()
	q.SetPage(0)
	require.Equal(t, 1, q.Page)
	q.SetPage(-3)
	require.Equal(t, 1, q.Page)
}
