package store

import (
	"testing"
	"time"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestOrderFilterParams(t *testing.T) {
	fs := entity.NewFilterState(2024).
		WithStatus("cancelled").
		WithSalesperson(42).
		WithSearch("acme")
	tr := entity.TimeRange{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	params := orderFilterParams(fs, tr)

	assert.Equal(t, "cancelled", params["status"])
	assert.Equal(t, 42, params["salesperson_id"])
	assert.Equal(t, "acme", params["search"])
	assert.Equal(t, "%acme%", params["search_like"])
	assert.Equal(t, tr.From, params["from"])
	assert.Equal(t, tr.To, params["to"])
}

func TestRevenueExcludedParamsCoverAllExcludedStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"cancelled", "refunded", "draft"}, revenueExcluded)
}

func TestOrderSortColumnsWhitelist(t *testing.T) {
	for _, col := range []string{"placed_at", "total_amount", "order_number", "status"} {
		_, ok := orderSortColumns[col]
		assert.True(t, ok, col)
	}
	// anything else falls back to placed_at in Orders
	_, ok := orderSortColumns["metadata"]
	assert.False(t, ok)
}
