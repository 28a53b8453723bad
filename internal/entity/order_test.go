package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMetadataScan(t *testing.T) {
	var m OrderMetadata
	require.NoError(t, m.Scan([]byte(`{"salesperson_id": 7, "salesperson_name": "Aina"}`)))
	assert.Equal(t, "Aina", m.SalespersonName())

	id, ok := m.SalespersonID()
	require.True(t, ok)
	assert.Equal(t, 7, id)

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)
}

func TestOrderMetadataSalespersonIDCoercion(t *testing.T) {
	// several generations of the admin UI wrote the id differently
	tests := []struct {
		name string
		meta OrderMetadata
		want int
		ok   bool
	}{
		{"number", OrderMetadata{"salesperson_id": float64(42)}, 42, true},
		{"numeric string", OrderMetadata{"salesperson_id": "42"}, 42, true},
		{"int", OrderMetadata{"salesperson_id": 42}, 42, true},
		{"garbage string", OrderMetadata{"salesperson_id": "best seller"}, 0, false},
		{"absent", OrderMetadata{}, 0, false},
		{"nil map", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := tt.meta.SalespersonID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRevenueExcludedStatuses(t *testing.T) {
	for _, s := range RevenueExcludedStatuses {
		assert.True(t, ValidOrderStatusNames[s])
	}
	assert.NotContains(t, RevenueExcludedStatuses, OrderDelivered)
}
