package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		want     string
	}{
		{"zero denominator", 10, 0, "0"},
		{"zero numerator", 0, 100, "0"},
		{"full", 100, 100, "100"},
		{"rounds to one decimal", 1, 3, "33.3"},
		{"rounds up", 2, 3, "66.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rate(tt.num, tt.den)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestRateBounds(t *testing.T) {
	// rates stay in [0,100] for counter pairs where num <= den
	for num := 0; num <= 50; num += 7 {
		for den := num; den <= 60; den += 9 {
			r := Rate(num, den)
			assert.True(t, r.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, r.LessThanOrEqual(decimal.NewFromInt(100)))
		}
	}
}

func TestDeliveryRate(t *testing.T) {
	assert.True(t, DeliveryRate(0, 0).IsZero())
	assert.True(t, DeliveryRate(90, 10).Equal(decimal.RequireFromString("90")))
	assert.True(t, DeliveryRate(1, 2).Equal(decimal.RequireFromString("33.3")))
}

func TestSavingsPct(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	assert.True(t, SavingsPct(price("80"), price("100")).Equal(price("20")))
	assert.True(t, SavingsPct(price("66.66"), price("100")).Equal(price("33.34")))
	// two decimal places for savings
	assert.True(t, SavingsPct(price("100"), price("300")).Equal(price("66.67")))
	// no savings when the package costs as much or more than its parts
	assert.True(t, SavingsPct(price("100"), price("100")).IsZero())
	assert.True(t, SavingsPct(price("120"), price("100")).IsZero())
	// zero original price never divides
	assert.True(t, SavingsPct(price("10"), price("0")).IsZero())
}

func TestChangePct(t *testing.T) {
	cur := decimal.NewFromInt(150)
	prev := decimal.NewFromInt(100)

	got := ChangePct(cur, prev)
	require.NotNil(t, got)
	assert.InDelta(t, 50.0, *got, 0.001)

	down := ChangePct(prev, cur)
	require.NotNil(t, down)
	assert.InDelta(t, -33.3, *down, 0.001)
}

func TestChangePct_NoComparisonSentinel(t *testing.T) {
	// previous year total 0, current 100: the sentinel is nil, never a
	// division error or infinity
	got := ChangePct(decimal.NewFromInt(100), decimal.Zero)
	assert.Nil(t, got)

	gotInt := ChangePctInt(100, 0)
	assert.Nil(t, gotInt)
}

func TestAvgOrderValue(t *testing.T) {
	// 50 paid orders totalling 10,000 -> exactly 200.00
	got := AvgOrderValue(decimal.NewFromInt(10000), 50)
	assert.Equal(t, "200", got.String())
	assert.Equal(t, "200.00", got.StringFixed(2))

	assert.True(t, AvgOrderValue(decimal.NewFromInt(10000), 0).IsZero())
}
