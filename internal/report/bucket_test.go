package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	Sent   int
	Opened int
}

func TestNewYearBuckets_ZeroFilled(t *testing.T) {
	pb := NewYearBuckets[counters](2024)

	keys := pb.Keys()
	require.Len(t, keys, 12)
	for i, k := range keys {
		assert.Equal(t, 2024, k.Year)
		assert.Equal(t, i+1, k.Month)
		b := pb.Get(k)
		require.NotNil(t, b)
		assert.Zero(t, b.Sent)
		assert.Zero(t, b.Opened)
	}
}

func TestMerge_AdditiveAcrossSources(t *testing.T) {
	pb := NewYearBuckets[counters](2024)
	key := MonthKey{Year: 2024, Month: 3}

	// two sources contribute to the same bucket
	pb.Merge(key, func(c *counters) { c.Sent += 10; c.Opened += 4 })
	pb.Merge(key, func(c *counters) { c.Sent += 5 })

	b := pb.Get(key)
	assert.Equal(t, 15, b.Sent)
	assert.Equal(t, 4, b.Opened)

	// untouched months stay zero-filled, never missing
	for m := 1; m <= 12; m++ {
		require.NotNil(t, pb.Get(MonthKey{Year: 2024, Month: m}))
	}
}

func TestMerge_DropsRowsOutsideRange(t *testing.T) {
	pb := NewYearBuckets[counters](2024)
	pb.Merge(MonthKey{Year: 2023, Month: 12}, func(c *counters) { c.Sent = 99 })

	for _, k := range pb.Keys() {
		assert.Zero(t, pb.Get(k).Sent)
	}
}

func TestNewMonthBuckets_Range(t *testing.T) {
	pb := NewMonthBuckets[counters](MonthKey{2023, 11}, MonthKey{2024, 2})
	keys := pb.Keys()
	require.Len(t, keys, 4)
	assert.Equal(t, MonthKey{2023, 11}, keys[0])
	assert.Equal(t, MonthKey{2024, 2}, keys[3])
}

func TestCollect_ChronologicalOrder(t *testing.T) {
	pb := NewYearBuckets[counters](2024)
	pb.Merge(MonthKey{2024, 7}, func(c *counters) { c.Sent = 7 })

	months := Collect(pb, func(k MonthKey, c *counters) int { return c.Sent })
	require.Len(t, months, 12)
	assert.Equal(t, 7, months[6])
}
