package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterTransitionsResetPage(t *testing.T) {
	base := NewFilterState(2024).WithPage(7)

	transitions := map[string]FilterState{
		"year":        base.WithYear(2023),
		"month":       base.WithMonth(3),
		"status":      base.WithStatus("delivered"),
		"channel":     base.WithChannel(ChannelEmail),
		"salesperson": base.WithSalesperson(42),
		"period":      base.WithPeriod(PeriodLastMonth),
		"date range":  base.WithDateRange(date(2024, 3, 1), date(2024, 3, 15)),
		"search":      base.WithSearch("ORD-100"),
		"sort":        base.WithSort("total_amount", SortAsc),
	}
	for name, fs := range transitions {
		assert.Equal(t, 1, fs.Page, "%s must reset page", name)
	}

	assert.Equal(t, 9, base.WithPage(9).Page)
}

func TestWithDateRangeSwitchesPeriodToCustom(t *testing.T) {
	fs := NewFilterState(2024).WithDateRange(date(2024, 3, 1), date(2024, 3, 15))
	assert.Equal(t, PeriodCustom, fs.Period)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, NewFilterState(2024).Validate())

	assert.Error(t, NewFilterState(1024).Validate())
	assert.Error(t, NewFilterState(2024).WithMonth(13).Validate())
	assert.Error(t, NewFilterState(2024).WithPeriod("next_month").Validate())

	// custom period requires both dates and start <= end
	fs := NewFilterState(2024)
	fs.Period = PeriodCustom
	assert.Error(t, fs.Validate())

	assert.Error(t, NewFilterState(2024).
		WithDateRange(date(2024, 3, 15), date(2024, 3, 1)).Validate())
	assert.NoError(t, NewFilterState(2024).
		WithDateRange(date(2024, 3, 1), date(2024, 3, 15)).Validate())
}

func TestRangeResolution(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		period   PeriodName
		from, to time.Time
	}{
		{PeriodToday, date(2024, 6, 12), date(2024, 6, 13)},
		{PeriodYesterday, date(2024, 6, 11), date(2024, 6, 12)},
		{PeriodThisWeek, date(2024, 6, 10), date(2024, 6, 17)},
		{PeriodThisMonth, date(2024, 6, 1), date(2024, 7, 1)},
		{PeriodLastMonth, date(2024, 5, 1), date(2024, 6, 1)},
		{PeriodThisYear, date(2024, 1, 1), date(2025, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			tr := NewFilterState(2024).WithPeriod(tt.period).Range(now)
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.to, tr.To)
		})
	}
}

func TestRangeCustomIsEndInclusive(t *testing.T) {
	now := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	fs := NewFilterState(2024).WithDateRange(date(2024, 3, 1), date(2024, 3, 15))
	tr := fs.Range(now)
	assert.Equal(t, date(2024, 3, 1), tr.From)
	assert.Equal(t, date(2024, 3, 16), tr.To)
}

func TestYearRange(t *testing.T) {
	tr := NewFilterState(2024).YearRange(time.UTC)
	assert.Equal(t, date(2024, 1, 1), tr.From)
	assert.Equal(t, date(2025, 1, 1), tr.To)

	tr = NewFilterState(2024).WithMonth(2).YearRange(time.UTC)
	assert.Equal(t, date(2024, 2, 1), tr.From)
	assert.Equal(t, date(2024, 3, 1), tr.To)
}

func TestPrevYearShiftsCustomDates(t *testing.T) {
	fs := NewFilterState(2024).WithDateRange(date(2024, 3, 1), date(2024, 3, 15))
	prev := fs.PrevYear()
	require.Equal(t, 2023, prev.Year)
	assert.Equal(t, date(2023, 3, 1), prev.StartDate)
	assert.Equal(t, date(2023, 3, 15), prev.EndDate)
}

func TestOffset(t *testing.T) {
	fs := NewFilterState(2024)
	assert.Equal(t, 0, fs.Offset())

	fs = fs.WithPage(3)
	assert.Equal(t, 50, fs.Offset())

	fs.PageSize = 10
	assert.Equal(t, 20, fs.Offset())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
