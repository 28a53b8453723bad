package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReports struct {
	defaultYear int
}

func (s *stubReports) FilterOptions(ctx context.Context) (*entity.FilterOptions, error) {
	return &entity.FilterOptions{}, nil
}

func (s *stubReports) DefaultYear(ctx context.Context) (int, error) {
	return s.defaultYear, nil
}

func (s *stubReports) SalesReport(ctx context.Context, fs entity.FilterState) (*entity.SalesReport, error) {
	return &entity.SalesReport{}, nil
}

func (s *stubReports) OrderList(ctx context.Context, fs entity.FilterState) (*entity.OrderList, error) {
	return &entity.OrderList{}, nil
}

func (s *stubReports) NotificationReport(ctx context.Context, fs entity.FilterState) (*entity.NotificationReport, error) {
	return &entity.NotificationReport{}, nil
}

func (s *stubReports) PackageReport(ctx context.Context, fs entity.FilterState) (*entity.PackageReport, error) {
	return &entity.PackageReport{}, nil
}

func (s *stubReports) EnrollmentReport(ctx context.Context, fs entity.FilterState) (*entity.EnrollmentReport, error) {
	return &entity.EnrollmentReport{}, nil
}

func (s *stubReports) Now() time.Time { return time.Now() }

func paramServer() *Server {
	return &Server{reports: &stubReports{defaultYear: 2024}}
}

func parse(t *testing.T, target string) (entity.FilterState, error) {
	t.Helper()
	r := httptest.NewRequest("GET", target, nil)
	return paramServer().parseFilters(r)
}

func TestParseFiltersDefaults(t *testing.T) {
	fs, err := parse(t, "/api/reports/sales")
	require.NoError(t, err)

	assert.Equal(t, 2024, fs.Year, "absent year falls back to latest data year")
	assert.Equal(t, entity.MonthAll, fs.Month)
	assert.Equal(t, entity.PeriodThisMonth, fs.Period)
	assert.Equal(t, 1, fs.Page)
}

func TestParseFiltersFullQuery(t *testing.T) {
	fs, err := parse(t, "/api/reports/sales?year=2023&month=4&status=delivered&salesperson_id=7&period=last_month&search=acme&sort_by=revenue&sort_direction=asc&page=3&page_size=50")
	require.NoError(t, err)

	assert.Equal(t, 2023, fs.Year)
	assert.Equal(t, 4, fs.Month)
	assert.Equal(t, "delivered", fs.Status)
	assert.Equal(t, 7, fs.SalespersonID)
	assert.Equal(t, entity.PeriodLastMonth, fs.Period)
	assert.Equal(t, "acme", fs.Search)
	assert.Equal(t, "revenue", fs.SortBy)
	assert.Equal(t, entity.SortAsc, fs.SortDirection)
	assert.Equal(t, 3, fs.Page)
	assert.Equal(t, 50, fs.PageSize)
}

func TestParseFiltersAllSentinels(t *testing.T) {
	fs, err := parse(t, "/api/reports/notifications?month=all&channel=all&salesperson_id=all")
	require.NoError(t, err)

	assert.Equal(t, entity.MonthAll, fs.Month)
	assert.Empty(t, fs.Channel)
	assert.Equal(t, entity.SalespersonAll, fs.SalespersonID)
}

func TestParseFiltersCustomDates(t *testing.T) {
	fs, err := parse(t, "/api/reports/sales?start_date=2024-03-01&end_date=2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, entity.PeriodCustom, fs.Period, "explicit dates switch the period to custom")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), fs.StartDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), fs.EndDate)
}

func TestParseFiltersRejects(t *testing.T) {
	for name, target := range map[string]string{
		"bad year":            "/x?year=twenty",
		"month zero":          "/x?month=0",
		"month thirteen":      "/x?month=13",
		"unknown status":      "/x?status=lost",
		"unknown channel":     "/x?channel=pigeon",
		"negative sp id":      "/x?salesperson_id=-1",
		"unknown period":      "/x?period=fortnight",
		"bad sort direction":  "/x?sort_by=revenue&sort_direction=sideways",
		"bad start date":      "/x?start_date=03/01/2024&end_date=2024-03-15",
		"start only":          "/x?start_date=2024-03-01",
		"inverted range":      "/x?start_date=2024-03-15&end_date=2024-03-01",
		"page zero":           "/x?page=0",
		"page size too large": "/x?page_size=501",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, target)
			assert.Error(t, err)
		})
	}
}
