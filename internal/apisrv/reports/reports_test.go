package reports

import (
	"context"
	"testing"
	"time"

	"github.com/akademia/backoffice-manager/internal/dependency"
	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	sales         stubSales
	notifications stubNotifications
	packages      stubPackages
	enrollments   stubEnrollments
	filters       stubFilters
}

func (r *stubRepo) Sales() dependency.Sales                 { return &r.sales }
func (r *stubRepo) Notifications() dependency.Notifications { return &r.notifications }
func (r *stubRepo) Packages() dependency.Packages           { return &r.packages }
func (r *stubRepo) Enrollments() dependency.Enrollments     { return &r.enrollments }
func (r *stubRepo) Admin() dependency.Admin                 { return nil }
func (r *stubRepo) Filters() dependency.Filters             { return &r.filters }
func (r *stubRepo) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	return f(ctx, r)
}
func (r *stubRepo) TxBegin(ctx context.Context) (dependency.Repository, error) { return r, nil }
func (r *stubRepo) TxCommit(ctx context.Context) error                         { return nil }
func (r *stubRepo) Ping(ctx context.Context) error                             { return nil }
func (r *stubRepo) TxRollback(ctx context.Context) error                       { return nil }
func (r *stubRepo) Close()                                                     {}
func (r *stubRepo) IsErrorRepeat(err error) bool                               { return false }

type stubSales struct {
	monthly   map[int]entity.SalesMonth
	current   entity.SalesSummary
	previous  entity.SalesSummary
	bySp      []entity.SalespersonMetric
	statuses  []entity.StatusCount
	pivotRows []entity.SalesPivotRow
	orders    []entity.Order
	total     int
	ordersFS  entity.FilterState
	queried   bool
}

func (s *stubSales) MonthlyRevenue(ctx context.Context, fs entity.FilterState) (map[int]entity.SalesMonth, error) {
	s.queried = true
	return s.monthly, nil
}

func (s *stubSales) RevenueForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.SalesSummary, error) {
	s.queried = true
	if fs.Year == 2023 {
		return s.previous, nil
	}
	return s.current, nil
}

func (s *stubSales) StatusBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.StatusCount, error) {
	return s.statuses, nil
}

func (s *stubSales) SalespersonRevenue(ctx context.Context, fs entity.FilterState) ([]entity.SalespersonMetric, error) {
	return s.bySp, nil
}

func (s *stubSales) MonthlySalespersonRevenue(ctx context.Context, fs entity.FilterState) ([]entity.SalesPivotRow, error) {
	return s.pivotRows, nil
}

func (s *stubSales) Orders(ctx context.Context, fs entity.FilterState) ([]entity.Order, int, error) {
	s.queried = true
	s.ordersFS = fs
	return s.orders, s.total, nil
}

type stubNotifications struct {
	events        map[int]entity.NotificationMonth
	broadcasts    map[int]entity.BroadcastMonth
	rangeEvents   entity.NotificationCounts
	rangeBc       entity.BroadcastCounts
	prevEvents    entity.NotificationCounts
	prevBroadcast entity.BroadcastCounts
	channels      []entity.ChannelMetric
	classes       []entity.ClassOpenRate
}

func (s *stubNotifications) MonthlyEventCounts(ctx context.Context, fs entity.FilterState) (map[int]entity.NotificationMonth, error) {
	return s.events, nil
}

func (s *stubNotifications) MonthlyBroadcastCounts(ctx context.Context, fs entity.FilterState) (map[int]entity.BroadcastMonth, error) {
	return s.broadcasts, nil
}

func (s *stubNotifications) EventCountsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.NotificationCounts, error) {
	if fs.Year == 2023 {
		return s.prevEvents, nil
	}
	return s.rangeEvents, nil
}

func (s *stubNotifications) BroadcastCountsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.BroadcastCounts, error) {
	if fs.Year == 2023 {
		return s.prevBroadcast, nil
	}
	return s.rangeBc, nil
}

func (s *stubNotifications) ChannelBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.ChannelMetric, error) {
	return s.channels, nil
}

func (s *stubNotifications) ClassEngagement(ctx context.Context, fs entity.FilterState) ([]entity.ClassOpenRate, error) {
	return s.classes, nil
}

type stubPackages struct {
	monthly map[int]entity.PackageMonth
	current entity.PackageCounts
	prev    entity.PackageCounts
	deals   []entity.PackageMetric
}

func (s *stubPackages) MonthlyPurchases(ctx context.Context, fs entity.FilterState) (map[int]entity.PackageMonth, error) {
	return s.monthly, nil
}

func (s *stubPackages) PurchasesForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.PackageCounts, error) {
	if fs.Year == 2023 {
		return s.prev, nil
	}
	return s.current, nil
}

func (s *stubPackages) DealBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.PackageMetric, error) {
	return s.deals, nil
}

type stubEnrollments struct {
	monthly  map[int]entity.EnrollmentMonth
	current  entity.EnrollmentCounts
	prev     entity.EnrollmentCounts
	statuses []entity.StatusCount
}

func (s *stubEnrollments) MonthlyEnrollments(ctx context.Context, fs entity.FilterState) (map[int]entity.EnrollmentMonth, error) {
	return s.monthly, nil
}

func (s *stubEnrollments) EnrollmentsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.EnrollmentCounts, error) {
	if fs.Year == 2023 {
		return s.prev, nil
	}
	return s.current, nil
}

func (s *stubEnrollments) EnrollmentStatusBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.StatusCount, error) {
	return s.statuses, nil
}

type stubFilters struct {
	latest       int
	years        []int
	salespersons []entity.Salesperson
}

func (s *stubFilters) LatestDataYear(ctx context.Context) (int, error) { return s.latest, nil }
func (s *stubFilters) Years(ctx context.Context) ([]int, error)        { return s.years, nil }
func (s *stubFilters) Salespersons(ctx context.Context) ([]entity.Salesperson, error) {
	return s.salespersons, nil
}

func newTestServer(repo *stubRepo) *Server {
	s := New(repo)
	s.now = func() time.Time {
		return time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSalesReport_EmptyYearHasTwelveZeroBuckets(t *testing.T) {
	repo := &stubRepo{}
	s := newTestServer(repo)

	rep, err := s.SalesReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	require.Len(t, rep.Monthly, 12)
	for i, m := range rep.Monthly {
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, 2024, m.Year)
		assert.Zero(t, m.Orders)
		assert.True(t, m.Revenue.IsZero())
		assert.True(t, m.AvgOrder.IsZero())
	}
	assert.Nil(t, rep.Summary.Revenue.ChangePct, "no comparison against an empty previous year")
}

func TestSalesReport_AvgOrderValueExact(t *testing.T) {
	repo := &stubRepo{
		sales: stubSales{
			current: entity.SalesSummary{
				Orders:  entity.MetricWithComparison{Value: decimal.NewFromInt(50)},
				Revenue: entity.MetricWithComparison{Value: decimal.NewFromInt(10000)},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.SalesReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	assert.Equal(t, "200.00", rep.Summary.AvgOrderValue.Value.StringFixed(2))
}

func TestSalesReport_YearOverYearChange(t *testing.T) {
	repo := &stubRepo{
		sales: stubSales{
			current: entity.SalesSummary{
				Revenue: entity.MetricWithComparison{Value: decimal.NewFromInt(1500)},
			},
			previous: entity.SalesSummary{
				Revenue: entity.MetricWithComparison{Value: decimal.NewFromInt(1000)},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.SalesReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	require.NotNil(t, rep.Summary.Revenue.ChangePct)
	assert.InDelta(t, 50.0, *rep.Summary.Revenue.ChangePct, 0.001)
}

func TestSalesReport_InvalidFilterQueriesNothing(t *testing.T) {
	repo := &stubRepo{}
	s := newTestServer(repo)

	fs := entity.NewFilterState(2024).WithMonth(13)
	_, err := s.SalesReport(context.Background(), fs)
	require.Error(t, err)
	assert.False(t, repo.sales.queried, "validation failure must precede any query")
}

func TestSalesReport_PivotMonthSumsMatchMonthly(t *testing.T) {
	repo := &stubRepo{
		sales: stubSales{
			monthly: map[int]entity.SalesMonth{
				1: {Orders: 3, Revenue: decimal.NewFromInt(300)},
			},
			pivotRows: []entity.SalesPivotRow{
				{Month: 1, SalespersonID: 1, SalespersonName: "Aina", Revenue: decimal.NewFromInt(100)},
				{Month: 1, SalespersonID: 2, SalespersonName: "Faiz", Revenue: decimal.NewFromInt(200)},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.SalesReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	for i, m := range rep.Pivot.Months {
		sum := decimal.Zero
		for _, v := range rep.Pivot.Cells[m] {
			sum = sum.Add(v)
		}
		assert.True(t, sum.Equal(rep.Monthly[i].Revenue),
			"month %d: pivot sum %s != monthly total %s", m, sum, rep.Monthly[i].Revenue)
	}
}

func TestOrderList_Pagination(t *testing.T) {
	repo := &stubRepo{
		sales: stubSales{
			orders: []entity.Order{{ID: 26, OrderNumber: "ORD-26"}},
			total:  51,
		},
	}
	s := newTestServer(repo)

	fs := entity.NewFilterState(2024).WithSort("total_amount", entity.SortAsc).WithPage(2)
	list, err := s.OrderList(context.Background(), fs)
	require.NoError(t, err)

	assert.Equal(t, 51, list.Total, "total counts the whole filtered set")
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 25, list.PageSize)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "ORD-26", list.Orders[0].OrderNumber)

	// the sort and page state reach the store untouched
	assert.Equal(t, "total_amount", repo.sales.ordersFS.SortBy)
	assert.Equal(t, 25, repo.sales.ordersFS.Offset())
}

func TestOrderList_InvalidFilterQueriesNothing(t *testing.T) {
	repo := &stubRepo{}
	s := newTestServer(repo)

	_, err := s.OrderList(context.Background(), entity.NewFilterState(2024).WithMonth(13))
	require.Error(t, err)
	assert.False(t, repo.sales.queried)
}

func TestSalesReport_UnattributedRevenueKeepsPivotComplete(t *testing.T) {
	// one of the three January orders carries no salesperson metadata; the
	// store surfaces it as the unassigned bucket
	repo := &stubRepo{
		sales: stubSales{
			monthly: map[int]entity.SalesMonth{
				1: {Orders: 3, Revenue: decimal.NewFromInt(300)},
			},
			pivotRows: []entity.SalesPivotRow{
				{Month: 1, SalespersonID: 7, SalespersonName: "Aina", Revenue: decimal.NewFromInt(200)},
				{Month: 1, SalespersonID: 0, SalespersonName: "Unassigned", Revenue: decimal.NewFromInt(100)},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.SalesReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, v := range rep.Pivot.Cells[1] {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(rep.Monthly[0].Revenue),
		"pivot cell sum %s != monthly total %s", sum, rep.Monthly[0].Revenue)
	require.Len(t, rep.Pivot.Salespersons, 2)
	assert.Equal(t, entity.SalespersonUnassigned, rep.Pivot.Salespersons[0])
}

func TestNotificationReport_MergesBroadcastsAdditively(t *testing.T) {
	repo := &stubRepo{
		notifications: stubNotifications{
			events: map[int]entity.NotificationMonth{
				2: {Sent: 10, Delivered: 8, Opened: 4, Clicked: 1, Failed: 2},
			},
			broadcasts: map[int]entity.BroadcastMonth{
				2: {Sent: 5, Failed: 1},
				9: {Sent: 7},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.NotificationReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)
	require.Len(t, rep.Monthly, 12)

	feb := rep.Monthly[1]
	assert.Equal(t, 15, feb.Sent)
	assert.Equal(t, 3, feb.Failed)
	assert.Equal(t, 4, feb.Opened)
	// 15/(15+3)*100 = 83.3
	assert.Equal(t, "83.3", feb.DeliveryRate.String())

	// broadcast-only month still lands in its bucket
	sep := rep.Monthly[8]
	assert.Equal(t, 7, sep.Sent)

	// untouched months stay fully zeroed with zero rates
	jan := rep.Monthly[0]
	assert.Zero(t, jan.Sent)
	assert.True(t, jan.OpenRate.IsZero())
	assert.True(t, jan.DeliveryRate.IsZero())
}

func TestNotificationReport_TopClassesExcludeZeroSent(t *testing.T) {
	repo := &stubRepo{
		notifications: stubNotifications{
			classes: []entity.ClassOpenRate{
				{ClassID: 1, Sent: 10, Opened: 9},
				{ClassID: 2, Sent: 0, Opened: 0},
				{ClassID: 3, Sent: 10, Opened: 9},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.NotificationReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	require.Len(t, rep.TopClasses, 2)
	// equal open rates keep id order
	assert.Equal(t, 1, rep.TopClasses[0].ClassID)
	assert.Equal(t, 3, rep.TopClasses[1].ClassID)
}

func TestPackageReport_MergesPurchasesAndOrders(t *testing.T) {
	repo := &stubRepo{
		sales: stubSales{
			monthly: map[int]entity.SalesMonth{
				3: {Orders: 4, Revenue: decimal.NewFromInt(400)},
			},
		},
		packages: stubPackages{
			monthly: map[int]entity.PackageMonth{
				3: {Purchases: 2, Revenue: decimal.NewFromInt(150)},
				7: {Purchases: 1, Revenue: decimal.NewFromInt(80)},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.PackageReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)
	require.Len(t, rep.Monthly, 12)

	mar := rep.Monthly[2]
	assert.Equal(t, 2, mar.Purchases)
	assert.Equal(t, 4, mar.Orders)
	assert.Equal(t, "550", mar.Revenue.String())

	// purchase-only month keeps its bucket
	jul := rep.Monthly[6]
	assert.Equal(t, 1, jul.Purchases)
	assert.Zero(t, jul.Orders)
}

func TestPackageReport_SavingsPct(t *testing.T) {
	repo := &stubRepo{
		packages: stubPackages{
			deals: []entity.PackageMetric{
				{PackageID: 1, Name: "Starter", Purchases: 3, Revenue: decimal.NewFromInt(300),
					Price: decimal.NewFromInt(75), OriginalPrice: decimal.NewFromInt(100)},
				{PackageID: 2, Name: "Overpriced", Purchases: 1, Revenue: decimal.NewFromInt(120),
					Price: decimal.NewFromInt(120), OriginalPrice: decimal.NewFromInt(100)},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.PackageReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)

	require.Len(t, rep.TopPackages, 2)
	assert.Equal(t, "25.00", rep.TopPackages[0].SavingsPct.StringFixed(2))
	assert.True(t, rep.TopPackages[1].SavingsPct.IsZero(), "no savings when price >= original")
}

func TestEnrollmentReport_ZeroFilled(t *testing.T) {
	repo := &stubRepo{
		enrollments: stubEnrollments{
			monthly: map[int]entity.EnrollmentMonth{
				5: {Joined: 12, Active: 10, Transferred: 1, Left: 1},
			},
		},
	}
	s := newTestServer(repo)

	rep, err := s.EnrollmentReport(context.Background(), entity.NewFilterState(2024))
	require.NoError(t, err)
	require.Len(t, rep.Monthly, 12)
	assert.Equal(t, 12, rep.Monthly[4].Joined)
	assert.Zero(t, rep.Monthly[0].Joined)
}

func TestFilterOptions(t *testing.T) {
	repo := &stubRepo{
		filters: stubFilters{
			latest: 2024,
			years:  []int{2024, 2023},
			salespersons: []entity.Salesperson{
				{ID: 1, Name: "Aina"},
			},
		},
	}
	s := newTestServer(repo)

	opts, err := s.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2024, opts.LatestYear)
	assert.Contains(t, opts.Periods, entity.PeriodThisMonth)
	assert.Contains(t, opts.Channels, entity.ChannelWhatsapp)
	assert.Len(t, opts.Salespersons, 1)
}
