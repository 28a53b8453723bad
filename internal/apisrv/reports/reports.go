package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/akademia/backoffice-manager/internal/dependency"
	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/akademia/backoffice-manager/internal/report"
	"github.com/shopspring/decimal"
)

const topN = 5

// Server composes store reads into complete report payloads. Every report
// is recomputed from scratch on each call; nothing is cached between
// requests.
type Server struct {
	repo dependency.Repository
	now  func() time.Time
}

// New creates a new reports server.
func New(repo dependency.Repository) *Server {
	return &Server{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Server) Now() time.Time {
	return s.now()
}

// DefaultYear is the latest year with any data, the year a report opens on.
func (s *Server) DefaultYear(ctx context.Context) (int, error) {
	return s.repo.Filters().LatestDataYear(ctx)
}

// FilterOptions returns the recognized filter values for the report UI.
func (s *Server) FilterOptions(ctx context.Context) (*entity.FilterOptions, error) {
	latest, err := s.repo.Filters().LatestDataYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest data year: %w", err)
	}
	years, err := s.repo.Filters().Years(ctx)
	if err != nil {
		return nil, fmt.Errorf("years: %w", err)
	}
	salespersons, err := s.repo.Filters().Salespersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("salespersons: %w", err)
	}

	return &entity.FilterOptions{
		LatestYear: latest,
		Years:      years,
		Periods: []entity.PeriodName{
			entity.PeriodToday,
			entity.PeriodYesterday,
			entity.PeriodThisWeek,
			entity.PeriodThisMonth,
			entity.PeriodLastMonth,
			entity.PeriodThisYear,
			entity.PeriodCustom,
		},
		Channels: []entity.NotificationChannel{
			entity.ChannelEmail,
			entity.ChannelWhatsapp,
			entity.ChannelSMS,
		},
		Statuses: []entity.OrderStatusName{
			entity.OrderPending,
			entity.OrderProcessing,
			entity.OrderShipped,
			entity.OrderDelivered,
			entity.OrderCancelled,
			entity.OrderRefunded,
			entity.OrderDraft,
		},
		Salespersons: salespersons,
	}, nil
}

func compareMetric(current, previous decimal.Decimal) entity.MetricWithComparison {
	v, cv, pct := report.Compare(current, previous)
	return entity.MetricWithComparison{Value: v, CompareValue: cv, ChangePct: pct}
}

// prevRange is the same range shifted one year back, for the
// period-over-period comparison.
func prevRange(tr entity.TimeRange) entity.TimeRange {
	return entity.TimeRange{
		From: tr.From.AddDate(-1, 0, 0),
		To:   tr.To.AddDate(-1, 0, 0),
	}
}

// reportMonths lists the month numbers the report covers: the selected
// month alone, or all 12.
func reportMonths(fs entity.FilterState) []int {
	if fs.Month != entity.MonthAll {
		return []int{fs.Month}
	}
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

// SalesReport computes the sales report for the filter state.
func (s *Server) SalesReport(ctx context.Context, fs entity.FilterState) (*entity.SalesReport, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}

	grouped, err := s.repo.Sales().MonthlyRevenue(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	buckets := report.NewYearBuckets[entity.SalesMonth](fs.Year)
	for m, row := range grouped {
		row := row
		buckets.Merge(report.MonthKey{Year: fs.Year, Month: m}, func(b *entity.SalesMonth) {
			*b = row
		})
	}
	monthly := report.Collect(buckets, func(k report.MonthKey, b *entity.SalesMonth) entity.SalesMonth {
		b.Year = k.Year
		b.Month = k.Month
		b.AvgOrder = report.AvgOrderValue(b.Revenue, b.Orders)
		return *b
	})

	tr := fs.Range(s.now())
	cur, err := s.repo.Sales().RevenueForRange(ctx, fs, tr)
	if err != nil {
		return nil, fmt.Errorf("revenue for range: %w", err)
	}
	prev, err := s.repo.Sales().RevenueForRange(ctx, fs.PrevYear(), prevRange(tr))
	if err != nil {
		return nil, fmt.Errorf("compare revenue for range: %w", err)
	}

	curAvg := report.AvgOrderValue(cur.Revenue.Value, int(cur.Orders.Value.IntPart()))
	prevAvg := report.AvgOrderValue(prev.Revenue.Value, int(prev.Orders.Value.IntPart()))

	summary := entity.SalesSummary{
		Orders:        compareMetric(cur.Orders.Value, prev.Orders.Value),
		Revenue:       compareMetric(cur.Revenue.Value, prev.Revenue.Value),
		AvgOrderValue: compareMetric(curAvg, prevAvg),
		UnitsSold:     compareMetric(cur.UnitsSold.Value, prev.UnitsSold.Value),
	}

	bySalesperson, err := s.repo.Sales().SalespersonRevenue(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("salesperson revenue: %w", err)
	}
	topByRevenue := report.TopN(bySalesperson, topN,
		func(m entity.SalespersonMetric) int { return m.Orders },
		func(a, b entity.SalespersonMetric) bool { return a.Revenue.LessThan(b.Revenue) },
	)
	topByVolume := report.TopN(bySalesperson, topN,
		func(m entity.SalespersonMetric) int { return m.Orders },
		func(a, b entity.SalespersonMetric) bool { return a.Orders < b.Orders },
	)

	statuses, err := s.repo.Sales().StatusBreakdown(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}

	pivotRows, err := s.repo.Sales().MonthlySalespersonRevenue(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly salesperson revenue: %w", err)
	}
	cells := make([]report.PivotCell, 0, len(pivotRows))
	for _, r := range pivotRows {
		cells = append(cells, report.PivotCell{
			Month:       r.Month,
			Salesperson: entity.Salesperson{ID: r.SalespersonID, Name: r.SalespersonName},
			Revenue:     r.Revenue,
		})
	}
	pivot := report.BuildSalesPivot(reportMonths(fs), cells)

	return &entity.SalesReport{
		Year:            fs.Year,
		Summary:         summary,
		Monthly:         monthly,
		TopByRevenue:    topByRevenue,
		TopByVolume:     topByVolume,
		StatusBreakdown: statuses,
		Pivot:           pivot,
	}, nil
}

// OrderList returns one page of the filtered order list behind the sales
// report. The sort and page parameters apply here only; aggregates always
// cover the full filtered set.
func (s *Server) OrderList(ctx context.Context, fs entity.FilterState) (*entity.OrderList, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}

	orders, total, err := s.repo.Sales().Orders(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}

	page := fs.Page
	if page < 1 {
		page = 1
	}
	return &entity.OrderList{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: fs.Limit(),
	}, nil
}

// NotificationReport computes the notification report for the filter state.
// Notification events and broadcast logs are merged additively into the
// same month buckets.
func (s *Server) NotificationReport(ctx context.Context, fs entity.FilterState) (*entity.NotificationReport, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}

	events, err := s.repo.Notifications().MonthlyEventCounts(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly event counts: %w", err)
	}
	broadcasts, err := s.repo.Notifications().MonthlyBroadcastCounts(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly broadcast counts: %w", err)
	}

	buckets := report.NewYearBuckets[entity.NotificationMonth](fs.Year)
	for m, row := range events {
		row := row
		buckets.Merge(report.MonthKey{Year: fs.Year, Month: m}, func(b *entity.NotificationMonth) {
			b.Sent += row.Sent
			b.Delivered += row.Delivered
			b.Opened += row.Opened
			b.Clicked += row.Clicked
			b.Failed += row.Failed
		})
	}
	for m, row := range broadcasts {
		row := row
		buckets.Merge(report.MonthKey{Year: fs.Year, Month: m}, func(b *entity.NotificationMonth) {
			b.Sent += row.Sent
			b.Delivered += row.Sent
			b.Failed += row.Failed
		})
	}
	monthly := report.Collect(buckets, func(k report.MonthKey, b *entity.NotificationMonth) entity.NotificationMonth {
		b.Year = k.Year
		b.Month = k.Month
		b.OpenRate = report.OpenRate(b.Opened, b.Sent)
		b.ClickRate = report.ClickRate(b.Clicked, b.Sent)
		b.DeliveryRate = report.DeliveryRate(b.Sent, b.Failed)
		return *b
	})

	tr := fs.Range(s.now())
	curEv, err := s.repo.Notifications().EventCountsForRange(ctx, fs, tr)
	if err != nil {
		return nil, fmt.Errorf("event counts for range: %w", err)
	}
	curBc, err := s.repo.Notifications().BroadcastCountsForRange(ctx, fs, tr)
	if err != nil {
		return nil, fmt.Errorf("broadcast counts for range: %w", err)
	}
	prevEv, err := s.repo.Notifications().EventCountsForRange(ctx, fs.PrevYear(), prevRange(tr))
	if err != nil {
		return nil, fmt.Errorf("compare event counts for range: %w", err)
	}
	prevBc, err := s.repo.Notifications().BroadcastCountsForRange(ctx, fs.PrevYear(), prevRange(tr))
	if err != nil {
		return nil, fmt.Errorf("compare broadcast counts for range: %w", err)
	}

	curSent := curEv.Sent + curBc.Sent
	curFailed := curEv.Failed + curBc.Failed
	prevSent := prevEv.Sent + prevBc.Sent
	prevFailed := prevEv.Failed + prevBc.Failed

	summary := entity.NotificationSummary{
		Sent:         compareMetric(decimal.NewFromInt(int64(curSent)), decimal.NewFromInt(int64(prevSent))),
		Opened:       compareMetric(decimal.NewFromInt(int64(curEv.Opened)), decimal.NewFromInt(int64(prevEv.Opened))),
		Clicked:      compareMetric(decimal.NewFromInt(int64(curEv.Clicked)), decimal.NewFromInt(int64(prevEv.Clicked))),
		Failed:       compareMetric(decimal.NewFromInt(int64(curFailed)), decimal.NewFromInt(int64(prevFailed))),
		OpenRate:     report.OpenRate(curEv.Opened, curSent),
		ClickRate:    report.ClickRate(curEv.Clicked, curSent),
		DeliveryRate: report.DeliveryRate(curSent, curFailed),
	}

	channels, err := s.repo.Notifications().ChannelBreakdown(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("channel breakdown: %w", err)
	}
	for i := range channels {
		channels[i].OpenRate = report.OpenRate(channels[i].Opened, channels[i].Sent)
		channels[i].DeliveryRate = report.DeliveryRate(channels[i].Sent, channels[i].Failed)
	}

	classes, err := s.repo.Notifications().ClassEngagement(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("class engagement: %w", err)
	}
	for i := range classes {
		classes[i].OpenRate = report.OpenRate(classes[i].Opened, classes[i].Sent)
	}
	topClasses := report.TopN(classes, topN,
		func(c entity.ClassOpenRate) int { return c.Sent },
		func(a, b entity.ClassOpenRate) bool { return a.OpenRate.LessThan(b.OpenRate) },
	)

	return &entity.NotificationReport{
		Year:       fs.Year,
		Summary:    summary,
		Monthly:    monthly,
		ByChannel:  channels,
		TopClasses: topClasses,
	}, nil
}

// PackageReport computes the package deal report for the filter state.
// Package purchases and regular product orders are merged additively into
// the same month buckets; a month with only one source still gets its
// bucket.
func (s *Server) PackageReport(ctx context.Context, fs entity.FilterState) (*entity.PackageReport, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}

	purchases, err := s.repo.Packages().MonthlyPurchases(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly purchases: %w", err)
	}
	orders, err := s.repo.Sales().MonthlyRevenue(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly order revenue: %w", err)
	}

	buckets := report.NewYearBuckets[entity.PackageMonth](fs.Year)
	for m, row := range purchases {
		row := row
		buckets.Merge(report.MonthKey{Year: fs.Year, Month: m}, func(b *entity.PackageMonth) {
			b.Purchases += row.Purchases
			b.Revenue = b.Revenue.Add(row.Revenue)
		})
	}
	for m, row := range orders {
		row := row
		buckets.Merge(report.MonthKey{Year: fs.Year, Month: m}, func(b *entity.PackageMonth) {
			b.Orders += row.Orders
			b.Revenue = b.Revenue.Add(row.Revenue)
		})
	}
	monthly := report.Collect(buckets, func(k report.MonthKey, b *entity.PackageMonth) entity.PackageMonth {
		b.Year = k.Year
		b.Month = k.Month
		return *b
	})

	tr := fs.Range(s.now())
	cur, err := s.repo.Packages().PurchasesForRange(ctx, fs, tr)
	if err != nil {
		return nil, fmt.Errorf("purchases for range: %w", err)
	}
	prev, err := s.repo.Packages().PurchasesForRange(ctx, fs.PrevYear(), prevRange(tr))
	if err != nil {
		return nil, fmt.Errorf("compare purchases for range: %w", err)
	}
	curSales, err := s.repo.Sales().RevenueForRange(ctx, fs, tr)
	if err != nil {
		return nil, fmt.Errorf("order revenue for range: %w", err)
	}
	prevSales, err := s.repo.Sales().RevenueForRange(ctx, fs.PrevYear(), prevRange(tr))
	if err != nil {
		return nil, fmt.Errorf("compare order revenue for range: %w", err)
	}

	deals, err := s.repo.Packages().DealBreakdown(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("deal breakdown: %w", err)
	}
	for i := range deals {
		deals[i].SavingsPct = report.SavingsPct(deals[i].Price, deals[i].OriginalPrice)
	}
	top := report.TopN(deals, topN,
		func(d entity.PackageMetric) int { return d.Purchases },
		func(a, b entity.PackageMetric) bool { return a.Revenue.LessThan(b.Revenue) },
	)

	return &entity.PackageReport{
		Year:        fs.Year,
		Purchases:   compareMetric(decimal.NewFromInt(int64(cur.Purchases)), decimal.NewFromInt(int64(prev.Purchases))),
		Orders:      compareMetric(curSales.Orders.Value, prevSales.Orders.Value),
		Revenue:     compareMetric(cur.Revenue.Add(curSales.Revenue.Value), prev.Revenue.Add(prevSales.Revenue.Value)),
		Monthly:     monthly,
		TopPackages: top,
	}, nil
}

// EnrollmentReport computes the student enrollment report for the filter
// state.
func (s *Server) EnrollmentReport(ctx context.Context, fs entity.FilterState) (*entity.EnrollmentReport, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}

	grouped, err := s.repo.Enrollments().MonthlyEnrollments(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("monthly enrollments: %w", err)
	}
	buckets := report.NewYearBuckets[entity.EnrollmentMonth](fs.Year)
	for m, row := range grouped {
		row := row
		buckets.Merge(report.MonthKey{Year: fs.Year, Month: m}, func(b *entity.EnrollmentMonth) {
			*b = row
		})
	}
	monthly := report.Collect(buckets, func(k report.MonthKey, b *entity.EnrollmentMonth) entity.EnrollmentMonth {
		b.Year = k.Year
		b.Month = k.Month
		return *b
	})

	tr := fs.Range(s.now())
	cur, err := s.repo.Enrollments().EnrollmentsForRange(ctx, fs, tr)
	if err != nil {
		return nil, fmt.Errorf("enrollments for range: %w", err)
	}
	prev, err := s.repo.Enrollments().EnrollmentsForRange(ctx, fs.PrevYear(), prevRange(tr))
	if err != nil {
		return nil, fmt.Errorf("compare enrollments for range: %w", err)
	}

	statuses, err := s.repo.Enrollments().EnrollmentStatusBreakdown(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("enrollment status breakdown: %w", err)
	}

	return &entity.EnrollmentReport{
		Year:     fs.Year,
		Joined:   compareMetric(decimal.NewFromInt(int64(cur.Joined)), decimal.NewFromInt(int64(prev.Joined))),
		Monthly:  monthly,
		ByStatus: statuses,
	}, nil
}
