package entity

import (
	"github.com/shopspring/decimal"
)

// MetricWithComparison carries a value, the prior-period value and the
// percentage change. ChangePct is nil when no comparison is available
// (previous period had no data); it is never NaN or infinite.
type MetricWithComparison struct {
	Value        decimal.Decimal  `json:"value"`
	CompareValue *decimal.Decimal `json:"compare_value,omitempty"`
	ChangePct    *float64         `json:"change_pct,omitempty"`
}

// SalesMonth is one month bucket of the sales report.
type SalesMonth struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Orders    int             `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	AvgOrder  decimal.Decimal `json:"avg_order"`
	UnitsSold int             `json:"units_sold"`
}

// SalesSummary is the scalar rollup over the full filtered set, never over
// the visible page.
type SalesSummary struct {
	Orders        MetricWithComparison `json:"orders"`
	Revenue       MetricWithComparison `json:"revenue"`
	AvgOrderValue MetricWithComparison `json:"avg_order_value"`
	UnitsSold     MetricWithComparison `json:"units_sold"`
}

// SalespersonMetric ranks a salesperson by revenue or order count.
type SalespersonMetric struct {
	Salesperson Salesperson     `json:"salesperson"`
	Orders      int             `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SalesPivot is the month x salesperson revenue grid. Months covers every
// month of the report range; Salespersons every distinct id seen in the
// filtered set; Cells is the complete cross-product, zero cells included.
type SalesPivot struct {
	Months       []int                           `json:"months"`
	Salespersons []Salesperson                   `json:"salespersons"`
	Cells        map[int]map[int]decimal.Decimal `json:"cells"` // month -> salesperson id -> revenue
}

// SalesReport is the full aggregate served to the UI and the CSV export.
type SalesReport struct {
	Year            int                 `json:"year"`
	Summary         SalesSummary        `json:"summary"`
	Monthly         []SalesMonth        `json:"monthly"`
	TopByRevenue    []SalespersonMetric `json:"top_by_revenue"`
	TopByVolume     []SalespersonMetric `json:"top_by_volume"`
	StatusBreakdown []StatusCount       `json:"status_breakdown"`
	Pivot           SalesPivot          `json:"pivot"`
}

// OrderList is one page of the filtered order list. Total counts the whole
// filtered set, never the page.
type OrderList struct {
	Orders   []Order `json:"orders"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// NotificationMonth is one month bucket of the notification report, summed
// additively across notification events and broadcast logs.
type NotificationMonth struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Sent         int             `json:"sent"`
	Delivered    int             `json:"delivered"`
	Opened       int             `json:"opened"`
	Clicked      int             `json:"clicked"`
	Failed       int             `json:"failed"`
	OpenRate     decimal.Decimal `json:"open_rate"`
	ClickRate    decimal.Decimal `json:"click_rate"`
	DeliveryRate decimal.Decimal `json:"delivery_rate"`
}

// NotificationSummary is the scalar rollup of the notification report.
type NotificationSummary struct {
	Sent         MetricWithComparison `json:"sent"`
	Opened       MetricWithComparison `json:"opened"`
	Clicked      MetricWithComparison `json:"clicked"`
	Failed       MetricWithComparison `json:"failed"`
	OpenRate     decimal.Decimal      `json:"open_rate"`
	ClickRate    decimal.Decimal      `json:"click_rate"`
	DeliveryRate decimal.Decimal      `json:"delivery_rate"`
}

// ChannelMetric is the per-channel breakdown row.
type ChannelMetric struct {
	Channel      NotificationChannel `json:"channel"`
	Sent         int                 `json:"sent"`
	Opened       int                 `json:"opened"`
	Clicked      int                 `json:"clicked"`
	Failed       int                 `json:"failed"`
	OpenRate     decimal.Decimal     `json:"open_rate"`
	DeliveryRate decimal.Decimal     `json:"delivery_rate"`
}

// ClassOpenRate ranks a class by notification open rate. Classes with zero
// sent are never ranked.
type ClassOpenRate struct {
	ClassID  int             `db:"class_id" json:"class_id"`
	Sent     int             `db:"sent" json:"sent"`
	Opened   int             `db:"opened" json:"opened"`
	OpenRate decimal.Decimal `db:"-" json:"open_rate"`
}

// NotificationReport is the full aggregate of the notification report.
type NotificationReport struct {
	Year       int                 `json:"year"`
	Summary    NotificationSummary `json:"summary"`
	Monthly    []NotificationMonth `json:"monthly"`
	ByChannel  []ChannelMetric     `json:"by_channel"`
	TopClasses []ClassOpenRate     `json:"top_classes"`
}

// PackageMonth is one month bucket of the package report: package purchases
// and regular product orders merged additively, with their combined revenue.
type PackageMonth struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Purchases int             `json:"purchases"`
	Orders    int             `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// PackageMetric ranks a package deal by revenue with its savings.
type PackageMetric struct {
	PackageID     int             `json:"package_id"`
	Name          string          `json:"name"`
	Purchases     int             `json:"purchases"`
	Revenue       decimal.Decimal `json:"revenue"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	SavingsPct    decimal.Decimal `json:"savings_pct"`
}

// PackageReport is the full aggregate of the package report.
type PackageReport struct {
	Year        int                  `json:"year"`
	Purchases   MetricWithComparison `json:"purchases"`
	Orders      MetricWithComparison `json:"orders"`
	Revenue     MetricWithComparison `json:"revenue"`
	Monthly     []PackageMonth       `json:"monthly"`
	TopPackages []PackageMetric      `json:"top_packages"`
}

// EnrollmentMonth is one month bucket of the enrollment report.
type EnrollmentMonth struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Joined      int `json:"joined"`
	Active      int `json:"active"`
	Transferred int `json:"transferred"`
	Left        int `json:"left"`
}

// EnrollmentReport is the full aggregate of the student enrollment report.
type EnrollmentReport struct {
	Year     int                  `json:"year"`
	Joined   MetricWithComparison `json:"joined"`
	Monthly  []EnrollmentMonth    `json:"monthly"`
	ByStatus []StatusCount        `json:"by_status"`
}

// FilterOptions enumerates the recognized filter values the UI renders as
// widgets, plus the latest year with any data (the year default).
type FilterOptions struct {
	LatestYear   int                   `json:"latest_year"`
	Years        []int                 `json:"years"`
	Periods      []PeriodName          `json:"periods"`
	Channels     []NotificationChannel `json:"channels"`
	Statuses     []OrderStatusName     `json:"statuses"`
	Salespersons []Salesperson         `json:"salespersons"`
}
