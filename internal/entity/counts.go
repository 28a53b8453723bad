package entity

import "github.com/shopspring/decimal"

// Store-level projection rows. These carry raw grouped counts out of SQL;
// the report package derives rates, comparisons and zero-filled series
// from them.

// SalesPivotRow is one grouped (month, salesperson) revenue cell.
type SalesPivotRow struct {
	Month           int             `db:"month"`
	SalespersonID   int             `db:"salesperson_id"`
	SalespersonName string          `db:"salesperson_name"`
	Revenue         decimal.Decimal `db:"revenue"`
}

// BroadcastMonth is one month of grouped broadcast log counts.
type BroadcastMonth struct {
	Month      int `db:"month"`
	Sent       int `db:"sent"`
	Failed     int `db:"failed"`
	Broadcasts int `db:"broadcasts"`
}

// NotificationCounts is the raw event rollup for one time range.
type NotificationCounts struct {
	Sent      int `db:"sent"`
	Delivered int `db:"delivered"`
	Opened    int `db:"opened"`
	Clicked   int `db:"clicked"`
	Failed    int `db:"failed"`
}

// BroadcastCounts is the raw broadcast rollup for one time range.
type BroadcastCounts struct {
	Sent   int `db:"sent"`
	Failed int `db:"failed"`
}

// PackageCounts is the raw purchase rollup for one time range.
type PackageCounts struct {
	Purchases int             `db:"purchases"`
	Revenue   decimal.Decimal `db:"revenue"`
}

// EnrollmentCounts is the raw enrollment rollup for one time range.
type EnrollmentCounts struct {
	Joined int `db:"joined"`
}
