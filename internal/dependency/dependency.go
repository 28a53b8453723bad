package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	// DB is the database interface the stores are built on.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
	}

	// Repository groups the stores backing the reporting service.
	Repository interface {
		Sales() Sales
		Notifications() Notifications
		Packages() Packages
		Enrollments() Enrollments
		Admin() Admin
		Filters() Filters
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Ping(ctx context.Context) error
		Close()
		IsErrorRepeat(err error) bool
	}

	Sales interface {
		MonthlyRevenue(ctx context.Context, fs entity.FilterState) (map[int]entity.SalesMonth, error)
		RevenueForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.SalesSummary, error)
		StatusBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.StatusCount, error)
		SalespersonRevenue(ctx context.Context, fs entity.FilterState) ([]entity.SalespersonMetric, error)
		MonthlySalespersonRevenue(ctx context.Context, fs entity.FilterState) ([]entity.SalesPivotRow, error)
		Orders(ctx context.Context, fs entity.FilterState) ([]entity.Order, int, error)
	}

	Notifications interface {
		MonthlyEventCounts(ctx context.Context, fs entity.FilterState) (map[int]entity.NotificationMonth, error)
		MonthlyBroadcastCounts(ctx context.Context, fs entity.FilterState) (map[int]entity.BroadcastMonth, error)
		EventCountsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.NotificationCounts, error)
		BroadcastCountsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.BroadcastCounts, error)
		ChannelBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.ChannelMetric, error)
		ClassEngagement(ctx context.Context, fs entity.FilterState) ([]entity.ClassOpenRate, error)
	}

	Packages interface {
		MonthlyPurchases(ctx context.Context, fs entity.FilterState) (map[int]entity.PackageMonth, error)
		PurchasesForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.PackageCounts, error)
		DealBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.PackageMetric, error)
	}

	Enrollments interface {
		MonthlyEnrollments(ctx context.Context, fs entity.FilterState) (map[int]entity.EnrollmentMonth, error)
		EnrollmentsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.EnrollmentCounts, error)
		EnrollmentStatusBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.StatusCount, error)
	}

	Admin interface {
		GetAdminByUsername(ctx context.Context, username string) (*entity.Admin, error)
		ChangePassword(ctx context.Context, username, newHash string) error
	}

	Filters interface {
		LatestDataYear(ctx context.Context) (int, error)
		Years(ctx context.Context) ([]int, error)
		Salespersons(ctx context.Context) ([]entity.Salesperson, error)
	}

	// Auth issues and verifies admin session tokens.
	Auth interface {
		Login(ctx context.Context, username, password string) (string, error)
		ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error
		VerifyToken(ctx context.Context, token string) error
	}

	// Reports composes store reads into complete report payloads.
	Reports interface {
		FilterOptions(ctx context.Context) (*entity.FilterOptions, error)
		DefaultYear(ctx context.Context) (int, error)
		SalesReport(ctx context.Context, fs entity.FilterState) (*entity.SalesReport, error)
		OrderList(ctx context.Context, fs entity.FilterState) (*entity.OrderList, error)
		NotificationReport(ctx context.Context, fs entity.FilterState) (*entity.NotificationReport, error)
		PackageReport(ctx context.Context, fs entity.FilterState) (*entity.PackageReport, error)
		EnrollmentReport(ctx context.Context, fs entity.FilterState) (*entity.EnrollmentReport, error)
		Now() time.Time
	}
)
