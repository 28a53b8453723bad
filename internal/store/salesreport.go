package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type salesStore struct {
	*MYSQLStore
}

// salespersonExpr pulls the salesperson id out of the order metadata JSON.
// Historical rows have no foreign key; matching is equality on this value.
const salespersonExpr = "CAST(JSON_UNQUOTE(JSON_EXTRACT(metadata, '$.salesperson_id')) AS UNSIGNED)"

const salespersonNameExpr = "COALESCE(JSON_UNQUOTE(JSON_EXTRACT(metadata, '$.salesperson_name')), '')"

// salespersonIDExpr buckets orders whose metadata names no salesperson
// under the unassigned id, so pivot cells always sum to the monthly totals.
const salespersonIDExpr = "COALESCE(" + salespersonExpr + ", 0)"

var revenueExcluded = func() []string {
	out := make([]string, 0, len(entity.RevenueExcludedStatuses))
	for _, s := range entity.RevenueExcludedStatuses {
		out = append(out, s.String())
	}
	return out
}()

// orderFilterClause builds the shared WHERE tail for order aggregates.
// Cancelled, refunded and draft orders are dropped unless the status filter
// explicitly selects one of them.
func orderFilterClause() string {
	return `
		AND ((:status = '' AND status NOT IN (:excluded_statuses)) OR (:status != '' AND status = :status))
		AND (:salesperson_id = 0 OR ` + salespersonExpr + ` = :salesperson_id)
		AND (:search = '' OR order_number LIKE :search_like OR customer_name LIKE :search_like OR customer_email LIKE :search_like)`
}

func orderFilterParams(fs entity.FilterState, tr entity.TimeRange) map[string]any {
	return map[string]any{
		"from":              tr.From,
		"to":                tr.To,
		"status":            fs.Status,
		"excluded_statuses": revenueExcluded,
		"salesperson_id":    fs.SalespersonID,
		"search":            fs.Search,
		"search_like":       "%" + fs.Search + "%",
	}
}

type salesMonthRow struct {
	Month   int             `db:"month"`
	Orders  int             `db:"orders"`
	Revenue decimal.Decimal `db:"revenue"`
	Units   int             `db:"units"`
}

// MonthlyRevenue returns grouped order counts and revenue per month of the
// filter year. Months with no orders are absent; the caller zero-fills.
func (ms *MYSQLStore) MonthlyRevenue(ctx context.Context, fs entity.FilterState) (map[int]entity.SalesMonth, error) {
	query := `
	SELECT
		MONTH(placed_at) AS month,
		COUNT(*) AS orders,
		COALESCE(SUM(total_amount), 0) AS revenue,
		COALESCE(SUM(items_count), 0) AS units
	FROM customer_order
	WHERE placed_at >= :from AND placed_at < :to` + orderFilterClause() + `
	GROUP BY MONTH(placed_at)`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[salesMonthRow](ctx, ms.db, query, orderFilterParams(fs, tr))
	if err != nil {
		return nil, fmt.Errorf("can't get monthly revenue: %w", err)
	}

	out := make(map[int]entity.SalesMonth, len(rows))
	for _, r := range rows {
		out[r.Month] = entity.SalesMonth{
			Year:      fs.Year,
			Month:     r.Month,
			Orders:    r.Orders,
			Revenue:   r.Revenue,
			UnitsSold: r.Units,
		}
	}
	return out, nil
}

type salesRangeRow struct {
	Orders  int             `db:"orders"`
	Revenue decimal.Decimal `db:"revenue"`
	Units   int             `db:"units"`
}

// RevenueForRange returns the scalar rollup for one resolved time range,
// always over the full filtered set, never a page.
func (ms *MYSQLStore) RevenueForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.SalesSummary, error) {
	query := `
	SELECT
		COUNT(*) AS orders,
		COALESCE(SUM(total_amount), 0) AS revenue,
		COALESCE(SUM(items_count), 0) AS units
	FROM customer_order
	WHERE placed_at >= :from AND placed_at < :to` + orderFilterClause()

	row, err := QueryNamedOne[salesRangeRow](ctx, ms.db, query, orderFilterParams(fs, tr))
	if err != nil {
		return entity.SalesSummary{}, fmt.Errorf("can't get revenue for range: %w", err)
	}

	return entity.SalesSummary{
		Orders:    entity.MetricWithComparison{Value: decimal.NewFromInt(int64(row.Orders))},
		Revenue:   entity.MetricWithComparison{Value: row.Revenue},
		UnitsSold: entity.MetricWithComparison{Value: decimal.NewFromInt(int64(row.Units))},
	}, nil
}

// StatusBreakdown counts orders per status over the filter year. The status
// filter itself is not applied so the breakdown always shows the whole
// distribution.
func (ms *MYSQLStore) StatusBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.StatusCount, error) {
	query := `
	SELECT status, COUNT(*) AS count
	FROM customer_order
	WHERE placed_at >= :from AND placed_at < :to
		AND (:salesperson_id = 0 OR ` + salespersonExpr + ` = :salesperson_id)
		AND (:search = '' OR order_number LIKE :search_like OR customer_name LIKE :search_like OR customer_email LIKE :search_like)
	GROUP BY status
	ORDER BY count DESC`

	tr := fs.YearRange(ms.Now().Location())
	params := orderFilterParams(fs, tr)
	delete(params, "status")
	delete(params, "excluded_statuses")

	rows, err := QueryListNamed[entity.StatusCount](ctx, ms.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get status breakdown: %w", err)
	}
	return rows, nil
}

type salespersonRevenueRow struct {
	SalespersonID   int             `db:"salesperson_id"`
	SalespersonName string          `db:"salesperson_name"`
	Orders          int             `db:"orders"`
	Revenue         decimal.Decimal `db:"revenue"`
}

// SalespersonRevenue returns per-salesperson order counts and revenue over
// the filter year, ordered by first appearance so rank tie-breaks are stable.
// Orders carrying no salesperson metadata land in the unassigned bucket.
func (ms *MYSQLStore) SalespersonRevenue(ctx context.Context, fs entity.FilterState) ([]entity.SalespersonMetric, error) {
	query := `
	SELECT
		` + salespersonIDExpr + ` AS salesperson_id,
		MAX(` + salespersonNameExpr + `) AS salesperson_name,
		COUNT(*) AS orders,
		COALESCE(SUM(total_amount), 0) AS revenue
	FROM customer_order
	WHERE placed_at >= :from AND placed_at < :to` + orderFilterClause() + `
	GROUP BY salesperson_id
	ORDER BY MIN(id)`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[salespersonRevenueRow](ctx, ms.db, query, orderFilterParams(fs, tr))
	if err != nil {
		return nil, fmt.Errorf("can't get salesperson revenue: %w", err)
	}

	out := make([]entity.SalespersonMetric, 0, len(rows))
	for _, r := range rows {
		sp := entity.Salesperson{ID: r.SalespersonID, Name: r.SalespersonName}
		if sp.ID == entity.SalespersonUnassigned.ID && sp.Name == "" {
			sp.Name = entity.SalespersonUnassigned.Name
		}
		out = append(out, entity.SalespersonMetric{
			Salesperson: sp,
			Orders:      r.Orders,
			Revenue:     r.Revenue,
		})
	}
	return out, nil
}

// MonthlySalespersonRevenue returns the raw (month, salesperson) revenue
// cells the pivot grid is built from. Every non-excluded order contributes
// to exactly one cell; unattributed revenue goes to the unassigned bucket.
func (ms *MYSQLStore) MonthlySalespersonRevenue(ctx context.Context, fs entity.FilterState) ([]entity.SalesPivotRow, error) {
	query := `
	SELECT
		MONTH(placed_at) AS month,
		` + salespersonIDExpr + ` AS salesperson_id,
		MAX(` + salespersonNameExpr + `) AS salesperson_name,
		COALESCE(SUM(total_amount), 0) AS revenue
	FROM customer_order
	WHERE placed_at >= :from AND placed_at < :to` + orderFilterClause() + `
	GROUP BY month, salesperson_id`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[entity.SalesPivotRow](ctx, ms.db, query, orderFilterParams(fs, tr))
	if err != nil {
		return nil, fmt.Errorf("can't get monthly salesperson revenue: %w", err)
	}
	for i := range rows {
		if rows[i].SalespersonID == entity.SalespersonUnassigned.ID && rows[i].SalespersonName == "" {
			rows[i].SalespersonName = entity.SalespersonUnassigned.Name
		}
	}
	return rows, nil
}

var orderSortColumns = map[string]string{
	"placed_at":    "placed_at",
	"total_amount": "total_amount",
	"order_number": "order_number",
	"status":       "status",
}

// Orders returns one page of the filtered order list plus the total count of
// the filtered set.
func (ms *MYSQLStore) Orders(ctx context.Context, fs entity.FilterState) ([]entity.Order, int, error) {
	where := `
	FROM customer_order
	WHERE placed_at >= :from AND placed_at < :to` + orderFilterClause()

	tr := fs.YearRange(ms.Now().Location())
	params := orderFilterParams(fs, tr)

	count, err := QueryCountNamed(ctx, ms.db, "SELECT COUNT(*)"+where, params)
	if err != nil {
		return nil, 0, fmt.Errorf("can't count orders: %w", err)
	}

	sortCol, ok := orderSortColumns[strings.ToLower(fs.SortBy)]
	if !ok {
		sortCol = "placed_at"
	}

	query := `
	SELECT id, order_number, placed_at, paid_at, total_amount, items_count,
		status, source_channel, customer_name, customer_email, metadata` +
		where + fmt.Sprintf(`
	ORDER BY %s %s
	LIMIT :limit OFFSET :offset`, sortCol, fs.SortDirection.String())

	params["limit"] = fs.Limit()
	params["offset"] = fs.Offset()

	rows, err := QueryListNamed[entity.Order](ctx, ms.db, query, params)
	if err != nil {
		return nil, 0, fmt.Errorf("can't list orders: %w", err)
	}
	return rows, count, nil
}
