package store

import (
	"context"
	"fmt"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type packageStore struct {
	*MYSQLStore
}

func purchaseFilterParams(tr entity.TimeRange) map[string]any {
	return map[string]any{
		"from": tr.From,
		"to":   tr.To,
	}
}

type packageMonthRow struct {
	Month     int             `db:"month"`
	Purchases int             `db:"purchases"`
	Revenue   decimal.Decimal `db:"revenue"`
}

// MonthlyPurchases returns grouped paid package purchases per month of the
// filter year.
func (ms *MYSQLStore) MonthlyPurchases(ctx context.Context, fs entity.FilterState) (map[int]entity.PackageMonth, error) {
	query := `
	SELECT
		MONTH(purchased_at) AS month,
		COUNT(*) AS purchases,
		COALESCE(SUM(amount), 0) AS revenue
	FROM package_purchase
	WHERE purchased_at >= :from AND purchased_at < :to
		AND status = 'paid'
	GROUP BY MONTH(purchased_at)`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[packageMonthRow](ctx, ms.db, query, purchaseFilterParams(tr))
	if err != nil {
		return nil, fmt.Errorf("can't get monthly purchases: %w", err)
	}

	out := make(map[int]entity.PackageMonth, len(rows))
	for _, r := range rows {
		out[r.Month] = entity.PackageMonth{
			Year:      fs.Year,
			Month:     r.Month,
			Purchases: r.Purchases,
			Revenue:   r.Revenue,
		}
	}
	return out, nil
}

// PurchasesForRange returns the scalar purchase rollup for one resolved
// time range.
func (ms *MYSQLStore) PurchasesForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.PackageCounts, error) {
	query := `
	SELECT
		COUNT(*) AS purchases,
		COALESCE(SUM(amount), 0) AS revenue
	FROM package_purchase
	WHERE purchased_at >= :from AND purchased_at < :to
		AND status = 'paid'`

	row, err := QueryNamedOne[entity.PackageCounts](ctx, ms.db, query, purchaseFilterParams(tr))
	if err != nil {
		return entity.PackageCounts{}, fmt.Errorf("can't get purchases for range: %w", err)
	}
	return row, nil
}

type packageDealRow struct {
	PackageID     int             `db:"package_id"`
	Name          string          `db:"name"`
	Purchases     int             `db:"purchases"`
	Revenue       decimal.Decimal `db:"revenue"`
	Price         decimal.Decimal `db:"price"`
	OriginalPrice decimal.Decimal `db:"original_price"`
}

// DealBreakdown returns per-deal purchase counts and revenue over the
// filter year, ordered by deal id so rank tie-breaks are stable. Deals with
// no purchases in range are absent.
func (ms *MYSQLStore) DealBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.PackageMetric, error) {
	query := `
	SELECT
		pd.id AS package_id,
		pd.name AS name,
		COUNT(pp.id) AS purchases,
		COALESCE(SUM(pp.amount), 0) AS revenue,
		pd.price AS price,
		pd.original_price AS original_price
	FROM package_deal pd
	JOIN package_purchase pp ON pp.package_id = pd.id
	WHERE pp.purchased_at >= :from AND pp.purchased_at < :to
		AND pp.status = 'paid'
	GROUP BY pd.id, pd.name, pd.price, pd.original_price
	ORDER BY pd.id`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[packageDealRow](ctx, ms.db, query, purchaseFilterParams(tr))
	if err != nil {
		return nil, fmt.Errorf("can't get deal breakdown: %w", err)
	}

	out := make([]entity.PackageMetric, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.PackageMetric{
			PackageID:     r.PackageID,
			Name:          r.Name,
			Purchases:     r.Purchases,
			Revenue:       r.Revenue,
			Price:         r.Price,
			OriginalPrice: r.OriginalPrice,
		})
	}
	return out, nil
}
