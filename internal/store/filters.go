package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akademia/backoffice-manager/internal/entity"
)

type filterStore struct {
	*MYSQLStore
}

// LatestDataYear returns the most recent year any order was placed in. It
// is the default report year. Falls back to the current year on an empty
// database.
func (ms *MYSQLStore) LatestDataYear(ctx context.Context) (int, error) {
	query := `SELECT MAX(YEAR(placed_at)) FROM customer_order`

	var year sql.NullInt32
	if err := ms.db.QueryRowxContext(ctx, query).Scan(&year); err != nil {
		return 0, fmt.Errorf("can't get latest data year: %w", err)
	}
	if !year.Valid {
		return time.Now().Year(), nil
	}
	return int(year.Int32), nil
}

type yearRow struct {
	Year int `db:"year"`
}

// Years returns every year with at least one order, newest first.
func (ms *MYSQLStore) Years(ctx context.Context) ([]int, error) {
	query := `
	SELECT DISTINCT YEAR(placed_at) AS year
	FROM customer_order
	ORDER BY year DESC`

	rows, err := QueryListNamed[yearRow](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get years: %w", err)
	}

	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Year)
	}
	return out, nil
}

// Salespersons returns every distinct salesperson seen in order metadata,
// by id. Names come from the latest order that recorded one.
func (ms *MYSQLStore) Salespersons(ctx context.Context) ([]entity.Salesperson, error) {
	query := `
	SELECT
		` + salespersonExpr + ` AS salesperson_id,
		MAX(` + salespersonNameExpr + `) AS salesperson_name
	FROM customer_order
	WHERE JSON_EXTRACT(metadata, '$.salesperson_id') IS NOT NULL
	GROUP BY salesperson_id
	ORDER BY salesperson_id`

	rows, err := QueryListNamed[entity.Salesperson](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get salespersons: %w", err)
	}
	return rows, nil
}
