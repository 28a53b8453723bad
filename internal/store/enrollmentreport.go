package store

import (
	"context"
	"fmt"

	"github.com/akademia/backoffice-manager/internal/entity"
)

type enrollmentStore struct {
	*MYSQLStore
}

type enrollmentMonthRow struct {
	Month       int `db:"month"`
	Joined      int `db:"joined"`
	Active      int `db:"active"`
	Transferred int `db:"transferred"`
	Left        int `db:"left_count"`
}

// MonthlyEnrollments returns grouped student enrollments per month of the
// filter year, split by the enrollment's current status.
func (ms *MYSQLStore) MonthlyEnrollments(ctx context.Context, fs entity.FilterState) (map[int]entity.EnrollmentMonth, error) {
	query := fmt.Sprintf(`
	SELECT
		MONTH(joined_at) AS month,
		COUNT(*) AS joined,
		SUM(status = '%s') AS active,
		SUM(status = '%s') AS transferred,
		SUM(status = '%s') AS left_count
	FROM enrollment
	WHERE joined_at >= :from AND joined_at < :to
	GROUP BY MONTH(joined_at)`,
		entity.EnrollmentActive, entity.EnrollmentTransferred, entity.EnrollmentLeft)

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[enrollmentMonthRow](ctx, ms.db, query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get monthly enrollments: %w", err)
	}

	out := make(map[int]entity.EnrollmentMonth, len(rows))
	for _, r := range rows {
		out[r.Month] = entity.EnrollmentMonth{
			Year:        fs.Year,
			Month:       r.Month,
			Joined:      r.Joined,
			Active:      r.Active,
			Transferred: r.Transferred,
			Left:        r.Left,
		}
	}
	return out, nil
}

// EnrollmentsForRange returns the scalar enrollment rollup for one resolved
// time range.
func (ms *MYSQLStore) EnrollmentsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.EnrollmentCounts, error) {
	query := `
	SELECT COUNT(*) AS joined
	FROM enrollment
	WHERE joined_at >= :from AND joined_at < :to`

	row, err := QueryNamedOne[entity.EnrollmentCounts](ctx, ms.db, query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return entity.EnrollmentCounts{}, fmt.Errorf("can't get enrollments for range: %w", err)
	}
	return row, nil
}

// EnrollmentStatusBreakdown counts enrollments per status over the filter
// year.
func (ms *MYSQLStore) EnrollmentStatusBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.StatusCount, error) {
	query := `
	SELECT status, COUNT(*) AS count
	FROM enrollment
	WHERE joined_at >= :from AND joined_at < :to
	GROUP BY status
	ORDER BY count DESC`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[entity.StatusCount](ctx, ms.db, query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get enrollment status breakdown: %w", err)
	}
	return rows, nil
}
