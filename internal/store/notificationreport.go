package store

import (
	"context"
	"fmt"

	"github.com/akademia/backoffice-manager/internal/entity"
)

type notificationStore struct {
	*MYSQLStore
}

// notificationFilterClause is the shared WHERE tail for notification event
// aggregates.
const notificationFilterClause = `
	AND (:channel = '' OR channel = :channel)`

// sentOK matches events whose send succeeded. Opens and clicks count only
// on these rows; a failed event can still carry tracking timestamps from a
// stale provider callback.
var (
	sentOK = fmt.Sprintf("status IN ('%s', '%s')",
		entity.NotificationSent, entity.NotificationDelivered)
	openedOK  = sentOK + " AND opened_at IS NOT NULL"
	clickedOK = sentOK + " AND clicked_at IS NOT NULL"
)

func notificationFilterParams(fs entity.FilterState, tr entity.TimeRange) map[string]any {
	return map[string]any{
		"from":    tr.From,
		"to":      tr.To,
		"channel": string(fs.Channel),
	}
}

type notificationMonthRow struct {
	Month     int `db:"month"`
	Sent      int `db:"sent"`
	Delivered int `db:"delivered"`
	Opened    int `db:"opened"`
	Clicked   int `db:"clicked"`
	Failed    int `db:"failed"`
}

// MonthlyEventCounts returns grouped notification event counts per month of
// the filter year. Sent counts successful sends only; failed is tracked
// separately so delivery rate is sent/(sent+failed). Pending events count
// in neither.
func (ms *MYSQLStore) MonthlyEventCounts(ctx context.Context, fs entity.FilterState) (map[int]entity.NotificationMonth, error) {
	query := `
	SELECT
		MONTH(sent_at) AS month,
		SUM(` + sentOK + `) AS sent,
		SUM(status = 'delivered') AS delivered,
		SUM(` + openedOK + `) AS opened,
		SUM(` + clickedOK + `) AS clicked,
		SUM(status = 'failed') AS failed
	FROM notification_event
	WHERE sent_at >= :from AND sent_at < :to` + notificationFilterClause + `
	GROUP BY MONTH(sent_at)`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[notificationMonthRow](ctx, ms.db, query, notificationFilterParams(fs, tr))
	if err != nil {
		return nil, fmt.Errorf("can't get monthly event counts: %w", err)
	}

	out := make(map[int]entity.NotificationMonth, len(rows))
	for _, r := range rows {
		out[r.Month] = entity.NotificationMonth{
			Year:      fs.Year,
			Month:     r.Month,
			Sent:      r.Sent,
			Delivered: r.Delivered,
			Opened:    r.Opened,
			Clicked:   r.Clicked,
			Failed:    r.Failed,
		}
	}
	return out, nil
}

// MonthlyBroadcastCounts returns grouped broadcast log counts per month of
// the filter year. Broadcast logs carry recipient totals only, no open or
// click tracking.
func (ms *MYSQLStore) MonthlyBroadcastCounts(ctx context.Context, fs entity.FilterState) (map[int]entity.BroadcastMonth, error) {
	query := `
	SELECT
		MONTH(sent_at) AS month,
		COALESCE(SUM(recipient_count - failed_count), 0) AS sent,
		COALESCE(SUM(failed_count), 0) AS failed,
		COUNT(*) AS broadcasts
	FROM broadcast_log
	WHERE sent_at >= :from AND sent_at < :to` + notificationFilterClause + `
	GROUP BY MONTH(sent_at)`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[entity.BroadcastMonth](ctx, ms.db, query, notificationFilterParams(fs, tr))
	if err != nil {
		return nil, fmt.Errorf("can't get monthly broadcast counts: %w", err)
	}

	out := make(map[int]entity.BroadcastMonth, len(rows))
	for _, r := range rows {
		out[r.Month] = r
	}
	return out, nil
}

// EventCountsForRange returns the scalar notification event rollup for one
// resolved time range.
func (ms *MYSQLStore) EventCountsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.NotificationCounts, error) {
	query := `
	SELECT
		COALESCE(SUM(` + sentOK + `), 0) AS sent,
		COALESCE(SUM(status = 'delivered'), 0) AS delivered,
		COALESCE(SUM(` + openedOK + `), 0) AS opened,
		COALESCE(SUM(` + clickedOK + `), 0) AS clicked,
		COALESCE(SUM(status = 'failed'), 0) AS failed
	FROM notification_event
	WHERE sent_at >= :from AND sent_at < :to` + notificationFilterClause

	row, err := QueryNamedOne[entity.NotificationCounts](ctx, ms.db, query, notificationFilterParams(fs, tr))
	if err != nil {
		return entity.NotificationCounts{}, fmt.Errorf("can't get event counts for range: %w", err)
	}
	return row, nil
}

// BroadcastCountsForRange returns the scalar broadcast rollup for one
// resolved time range.
func (ms *MYSQLStore) BroadcastCountsForRange(ctx context.Context, fs entity.FilterState, tr entity.TimeRange) (entity.BroadcastCounts, error) {
	query := `
	SELECT
		COALESCE(SUM(recipient_count - failed_count), 0) AS sent,
		COALESCE(SUM(failed_count), 0) AS failed
	FROM broadcast_log
	WHERE sent_at >= :from AND sent_at < :to` + notificationFilterClause

	row, err := QueryNamedOne[entity.BroadcastCounts](ctx, ms.db, query, notificationFilterParams(fs, tr))
	if err != nil {
		return entity.BroadcastCounts{}, fmt.Errorf("can't get broadcast counts for range: %w", err)
	}
	return row, nil
}

type channelRow struct {
	Channel string `db:"channel"`
	Sent    int    `db:"sent"`
	Opened  int    `db:"opened"`
	Clicked int    `db:"clicked"`
	Failed  int    `db:"failed"`
}

// ChannelBreakdown returns per-channel event counts over the filter year.
// The channel filter is not applied so the breakdown always shows every
// channel.
func (ms *MYSQLStore) ChannelBreakdown(ctx context.Context, fs entity.FilterState) ([]entity.ChannelMetric, error) {
	query := `
	SELECT
		channel,
		SUM(` + sentOK + `) AS sent,
		SUM(` + openedOK + `) AS opened,
		SUM(` + clickedOK + `) AS clicked,
		SUM(status = 'failed') AS failed
	FROM notification_event
	WHERE sent_at >= :from AND sent_at < :to
	GROUP BY channel
	ORDER BY sent DESC`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[channelRow](ctx, ms.db, query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get channel breakdown: %w", err)
	}

	out := make([]entity.ChannelMetric, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ChannelMetric{
			Channel: entity.NotificationChannel(r.Channel),
			Sent:    r.Sent,
			Opened:  r.Opened,
			Clicked: r.Clicked,
			Failed:  r.Failed,
		})
	}
	return out, nil
}

// ClassEngagement returns per-class sent and opened counts over the filter
// year, ordered by first appearance so rank tie-breaks are stable. Events
// not tied to a class are skipped.
func (ms *MYSQLStore) ClassEngagement(ctx context.Context, fs entity.FilterState) ([]entity.ClassOpenRate, error) {
	query := `
	SELECT
		class_id,
		SUM(` + sentOK + `) AS sent,
		SUM(` + openedOK + `) AS opened
	FROM notification_event
	WHERE sent_at >= :from AND sent_at < :to
		AND class_id IS NOT NULL` + notificationFilterClause + `
	GROUP BY class_id
	ORDER BY MIN(id)`

	tr := fs.YearRange(ms.Now().Location())
	rows, err := QueryListNamed[entity.ClassOpenRate](ctx, ms.db, query, notificationFilterParams(fs, tr))
	if err != nil {
		return nil, fmt.Errorf("can't get class engagement: %w", err)
	}
	return rows, nil
}
