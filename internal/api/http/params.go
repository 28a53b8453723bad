package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/asaskevich/govalidator"
)

const dateLayout = "2006-01-02"

// parseFilters builds a FilterState from request query parameters. Every
// enum value is checked against its recognized set; anything else is a
// client error before a single query runs. Absent year falls back to the
// latest year with data.
func (s *Server) parseFilters(r *http.Request) (entity.FilterState, error) {
	q := r.URL.Query()

	var year int
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return entity.FilterState{}, fmt.Errorf("invalid year %q", v)
		}
		year = y
	} else {
		y, err := s.reports.DefaultYear(r.Context())
		if err != nil {
			return entity.FilterState{}, fmt.Errorf("default year: %w", err)
		}
		year = y
	}
	fs := entity.NewFilterState(year)

	if v := q.Get("month"); v != "" && v != "all" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return fs, fmt.Errorf("invalid month %q", v)
		}
		fs = fs.WithMonth(m)
	}

	if v := q.Get("status"); v != "" {
		if !entity.ValidOrderStatusNames[entity.OrderStatusName(v)] {
			return fs, fmt.Errorf("unknown status %q", v)
		}
		fs = fs.WithStatus(v)
	}

	if v := q.Get("channel"); v != "" && v != "all" {
		ch := entity.NotificationChannel(v)
		if !entity.ValidNotificationChannels[ch] {
			return fs, fmt.Errorf("unknown channel %q", v)
		}
		fs = fs.WithChannel(ch)
	}

	if v := q.Get("salesperson_id"); v != "" && v != "all" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 0 {
			return fs, fmt.Errorf("invalid salesperson_id %q", v)
		}
		fs = fs.WithSalesperson(id)
	}

	if v := q.Get("period"); v != "" {
		p := entity.PeriodName(v)
		if !entity.ValidPeriodNames[p] {
			return fs, fmt.Errorf("unknown period %q", v)
		}
		fs = fs.WithPeriod(p)
	}

	startRaw, endRaw := q.Get("start_date"), q.Get("end_date")
	if startRaw != "" || endRaw != "" {
		start, err := time.Parse(dateLayout, startRaw)
		if err != nil {
			return fs, fmt.Errorf("invalid start_date %q", startRaw)
		}
		end, err := time.Parse(dateLayout, endRaw)
		if err != nil {
			return fs, fmt.Errorf("invalid end_date %q", endRaw)
		}
		fs = fs.WithDateRange(start, end)
	}

	if v := q.Get("search"); v != "" {
		fs = fs.WithSearch(v)
	}

	if v := q.Get("sort_by"); v != "" {
		dir := entity.SortDesc
		if d := q.Get("sort_direction"); d != "" {
			if !govalidator.IsIn(d, "asc", "desc") {
				return fs, fmt.Errorf("invalid sort_direction %q", d)
			}
			if d == "asc" {
				dir = entity.SortAsc
			}
		}
		fs = fs.WithSort(v, dir)
	}

	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return fs, fmt.Errorf("invalid page %q", v)
		}
		fs = fs.WithPage(p)
	}
	if v := q.Get("page_size"); v != "" {
		ps, err := strconv.Atoi(v)
		if err != nil || ps < 1 || ps > 500 {
			return fs, fmt.Errorf("invalid page_size %q", v)
		}
		fs.PageSize = ps
	}

	if err := fs.Validate(); err != nil {
		return fs, err
	}
	return fs, nil
}
