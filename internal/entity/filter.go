package entity

import (
	"fmt"
	"time"
)

// PeriodName is the custom type to enforce enum-like behavior
type PeriodName string

const (
	PeriodToday     PeriodName = "today"
	PeriodYesterday PeriodName = "yesterday"
	PeriodThisWeek  PeriodName = "this_week"
	PeriodThisMonth PeriodName = "this_month"
	PeriodLastMonth PeriodName = "last_month"
	PeriodThisYear  PeriodName = "this_year"
	PeriodCustom    PeriodName = "custom"
)

// ValidPeriodNames is a set of valid period names
var ValidPeriodNames = map[PeriodName]bool{
	PeriodToday:     true,
	PeriodYesterday: true,
	PeriodThisWeek:  true,
	PeriodThisMonth: true,
	PeriodLastMonth: true,
	PeriodThisYear:  true,
	PeriodCustom:    true,
}

func (pn PeriodName) String() string {
	return string(pn)
}

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

func (sd *SortDirection) String() string {
	if sd != nil && *sd == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// MonthAll selects all months of the filter year.
const MonthAll = 0

// SalespersonAll selects all salespersons.
const SalespersonAll = 0

const defaultPageSize = 25

// FilterState is the immutable filter value object every report aggregation
// runs against. Transition methods return a new state; any transition other
// than WithPage resets the page cursor to 1.
type FilterState struct {
	Year          int
	Month         int // 1-12, MonthAll for the whole year
	Status        string
	Channel       NotificationChannel
	SalespersonID int
	Period        PeriodName
	StartDate     time.Time // custom period only
	EndDate       time.Time // custom period only
	Search        string
	SortBy        string
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// NewFilterState returns the default filter state for a report: the current
// month of the given year (the latest year with any data).
func NewFilterState(year int) FilterState {
	return FilterState{
		Year:          year,
		Month:         MonthAll,
		Period:        PeriodThisMonth,
		SortDirection: SortDesc,
		Page:          1,
		PageSize:      defaultPageSize,
	}
}

func (f FilterState) resetPage() FilterState {
	f.Page = 1
	return f
}

func (f FilterState) WithYear(year int) FilterState {
	f.Year = year
	return f.resetPage()
}

func (f FilterState) WithMonth(month int) FilterState {
	f.Month = month
	return f.resetPage()
}

func (f FilterState) WithStatus(status string) FilterState {
	f.Status = status
	return f.resetPage()
}

func (f FilterState) WithChannel(ch NotificationChannel) FilterState {
	f.Channel = ch
	return f.resetPage()
}

func (f FilterState) WithSalesperson(id int) FilterState {
	f.SalespersonID = id
	return f.resetPage()
}

func (f FilterState) WithPeriod(p PeriodName) FilterState {
	f.Period = p
	return f.resetPage()
}

// WithDateRange sets a custom date range and implicitly switches the period
// mode to custom.
func (f FilterState) WithDateRange(start, end time.Time) FilterState {
	f.Period = PeriodCustom
	f.StartDate = start
	f.EndDate = end
	return f.resetPage()
}

func (f FilterState) WithSearch(search string) FilterState {
	f.Search = search
	return f.resetPage()
}

func (f FilterState) WithSort(by string, dir SortDirection) FilterState {
	f.SortBy = by
	f.SortDirection = dir
	return f.resetPage()
}

// WithPage is the only transition that keeps the page cursor.
func (f FilterState) WithPage(page int) FilterState {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}

// Validate checks filter combinations that must be rejected before any
// query executes.
func (f FilterState) Validate() error {
	if f.Year < 2000 || f.Year > 2200 {
		return fmt.Errorf("year %d out of range", f.Year)
	}
	if f.Month != MonthAll && (f.Month < 1 || f.Month > 12) {
		return fmt.Errorf("month %d out of range", f.Month)
	}
	if !ValidPeriodNames[f.Period] {
		return fmt.Errorf("unknown period %q", f.Period)
	}
	if f.Period == PeriodCustom {
		if f.StartDate.IsZero() || f.EndDate.IsZero() {
			return fmt.Errorf("custom period requires both start and end date")
		}
		if f.StartDate.After(f.EndDate) {
			return fmt.Errorf("custom period start date is after end date")
		}
	}
	return nil
}

// Range resolves the filter to a half-open [from, to) time range. Relative
// periods resolve against now; custom uses the explicit dates.
func (f FilterState) Range(now time.Time) TimeRange {
	loc := now.Location()
	switch f.Period {
	case PeriodToday:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return TimeRange{From: from, To: from.AddDate(0, 0, 1)}
	case PeriodYesterday:
		from := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, loc)
		return TimeRange{From: from, To: from.AddDate(0, 0, 1)}
	case PeriodThisWeek:
		// Monday 00:00
		daysBack := (int(now.Weekday()) + 6) % 7
		from := time.Date(now.Year(), now.Month(), now.Day()-daysBack, 0, 0, 0, 0, loc)
		return TimeRange{From: from, To: from.AddDate(0, 0, 7)}
	case PeriodThisMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return TimeRange{From: from, To: from.AddDate(0, 1, 0)}
	case PeriodLastMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		return TimeRange{From: from, To: from.AddDate(0, 1, 0)}
	case PeriodCustom:
		return TimeRange{From: f.StartDate, To: f.EndDate.AddDate(0, 0, 1)}
	default: // this_year
		return f.YearRange(loc)
	}
}

// YearRange is the [from, to) range of the filter year, narrowed to the
// filter month when one is selected. Monthly report buckets always use this
// scope regardless of Period.
func (f FilterState) YearRange(loc *time.Location) TimeRange {
	if f.Month != MonthAll {
		from := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, loc)
		return TimeRange{From: from, To: from.AddDate(0, 1, 0)}
	}
	from := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, loc)
	return TimeRange{From: from, To: from.AddDate(1, 0, 0)}
}

// PrevYear returns the same filters shifted to year-1 for the
// period-over-period comparison.
func (f FilterState) PrevYear() FilterState {
	f.Year--
	if f.Period == PeriodCustom {
		f.StartDate = f.StartDate.AddDate(-1, 0, 0)
		f.EndDate = f.EndDate.AddDate(-1, 0, 0)
	}
	return f
}

// Limit is the effective page size.
func (f FilterState) Limit() int {
	if f.PageSize <= 0 {
		return defaultPageSize
	}
	return f.PageSize
}

// Offset is the pagination offset for the current page.
func (f FilterState) Offset() int {
	size := f.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

type TimeRange struct {
	From time.Time
	To   time.Time
}

func (tr TimeRange) IsZero() bool {
	return tr.From.IsZero() && tr.To.IsZero()
}
