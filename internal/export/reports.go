package export

import (
	"fmt"
	"strconv"

	"github.com/akademia/backoffice-manager/internal/entity"
)

// Filename names the CSV attachment after the report and its year or
// custom date range.
func Filename(reportName string, fs entity.FilterState) string {
	if fs.Period == entity.PeriodCustom {
		return fmt.Sprintf("%s-%s-%s.csv",
			reportName,
			fs.StartDate.Format("2006-01-02"),
			fs.EndDate.Format("2006-01-02"),
		)
	}
	return fmt.Sprintf("%s-%d.csv", reportName, fs.Year)
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

func changeLabel(pct *float64) string {
	if pct == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *pct)
}

// echoFilters writes the applied filter state into the document so the
// export is self-describing.
func echoFilters(doc *Document, fs entity.FilterState) {
	doc.AddFilter("year", strconv.Itoa(fs.Year))
	if fs.Month != entity.MonthAll {
		doc.AddFilter("month", strconv.Itoa(fs.Month))
	}
	if fs.Status != "" {
		doc.AddFilter("status", fs.Status)
	}
	if fs.Channel != entity.ChannelAll {
		doc.AddFilter("channel", fs.Channel.String())
	}
	if fs.SalespersonID != entity.SalespersonAll {
		doc.AddFilter("salesperson_id", strconv.Itoa(fs.SalespersonID))
	}
	doc.AddFilter("period", fs.Period.String())
	if fs.Period == entity.PeriodCustom {
		doc.AddFilter("start_date", fs.StartDate.Format("2006-01-02"))
		doc.AddFilter("end_date", fs.EndDate.Format("2006-01-02"))
	}
	if fs.Search != "" {
		doc.AddFilter("search", fs.Search)
	}
}

// BuildSales flattens a sales report into a CSV document.
func BuildSales(r *entity.SalesReport, fs entity.FilterState) *Document {
	doc := NewDocument(fmt.Sprintf("Sales Report %d", r.Year))
	echoFilters(doc, fs)

	doc.AddSection("Summary",
		[]string{"metric", "value", "previous", "change"},
		[][]string{
			{"orders", r.Summary.Orders.Value.String(), compareValue(r.Summary.Orders), changeLabel(r.Summary.Orders.ChangePct)},
			{"revenue", Money(r.Summary.Revenue.Value), compareMoney(r.Summary.Revenue), changeLabel(r.Summary.Revenue.ChangePct)},
			{"avg_order_value", Money(r.Summary.AvgOrderValue.Value), compareMoney(r.Summary.AvgOrderValue), changeLabel(r.Summary.AvgOrderValue.ChangePct)},
			{"units_sold", r.Summary.UnitsSold.Value.String(), compareValue(r.Summary.UnitsSold), changeLabel(r.Summary.UnitsSold.ChangePct)},
		})

	monthly := make([][]string, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		monthly = append(monthly, []string{
			monthLabel(m.Year, m.Month),
			strconv.Itoa(m.Orders),
			Money(m.Revenue),
			Money(m.AvgOrder),
			strconv.Itoa(m.UnitsSold),
		})
	}
	doc.AddSection("Monthly",
		[]string{"month", "orders", "revenue", "avg_order", "units_sold"},
		monthly)

	doc.AddSection("Top Salespersons by Revenue",
		[]string{"salesperson", "orders", "revenue"},
		salespersonRows(r.TopByRevenue))
	doc.AddSection("Top Salespersons by Volume",
		[]string{"salesperson", "orders", "revenue"},
		salespersonRows(r.TopByVolume))

	statuses := make([][]string, 0, len(r.StatusBreakdown))
	for _, sc := range r.StatusBreakdown {
		statuses = append(statuses, []string{sc.Status, strconv.Itoa(sc.Count)})
	}
	doc.AddSection("Status Breakdown", []string{"status", "count"}, statuses)

	pivotHeader := []string{"month"}
	for _, sp := range r.Pivot.Salespersons {
		pivotHeader = append(pivotHeader, salespersonLabel(sp))
	}
	pivotRows := make([][]string, 0, len(r.Pivot.Months))
	for _, m := range r.Pivot.Months {
		row := []string{monthLabel(r.Year, m)}
		for _, sp := range r.Pivot.Salespersons {
			row = append(row, Money(r.Pivot.Cells[m][sp.ID]))
		}
		pivotRows = append(pivotRows, row)
	}
	doc.AddSection("Monthly Revenue by Salesperson", pivotHeader, pivotRows)

	return doc
}

func salespersonLabel(sp entity.Salesperson) string {
	if sp.Name != "" {
		return sp.Name
	}
	return strconv.Itoa(sp.ID)
}

func salespersonRows(metrics []entity.SalespersonMetric) [][]string {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			salespersonLabel(m.Salesperson),
			strconv.Itoa(m.Orders),
			Money(m.Revenue),
		})
	}
	return rows
}

func compareValue(m entity.MetricWithComparison) string {
	if m.CompareValue == nil {
		return ""
	}
	return m.CompareValue.String()
}

func compareMoney(m entity.MetricWithComparison) string {
	if m.CompareValue == nil {
		return ""
	}
	return Money(*m.CompareValue)
}

// BuildNotifications flattens a notification report into a CSV document.
func BuildNotifications(r *entity.NotificationReport, fs entity.FilterState) *Document {
	doc := NewDocument(fmt.Sprintf("Notification Report %d", r.Year))
	echoFilters(doc, fs)

	doc.AddSection("Summary",
		[]string{"metric", "value", "previous", "change"},
		[][]string{
			{"sent", r.Summary.Sent.Value.String(), compareValue(r.Summary.Sent), changeLabel(r.Summary.Sent.ChangePct)},
			{"opened", r.Summary.Opened.Value.String(), compareValue(r.Summary.Opened), changeLabel(r.Summary.Opened.ChangePct)},
			{"clicked", r.Summary.Clicked.Value.String(), compareValue(r.Summary.Clicked), changeLabel(r.Summary.Clicked.ChangePct)},
			{"failed", r.Summary.Failed.Value.String(), compareValue(r.Summary.Failed), changeLabel(r.Summary.Failed.ChangePct)},
			{"open_rate", Pct(r.Summary.OpenRate), "", ""},
			{"click_rate", Pct(r.Summary.ClickRate), "", ""},
			{"delivery_rate", Pct(r.Summary.DeliveryRate), "", ""},
		})

	monthly := make([][]string, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		monthly = append(monthly, []string{
			monthLabel(m.Year, m.Month),
			strconv.Itoa(m.Sent),
			strconv.Itoa(m.Delivered),
			strconv.Itoa(m.Opened),
			strconv.Itoa(m.Clicked),
			strconv.Itoa(m.Failed),
			Pct(m.OpenRate),
			Pct(m.ClickRate),
			Pct(m.DeliveryRate),
		})
	}
	doc.AddSection("Monthly",
		[]string{"month", "sent", "delivered", "opened", "clicked", "failed", "open_rate", "click_rate", "delivery_rate"},
		monthly)

	classes := make([][]string, 0, len(r.TopClasses))
	for _, c := range r.TopClasses {
		classes = append(classes, []string{
			strconv.Itoa(c.ClassID),
			strconv.Itoa(c.Sent),
			strconv.Itoa(c.Opened),
			Pct(c.OpenRate),
		})
	}
	doc.AddSection("Top Classes by Open Rate",
		[]string{"class_id", "sent", "opened", "open_rate"},
		classes)

	channels := make([][]string, 0, len(r.ByChannel))
	for _, c := range r.ByChannel {
		channels = append(channels, []string{
			c.Channel.String(),
			strconv.Itoa(c.Sent),
			strconv.Itoa(c.Opened),
			strconv.Itoa(c.Clicked),
			strconv.Itoa(c.Failed),
			Pct(c.OpenRate),
			Pct(c.DeliveryRate),
		})
	}
	doc.AddSection("Channel Breakdown",
		[]string{"channel", "sent", "opened", "clicked", "failed", "open_rate", "delivery_rate"},
		channels)

	return doc
}

// BuildPackages flattens a package deal report into a CSV document.
func BuildPackages(r *entity.PackageReport, fs entity.FilterState) *Document {
	doc := NewDocument(fmt.Sprintf("Package Report %d", r.Year))
	echoFilters(doc, fs)

	doc.AddSection("Summary",
		[]string{"metric", "value", "previous", "change"},
		[][]string{
			{"purchases", r.Purchases.Value.String(), compareValue(r.Purchases), changeLabel(r.Purchases.ChangePct)},
			{"orders", r.Orders.Value.String(), compareValue(r.Orders), changeLabel(r.Orders.ChangePct)},
			{"revenue", Money(r.Revenue.Value), compareMoney(r.Revenue), changeLabel(r.Revenue.ChangePct)},
		})

	monthly := make([][]string, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		monthly = append(monthly, []string{
			monthLabel(m.Year, m.Month),
			strconv.Itoa(m.Purchases),
			strconv.Itoa(m.Orders),
			Money(m.Revenue),
		})
	}
	doc.AddSection("Monthly", []string{"month", "purchases", "orders", "revenue"}, monthly)

	deals := make([][]string, 0, len(r.TopPackages))
	for _, d := range r.TopPackages {
		deals = append(deals, []string{
			d.Name,
			strconv.Itoa(d.Purchases),
			Money(d.Revenue),
			Money(d.Price),
			Money(d.OriginalPrice),
			Pct(d.SavingsPct),
		})
	}
	doc.AddSection("Top Packages",
		[]string{"package", "purchases", "revenue", "price", "original_price", "savings_pct"},
		deals)

	return doc
}

// BuildEnrollments flattens an enrollment report into a CSV document.
func BuildEnrollments(r *entity.EnrollmentReport, fs entity.FilterState) *Document {
	doc := NewDocument(fmt.Sprintf("Enrollment Report %d", r.Year))
	echoFilters(doc, fs)

	doc.AddSection("Summary",
		[]string{"metric", "value", "previous", "change"},
		[][]string{
			{"joined", r.Joined.Value.String(), compareValue(r.Joined), changeLabel(r.Joined.ChangePct)},
		})

	monthly := make([][]string, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		monthly = append(monthly, []string{
			monthLabel(m.Year, m.Month),
			strconv.Itoa(m.Joined),
			strconv.Itoa(m.Active),
			strconv.Itoa(m.Transferred),
			strconv.Itoa(m.Left),
		})
	}
	doc.AddSection("Monthly",
		[]string{"month", "joined", "active", "transferred", "left"},
		monthly)

	statuses := make([][]string, 0, len(r.ByStatus))
	for _, sc := range r.ByStatus {
		statuses = append(statuses, []string{sc.Status, strconv.Itoa(sc.Count)})
	}
	doc.AddSection("Status Breakdown", []string{"status", "count"}, statuses)

	return doc
}
