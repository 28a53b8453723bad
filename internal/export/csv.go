// Package export renders report payloads as CSV documents for spreadsheet
// consumption. A document streams as title, filter echo, summary block and
// one labeled table per grouping, in that order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// utf8BOM makes spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is an ordered CSV report: title, applied filters, then labeled
// sections.
type Document struct {
	title    string
	filters  [][2]string
	sections []section
}

type section struct {
	name   string
	header []string
	rows   [][]string
}

func NewDocument(title string) *Document {
	return &Document{title: title}
}

// AddFilter echoes one applied filter. Filters print in insertion order.
func (d *Document) AddFilter(name, value string) {
	d.filters = append(d.filters, [2]string{name, value})
}

// AddSection appends one labeled table.
func (d *Document) AddSection(name string, header []string, rows [][]string) {
	d.sections = append(d.sections, section{name: name, header: header, rows: rows})
}

// WriteTo streams the document. The BOM goes first, then rows are flushed
// through encoding/csv as they are written.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(utf8BOM)
	written := int64(n)
	if err != nil {
		return written, fmt.Errorf("write bom: %w", err)
	}

	cw := newCountingWriter(w)
	csvw := csv.NewWriter(cw)

	write := func(record ...string) error {
		return csvw.Write(record)
	}

	if err := write(d.title); err != nil {
		return written + cw.n, err
	}
	if err := write(); err != nil {
		return written + cw.n, err
	}

	if len(d.filters) > 0 {
		if err := write("Filters"); err != nil {
			return written + cw.n, err
		}
		for _, f := range d.filters {
			if err := write(f[0], f[1]); err != nil {
				return written + cw.n, err
			}
		}
		if err := write(); err != nil {
			return written + cw.n, err
		}
	}

	for _, s := range d.sections {
		if err := write(s.name); err != nil {
			return written + cw.n, err
		}
		if len(s.header) > 0 {
			if err := csvw.Write(s.header); err != nil {
				return written + cw.n, err
			}
		}
		for _, row := range s.rows {
			if err := csvw.Write(row); err != nil {
				return written + cw.n, err
			}
		}
		if err := write(); err != nil {
			return written + cw.n, err
		}
		csvw.Flush()
	}

	csvw.Flush()
	return written + cw.n, csvw.Error()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func newCountingWriter(w io.Writer) *countingWriter {
	return &countingWriter{w: w}
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Money formats a currency amount as a plain fixed 2-decimal string, no
// thousands separators.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Pct formats a percentage value keeping its rounded precision.
func Pct(d decimal.Decimal) string {
	return d.String()
}
