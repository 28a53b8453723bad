package report

import (
	"sort"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// PivotCell is one grouped row feeding the month x salesperson pivot.
type PivotCell struct {
	Month       int
	Salesperson entity.Salesperson
	Revenue     decimal.Decimal
}

// BuildSalesPivot produces the complete cross-product grid: every month in
// months paired with every distinct salesperson seen in cells, zero cells
// included. A salesperson filtered down to zero rows still appears when any
// row referenced them; one never referenced does not.
func BuildSalesPivot(months []int, cells []PivotCell) entity.SalesPivot {
	seen := make(map[int]entity.Salesperson)
	for _, c := range cells {
		if sp, ok := seen[c.Salesperson.ID]; !ok || sp.Name == "" {
			seen[c.Salesperson.ID] = c.Salesperson
		}
	}
	salespersons := make([]entity.Salesperson, 0, len(seen))
	for _, sp := range seen {
		salespersons = append(salespersons, sp)
	}
	sort.Slice(salespersons, func(i, j int) bool { return salespersons[i].ID < salespersons[j].ID })

	grid := make(map[int]map[int]decimal.Decimal, len(months))
	for _, m := range months {
		row := make(map[int]decimal.Decimal, len(salespersons))
		for _, sp := range salespersons {
			row[sp.ID] = decimal.Zero
		}
		grid[m] = row
	}
	for _, c := range cells {
		row, ok := grid[c.Month]
		if !ok {
			continue
		}
		row[c.Salesperson.ID] = row[c.Salesperson.ID].Add(c.Revenue)
	}

	return entity.SalesPivot{
		Months:       months,
		Salespersons: salespersons,
		Cells:        grid,
	}
}
