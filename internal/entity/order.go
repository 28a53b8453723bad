package entity

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusName is the custom type to enforce enum-like behavior
type OrderStatusName string

func (osn OrderStatusName) String() string {
	return string(osn)
}

const (
	OrderPending    OrderStatusName = "pending"
	OrderProcessing OrderStatusName = "processing"
	OrderShipped    OrderStatusName = "shipped"
	OrderDelivered  OrderStatusName = "delivered"
	OrderCancelled  OrderStatusName = "cancelled"
	OrderRefunded   OrderStatusName = "refunded"
	OrderDraft      OrderStatusName = "draft"
)

// ValidOrderStatusNames is a set of valid order status names
var ValidOrderStatusNames = map[OrderStatusName]bool{
	OrderPending:    true,
	OrderProcessing: true,
	OrderShipped:    true,
	OrderDelivered:  true,
	OrderCancelled:  true,
	OrderRefunded:   true,
	OrderDraft:      true,
}

// RevenueExcludedStatuses are dropped from revenue aggregates unless the
// status filter explicitly selects one of them.
var RevenueExcludedStatuses = []OrderStatusName{OrderCancelled, OrderRefunded, OrderDraft}

// SalespersonMetadataKey is where historical orders keep the salesperson
// identifier inside the free-form metadata map. There is no foreign key;
// matching is equality on this embedded value.
const SalespersonMetadataKey = "salesperson_id"

// Order is the read-only projection of the customer_order table the
// reporting engine aggregates over. The engine never writes it.
type Order struct {
	ID            int             `db:"id" json:"id"`
	OrderNumber   string          `db:"order_number" json:"order_number"`
	PlacedAt      time.Time       `db:"placed_at" json:"placed_at"`
	PaidAt        sql.NullTime    `db:"paid_at" json:"paid_at"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	ItemsCount    int             `db:"items_count" json:"items_count"`
	Status        OrderStatusName `db:"status" json:"status"`
	SourceChannel string          `db:"source_channel" json:"source_channel"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	Metadata      OrderMetadata   `db:"metadata" json:"metadata"`
}

// OrderMetadata is the free-form JSON column on customer_order. Historical
// rows may or may not carry the salesperson keys.
type OrderMetadata map[string]any

// Scan implements sql.Scanner for the JSON metadata column.
func (m *OrderMetadata) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// SalespersonID extracts the embedded salesperson identifier. The value was
// written by several generations of the admin UI, so it may be a number or a
// numeric string.
func (m OrderMetadata) SalespersonID() (int, bool) {
	v, ok := m[SalespersonMetadataKey]
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case float64:
		return int(id), true
	case string:
		n, err := strconv.Atoi(id)
		if err != nil {
			return 0, false
		}
		return n, true
	case int:
		return id, true
	}
	return 0, false
}

// SalespersonName returns the display name recorded alongside the id.
func (m OrderMetadata) SalespersonName() string {
	if v, ok := m["salesperson_name"].(string); ok {
		return v
	}
	return ""
}

// Salesperson identifies a salesperson seen in order metadata.
type Salesperson struct {
	ID   int    `db:"salesperson_id" json:"id"`
	Name string `db:"salesperson_name" json:"name"`
}

// SalespersonUnassigned collects revenue from orders whose metadata records
// no salesperson. It shares the id with SalespersonAll, so the filter cannot
// select it on its own; it only appears in breakdowns and the pivot grid.
var SalespersonUnassigned = Salesperson{ID: 0, Name: "Unassigned"}
