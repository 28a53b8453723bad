package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Rate returns numerator/denominator*100 rounded to 1 decimal place, and 0
// when the denominator is 0. Rates are always within [0, 100] for the
// counter pairs the reports feed in.
func Rate(numerator, denominator int) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(numerator)).
		Div(decimal.NewFromInt(int64(denominator))).
		Mul(hundred).
		Round(1)
}

// OpenRate is opened/sent*100.
func OpenRate(opened, sent int) decimal.Decimal {
	return Rate(opened, sent)
}

// ClickRate is clicked/sent*100.
func ClickRate(clicked, sent int) decimal.Decimal {
	return Rate(clicked, sent)
}

// DeliveryRate is sent/(sent+failed)*100.
func DeliveryRate(sent, failed int) decimal.Decimal {
	return Rate(sent, sent+failed)
}

// SavingsPct is (original-price)/original*100 rounded to 2 decimals; 0 when
// the original price is 0 or the package costs at least as much as its
// parts. Packages keep the 2-decimal rule the rates do not use.
func SavingsPct(price, original decimal.Decimal) decimal.Decimal {
	if original.IsZero() || price.GreaterThanOrEqual(original) {
		return decimal.Zero
	}
	return original.Sub(price).Div(original).Mul(hundred).Round(2)
}

// ChangePct is the period-over-period percentage change rounded to 1
// decimal. A nil result is the "no comparison available" sentinel for a
// zero previous value; the formula never yields NaN or infinity.
func ChangePct(current, previous decimal.Decimal) *float64 {
	if previous.IsZero() {
		return nil
	}
	f, _ := current.Sub(previous).Div(previous).Mul(hundred).Round(1).Float64()
	return &f
}

// ChangePctInt is ChangePct over integer counters.
func ChangePctInt(current, previous int) *float64 {
	return ChangePct(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

// Compare pairs a current value with its prior-period counterpart.
func Compare(current, previous decimal.Decimal) (decimal.Decimal, *decimal.Decimal, *float64) {
	prev := previous
	return current, &prev, ChangePct(current, previous)
}

// AvgOrderValue is revenue/orders rounded to 2 decimals, 0 for no orders.
func AvgOrderValue(revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(orders))).Round(2)
}
