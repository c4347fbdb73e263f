package application

import "github.com/shopspring/decimal"

// MaxQuantity is the largest quantity a single order line may carry.
const MaxQuantity = 10000

// maxAmount is the first value a NUMERIC(12,2) column cannot hold.
var maxAmount = decimal.New(1, 10)

// toCents rounds v half away from zero to two decimal places, the precision
// prices and totals are stored at.
func toCents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// normalizePrice validates a catalog price and returns it at storage
// precision.
func normalizePrice(p float64) (float64, error) {
	if p < 0 {
		return 0, invalid("price must not be negative")
	}
	d := toCents(p)
	if d.GreaterThanOrEqual(maxAmount) {
		return 0, invalid("price must be less than %s", maxAmount.String())
	}
	f, _ := d.Float64()
	return f, nil
}
