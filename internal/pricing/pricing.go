// Package pricing computes order and cart totals. All amounts are integer
// minor units (cents); floats never enter the arithmetic.
package pricing

type LineItem struct {
	UnitPrice int64
	Quantity  int64
}

// ComputeTotal sums unit price times quantity over the line items. An empty
// sequence yields 0.
func ComputeTotal(items []LineItem) int64 {

	var total int64

	for _, item := range items {
		total += item.UnitPrice * item.Quantity
	}

	return total
}
