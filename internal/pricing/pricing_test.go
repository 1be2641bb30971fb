package pricing_test

import (
	"testing"

	"github.com/hungryup/hungryup-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {

	t.Run("Empty Sequence", func(t *testing.T) {
		assert.Equal(t, int64(0), pricing.ComputeTotal(nil))
		assert.Equal(t, int64(0), pricing.ComputeTotal([]pricing.LineItem{}))
	})

	t.Run("Sums Unit Price Times Quantity", func(t *testing.T) {
		items := []pricing.LineItem{
			{UnitPrice: 1000, Quantity: 2},
			{UnitPrice: 500, Quantity: 1},
		}

		assert.Equal(t, int64(2500), pricing.ComputeTotal(items))
	})

	t.Run("Single Item", func(t *testing.T) {
		items := []pricing.LineItem{{UnitPrice: 12999, Quantity: 3}}

		assert.Equal(t, int64(38997), pricing.ComputeTotal(items))
	})

	t.Run("Zero Quantity Contributes Nothing", func(t *testing.T) {
		items := []pricing.LineItem{
			{UnitPrice: 700, Quantity: 0},
			{UnitPrice: 300, Quantity: 4},
		}

		assert.Equal(t, int64(1200), pricing.ComputeTotal(items))
	})
}
