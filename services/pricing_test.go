package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-service/models"
	"storefront-service/services"
)

func line(price float64, qty int) models.CartLineItem {
	return models.CartLineItem{Title: "item", UnitPrice: price, Quantity: qty}
}

func TestAggregateTotalsExample(t *testing.T) {
	totals := services.AggregateTotals([]models.CartLineItem{
		{Title: "Jersey A", UnitPrice: 25.00, Quantity: 2},
	})

	assert.InDelta(t, 50.00, totals.Subtotal, 1e-9)
	assert.InDelta(t, 4.00, totals.Tax, 1e-9)
	assert.InDelta(t, 12.99, totals.Shipping, 1e-9)
	assert.InDelta(t, 66.99, totals.Total, 1e-9)
}

func TestAggregateTotalsEmptyCart(t *testing.T) {
	totals := services.AggregateTotals(nil)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Tax)
	assert.InDelta(t, services.FlatShippingFee, totals.Shipping, 1e-9)
}

func TestFreeShippingBoundary(t *testing.T) {
	// Exactly 100.00 does not qualify; strictly above does.
	atThreshold := services.AggregateTotals([]models.CartLineItem{line(100.00, 1)})
	assert.InDelta(t, 12.99, atThreshold.Shipping, 1e-9)

	aboveThreshold := services.AggregateTotals([]models.CartLineItem{line(100.01, 1)})
	assert.Zero(t, aboveThreshold.Shipping)
}

func TestSubtotalIsLinearInConcatenation(t *testing.T) {
	cart1 := []models.CartLineItem{line(19.99, 3), line(5.25, 1)}
	cart2 := []models.CartLineItem{line(42.00, 2)}

	combined := services.AggregateTotals(append(append([]models.CartLineItem{}, cart1...), cart2...))
	separate := services.AggregateTotals(cart1).Subtotal + services.AggregateTotals(cart2).Subtotal

	assert.InDelta(t, separate, combined.Subtotal, 1e-9)
}
