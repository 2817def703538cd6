package services

import "storefront-service/models"

// Pricing rules for the storefront. Shipping is free strictly above the
// threshold: a subtotal of exactly 100.00 still pays the flat fee.
const (
	TaxRate               = 0.08
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 12.99
)

// AggregateTotals derives the order totals from the cart lines. It is pure
// and performs no rounding; amounts are formatted to two decimals only at
// display time.
func AggregateTotals(items []models.CartLineItem) models.OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	tax := subtotal * TaxRate

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return models.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}
