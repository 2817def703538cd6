package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-service/models"
	"storefront-service/services"
)

func TestFormatOrderMessageFullTemplate(t *testing.T) {
	items := []models.CartLineItem{
		{
			Title:     "Jersey A",
			UnitPrice: 25.00,
			Quantity:  2,
			Variant:   &models.Variant{Size: "M", Color: "blue"},
			Customizations: map[string]models.CustomizationValue{
				"number": models.NameNumberValue("MESSI", "10"),
			},
		},
	}
	customer := models.CustomerProfile{Name: "Sok Dara", Phone: "0713949557"}
	totals := services.AggregateTotals(items)

	got := services.FormatOrderMessage(items, customer, totals)

	want := strings.Join([]string{
		"*New Order!*",
		"",
		"*Customer:*",
		"Name: Sok Dara",
		"Phone: https://t.me/+855713949557",
		"",
		"*Order Details:*",
		"1. *Jersey A*",
		"   _M blue_",
		"   Qty: 2 × $25.00",
		"   Custom: MESSI #10",
		"",
		"*Summary:*",
		"Subtotal: $50.00",
		"Shipping: $12.99",
		"Tax: $4.00",
		"*Total: $66.99*",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatOrderMessageFreeShipping(t *testing.T) {
	items := []models.CartLineItem{{Title: "Kit", UnitPrice: 150.00, Quantity: 1}}
	totals := services.AggregateTotals(items)

	got := services.FormatOrderMessage(items, models.CustomerProfile{Name: "A", Phone: "0713949557"}, totals)

	assert.Contains(t, got, "Shipping: Free\n")
	assert.NotContains(t, got, "Shipping: $")
}

func TestFormatOrderMessageNoVariantNoCustom(t *testing.T) {
	items := []models.CartLineItem{{Title: "Scarf", UnitPrice: 9.50, Quantity: 1}}
	totals := services.AggregateTotals(items)

	got := services.FormatOrderMessage(items, models.CustomerProfile{Name: "A", Phone: "0713949557"}, totals)

	assert.Contains(t, got, "1. *Scarf*\n   Qty: 1 × $9.50\n\n")
	assert.NotContains(t, got, "_")
	assert.NotContains(t, got, "Custom:")
}

func TestFormatOrderMessageItemsAreOneBased(t *testing.T) {
	items := []models.CartLineItem{
		{Title: "First", UnitPrice: 1, Quantity: 1},
		{Title: "Second", UnitPrice: 2, Quantity: 1},
	}
	totals := services.AggregateTotals(items)

	got := services.FormatOrderMessage(items, models.CustomerProfile{Name: "A", Phone: "0713949557"}, totals)

	assert.Contains(t, got, "1. *First*")
	assert.Contains(t, got, "2. *Second*")
}

func TestFormatOrderMessageCustomizationRules(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]models.CustomizationValue
		want   string
	}{
		{
			name:   "name and number",
			values: map[string]models.CustomizationValue{"number": models.NameNumberValue("MESSI", "10")},
			want:   "   Custom: MESSI #10\n",
		},
		{
			name:   "name only",
			values: map[string]models.CustomizationValue{"number": models.NameNumberValue("MESSI", "")},
			want:   "   Custom: MESSI\n",
		},
		{
			name:   "number only",
			values: map[string]models.CustomizationValue{"number": models.NameNumberValue("", "10")},
			want:   "   Custom: #10\n",
		},
		{
			name:   "scalar value",
			values: map[string]models.CustomizationValue{"gift_wrap": models.ScalarValue("yes")},
			want:   "   Custom: yes\n",
		},
		{
			name: "keys joined in sorted order",
			values: map[string]models.CustomizationValue{
				"wrap":   models.ScalarValue("festive"),
				"number": models.NameNumberValue("MESSI", "10"),
			},
			want: "   Custom: MESSI #10 | festive\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []models.CartLineItem{{Title: "Jersey", UnitPrice: 25, Quantity: 1, Customizations: tt.values}}
			got := services.FormatOrderMessage(items, models.CustomerProfile{Name: "A", Phone: "0713949557"}, services.AggregateTotals(items))
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestFormatOrderMessageOmitsEmptyCustomizations(t *testing.T) {
	items := []models.CartLineItem{{
		Title:     "Jersey",
		UnitPrice: 25,
		Quantity:  1,
		Customizations: map[string]models.CustomizationValue{
			"number": models.NameNumberValue("", ""),
			"note":   models.ScalarValue(""),
		},
	}}

	got := services.FormatOrderMessage(items, models.CustomerProfile{Name: "A", Phone: "0713949557"}, services.AggregateTotals(items))

	assert.NotContains(t, got, "Custom:")
}
