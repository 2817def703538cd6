package services

import (
	"fmt"
	"sort"
	"strings"

	"storefront-service/models"
)

// FormatOrderMessage renders the cart into the Markdown order message posted
// to the shop's Telegram chat. External tooling parses this text, so the
// structure is fixed: customer block, 1-based item list, summary block.
func FormatOrderMessage(items []models.CartLineItem, customer models.CustomerProfile, totals models.OrderTotals) string {
	var b strings.Builder

	b.WriteString("*New Order!*\n\n")
	b.WriteString("*Customer:*\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: https://t.me/+%s\n\n", InternationalPhone(customer.Phone))
	b.WriteString("*Order Details:*\n")

	for i, item := range items {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Title)
		if item.Variant != nil {
			fmt.Fprintf(&b, "   _%s %s_\n", item.Variant.Size, item.Variant.Color)
		}
		fmt.Fprintf(&b, "   Qty: %d × $%.2f\n", item.Quantity, item.UnitPrice)
		if custom := customizationSummary(item.Customizations); custom != "" {
			fmt.Fprintf(&b, "   Custom: %s\n", custom)
		}
		b.WriteString("\n")
	}

	b.WriteString("*Summary:*\n")
	fmt.Fprintf(&b, "Subtotal: $%.2f\n", totals.Subtotal)
	if totals.Shipping == 0 {
		b.WriteString("Shipping: Free\n")
	} else {
		fmt.Fprintf(&b, "Shipping: $%.2f\n", totals.Shipping)
	}
	fmt.Fprintf(&b, "Tax: $%.2f\n", totals.Tax)
	fmt.Fprintf(&b, "*Total: $%.2f*\n", totals.Total)

	return b.String()
}

// customizationSummary joins the non-empty field summaries with " | ". Keys
// are sorted so the rendering is deterministic; JSON objects carry no field
// order. Returns "" when every value is empty, which drops the Custom line.
func customizationSummary(values map[string]models.CustomizationValue) string {
	if len(values) == 0 {
		return ""
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := values[k].Summary(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}
