package models

import "time"

// AddItemRequest is the payload for adding a product to the cart. The
// product is resolved by slug; VariantSKU selects the size/color and is
// required when the product declares variants.
type AddItemRequest struct {
	Slug           string                        `json:"slug" binding:"required,slug"`
	VariantSKU     string                        `json:"variant_sku,omitempty"`
	Quantity       int                           `json:"quantity,omitempty" binding:"omitempty,gte=1"`
	Customizations map[string]CustomizationValue `json:"customizations,omitempty"`
}

// UpdateQuantityRequest carries the new quantity for a cart line. Zero and
// negative values are accepted and remove the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// FieldErrors maps the two customer form fields to their inline validation
// messages. A zero value means the profile is valid.
type FieldErrors struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Valid reports whether no field carries an error.
func (e FieldErrors) Valid() bool {
	return e.Name == "" && e.Phone == ""
}

// Map flattens the errors for transport inside a service error.
func (e FieldErrors) Map() map[string]string {
	m := map[string]string{}
	if e.Name != "" {
		m["name"] = e.Name
	}
	if e.Phone != "" {
		m["phone"] = e.Phone
	}
	return m
}

// CheckoutResult is returned after an order was accepted by the messaging
// webhook. OrderToken is opaque and used only by the confirmation view and
// for receiver-side de-duplication.
type CheckoutResult struct {
	OrderToken string      `json:"order_token"`
	Totals     OrderTotals `json:"totals"`
}

// OrderPlacedEvent is published to Kafka after a successful checkout so
// downstream consumers can react without parsing the Telegram message.
type OrderPlacedEvent struct {
	Event      string          `json:"event"` // always "order.placed"
	OrderToken string          `json:"order_token"`
	Session    string          `json:"session"`
	Customer   CustomerProfile `json:"customer"`
	Items      []CartLineItem  `json:"items"`
	Totals     OrderTotals     `json:"totals"`
	Timestamp  time.Time       `json:"timestamp"`
}
