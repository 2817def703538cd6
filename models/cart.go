package models

// Variant describes the size/color combination a cart line was added with.
// Size may be empty for one-size products.
type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color"`
}

// CartLineItem is one line of the cart. Title, unit price and image are
// snapshots taken at add time and are never re-fetched from the catalog.
type CartLineItem struct {
	ProductID      int                           `json:"product_id"`
	Slug           string                        `json:"slug"`
	Title          string                        `json:"title"`
	UnitPrice      float64                       `json:"unit_price"`
	Quantity       int                           `json:"quantity"`
	Variant        *Variant                      `json:"variant,omitempty"`
	Image          string                        `json:"image"`
	Customizations map[string]CustomizationValue `json:"customizations,omitempty"`
}

// CustomerProfile holds the checkout contact details. Phone is kept in the
// local digits-only format (leading zero, 9-10 digits).
type CustomerProfile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderTotals is derived from the cart on demand and never persisted.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}
