package database

import (
	"context"

	"storefront-service/models"
)

// Record names match the persisted state layout of the storefront: a cart
// and a pending checkout customer, stored independently per session.
const (
	CartRecord     = "cart"
	CustomerRecord = "checkout_customer"
)

// ChangeEvent describes a mutation of one named record of one session. It is
// delivered to same-process subscribers synchronously and to other processes
// over Redis pub/sub.
type ChangeEvent struct {
	Record  string `json:"record"`
	Session string `json:"session"`
}

// Store is the persistence contract the cart and checkout services depend
// on. Loads never fail on corrupt payloads; they fall back to empty values.
type Store interface {
	Load(ctx context.Context, session string) ([]models.CartLineItem, models.CustomerProfile, error)
	SaveCart(ctx context.Context, session string, items []models.CartLineItem) error
	SaveCustomer(ctx context.Context, session string, customer models.CustomerProfile) error
	Clear(ctx context.Context, session string) error

	// Subscribe registers a same-process observer for record changes and
	// returns its unsubscribe function. Observers are invoked synchronously
	// after every successful write or clear.
	Subscribe(fn func(ChangeEvent)) func()
}
