package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-service/database"
	"storefront-service/models"
)

// MessageSender delivers the formatted order message to the shop's chat.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// OrderEventPublisher mirrors a successful checkout onto the event bus.
type OrderEventPublisher interface {
	SendOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// CheckoutService turns the persisted cart and customer into an order
// message. On a send failure nothing is cleared, so the user can retry; on
// success both records are cleared exactly once.
type CheckoutService struct {
	store     database.Store
	sender    MessageSender
	publisher OrderEventPublisher
	logger    *zap.Logger
}

func NewCheckoutService(store database.Store, sender MessageSender, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// WithPublisher attaches the optional order-event producer.
func (s *CheckoutService) WithPublisher(p OrderEventPublisher) *CheckoutService {
	s.publisher = p
	return s
}

// Checkout validates, formats and submits the order. The order token is
// generated before submission and embedded in the message footer so the
// receiving side can de-duplicate a retry after an ambiguous failure.
func (s *CheckoutService) Checkout(ctx context.Context, session string) (*models.CheckoutResult, *ServiceError) {
	items, customer, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load checkout state", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if len(items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	if fieldErrs := ValidateCustomer(customer); !fieldErrs.Valid() {
		return nil, &ServiceError{StatusCode: 422, Message: "Invalid customer details", Fields: fieldErrs.Map()}
	}

	totals := AggregateTotals(items)
	orderToken := uuid.NewString()

	message := FormatOrderMessage(items, customer, totals)
	message += fmt.Sprintf("\nRef: %s\n", orderToken)

	if err := s.sender.SendMessage(ctx, message); err != nil {
		s.logger.Error("Order submission failed", zap.Error(err),
			zap.String("order_token", orderToken))
		return nil, &ServiceError{StatusCode: 502, Message: "Failed to send order. Please try again."}
	}

	// The order is out the door; a failed cleanup must not fail the
	// checkout. The records expire with their TTL either way.
	if err := s.store.Clear(ctx, session); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err),
			zap.String("order_token", orderToken))
	}

	if s.publisher != nil {
		event := models.OrderPlacedEvent{
			Event:      "order.placed",
			OrderToken: orderToken,
			Session:    session,
			Customer:   customer,
			Items:      items,
			Totals:     totals,
			Timestamp:  time.Now().UTC(),
		}
		if err := s.publisher.SendOrderPlaced(ctx, event); err != nil {
			s.logger.Warn("Failed to publish order event", zap.Error(err),
				zap.String("order_token", orderToken))
		}
	}

	s.logger.Info("Order placed",
		zap.String("order_token", orderToken),
		zap.Int("items", len(items)),
		zap.Float64("total", totals.Total))

	return &models.CheckoutResult{OrderToken: orderToken, Totals: totals}, nil
}
