package services

import (
	"context"

	"go.uber.org/zap"

	"storefront-service/database"
	"storefront-service/models"
)

// Catalog is the slice of the CMS client the cart needs: resolving a product
// at add time to snapshot its current price, title and image.
type Catalog interface {
	ProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// CartService owns the cart mutation rules: add-time snapshots, the
// quantity >= 1 invariant, index-addressed updates, no merging of duplicate
// lines.
type CartService struct {
	store   database.Store
	catalog Catalog
	logger  *zap.Logger
}

func NewCartService(store database.Store, catalog Catalog, logger *zap.Logger) *CartService {
	return &CartService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// GetCart returns the current lines and their derived totals.
func (s *CartService) GetCart(ctx context.Context, session string) ([]models.CartLineItem, models.OrderTotals, *ServiceError) {
	items, _, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, models.OrderTotals{}, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	return items, AggregateTotals(items), nil
}

// AddItem resolves the product, rejects out-of-stock variants before any
// store mutation, and appends a new line. Lines for the same product and
// variant are intentionally kept separate: each can carry its own
// customizations and is adjusted independently.
func (s *CartService) AddItem(ctx context.Context, session string, req models.AddItemRequest) ([]models.CartLineItem, *ServiceError) {
	product, err := s.catalog.ProductBySlug(ctx, req.Slug)
	if err != nil {
		s.logger.Error("Catalog lookup failed", zap.Error(err), zap.String("slug", req.Slug))
		return nil, &ServiceError{StatusCode: 502, Message: "Catalog unavailable"}
	}
	if product == nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}

	unitPrice := product.Price
	var variant *models.Variant

	if len(product.Variants) > 0 {
		if req.VariantSKU == "" {
			return nil, &ServiceError{StatusCode: 400, Message: "Please select a size/color"}
		}
		selected := findVariant(product.Variants, req.VariantSKU)
		if selected == nil {
			return nil, &ServiceError{StatusCode: 404, Message: "Variant not found"}
		}
		if selected.Stock <= 0 {
			return nil, &ServiceError{StatusCode: 409, Message: "This item is currently out of stock"}
		}
		unitPrice = selected.Price
		if selected.Size != "" || selected.Color != "" {
			variant = &models.Variant{Size: selected.Size, Color: selected.Color}
		}
	}

	// Even an empty submission goes through validation: a required field
	// left out entirely must still block the add.
	var customizations map[string]models.CustomizationValue
	if product.AllowCustomization && len(product.CustomizationTemplate) > 0 {
		if fieldErrs := ValidateCustomizations(product.CustomizationTemplate, req.Customizations); len(fieldErrs) > 0 {
			return nil, &ServiceError{StatusCode: 422, Message: "Invalid customizations", Fields: fieldErrs}
		}
		customizations = req.Customizations
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := models.CartLineItem{
		ProductID:      product.ID,
		Slug:           product.Slug,
		Title:          product.Title,
		UnitPrice:      unitPrice,
		Quantity:       quantity,
		Variant:        variant,
		Image:          firstImageURL(product),
		Customizations: customizations,
	}

	items, _, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}

	items = append(items, item)
	if err := s.store.SaveCart(ctx, session, items); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}

	return items, nil
}

// UpdateQuantity replaces the quantity of the line at index, keeping every
// other field and the line order. A quantity below 1 removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, session string, index, quantity int) ([]models.CartLineItem, *ServiceError) {
	if quantity < 1 {
		return s.RemoveItem(ctx, session, index)
	}

	items, _, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if index < 0 || index >= len(items) {
		return nil, &ServiceError{StatusCode: 404, Message: "Cart item index out of range"}
	}

	items[index].Quantity = quantity
	if err := s.store.SaveCart(ctx, session, items); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}
	return items, nil
}

// RemoveItem drops the line at index; the remaining lines keep their
// relative order.
func (s *CartService) RemoveItem(ctx context.Context, session string, index int) ([]models.CartLineItem, *ServiceError) {
	items, _, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if index < 0 || index >= len(items) {
		return nil, &ServiceError{StatusCode: 404, Message: "Cart item index out of range"}
	}

	items = append(items[:index], items[index+1:]...)
	if err := s.store.SaveCart(ctx, session, items); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}
	return items, nil
}

// ClearCart removes both persisted records for the session.
func (s *CartService) ClearCart(ctx context.Context, session string) *ServiceError {
	if err := s.store.Clear(ctx, session); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}

func findVariant(variants []models.ProductVariant, sku string) *models.ProductVariant {
	for i := range variants {
		if variants[i].SKU == sku {
			return &variants[i]
		}
	}
	return nil
}

func firstImageURL(product *models.Product) string {
	if len(product.Images) > 0 {
		return product.Images[0].URL
	}
	return ""
}
