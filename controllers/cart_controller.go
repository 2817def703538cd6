package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/services"
)

type CartController struct {
	Carts *services.CartService
	Badge *services.CartBadge
}

func NewCartController(carts *services.CartService, badge *services.CartBadge) *CartController {
	return &CartController{Carts: carts, Badge: badge}
}

// GetCart returns the cart lines with derived totals.
func (cc *CartController) GetCart(c *gin.Context) {
	items, totals, serr := cc.Carts.GetCart(c, session(c))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totals": totals})
}

// AddItem appends a product to the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Invalid add-item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	items, serr := cc.Carts.AddItem(c, session(c), req)
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totals": services.AggregateTotals(items)})
}

// UpdateQuantity changes the quantity of the line at :index. A quantity
// below 1 removes the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Invalid quantity payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	items, serr := cc.Carts.UpdateQuantity(c, session(c), index, *req.Quantity)
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totals": services.AggregateTotals(items)})
}

// RemoveItem drops the line at :index.
func (cc *CartController) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	items, serr := cc.Carts.RemoveItem(c, session(c), index)
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totals": services.AggregateTotals(items)})
}

// ClearCart removes the cart and pending customer records.
func (cc *CartController) ClearCart(c *gin.Context) {
	if serr := cc.Carts.ClearCart(c, session(c)); serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// Count returns the badge count (total quantity across lines).
func (cc *CartController) Count(c *gin.Context) {
	count, serr := cc.Badge.Count(c, session(c))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
