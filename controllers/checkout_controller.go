package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/services"
)

type CheckoutController struct {
	Customers *services.CustomerService
	Checkout  *services.CheckoutService
}

func NewCheckoutController(customers *services.CustomerService, checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Customers: customers, Checkout: checkout}
}

// GetCustomer returns the pending profile and its inline validation state.
func (cc *CheckoutController) GetCustomer(c *gin.Context) {
	customer, fieldErrs, serr := cc.Customers.Get(c, session(c))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer, "errors": fieldErrs})
}

// SaveCustomer overwrites the pending profile. The phone is normalized on
// the way in; validation messages are returned but do not block the save.
func (cc *CheckoutController) SaveCustomer(c *gin.Context) {
	var req models.CustomerProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customer, fieldErrs, serr := cc.Customers.Save(c, session(c), req)
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer, "errors": fieldErrs})
}

// PlaceOrder validates and submits the order; on success the cart is gone
// and the client is handed the confirmation token.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	result, serr := cc.Checkout.Checkout(c, session(c))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Confirmation echoes the opaque order token for the thank-you view. The
// token is display-only: not validated, not guaranteed unique.
func (cc *CheckoutController) Confirmation(c *gin.Context) {
	order := c.Query("order")
	if order == "" {
		order = "N/A"
	}
	c.JSON(http.StatusOK, gin.H{"order_number": order})
}
