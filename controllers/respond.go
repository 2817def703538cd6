package controllers

import (
	"github.com/gin-gonic/gin"

	"storefront-service/middleware"
	"storefront-service/services"
)

func session(c *gin.Context) string {
	return c.GetString(middleware.SessionKey)
}

// respondServiceError maps a ServiceError onto the wire: the message under
// "error", per-field validation messages under "fields" when present.
func respondServiceError(c *gin.Context, err *services.ServiceError) {
	body := gin.H{"error": err.Message}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	c.JSON(err.StatusCode, body)
}
