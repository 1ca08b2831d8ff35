package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Radio Host API",
			"version":     "1.0.0",
			"description": "Automated announcement layer for Urban All-in-One Radio",
			"status":      "running",
		})
	}
}
