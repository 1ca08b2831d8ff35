package news

import (
	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
)

// RegisterRoutes registers news routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/news - Curated feed with TTL cache
	router.POST("", Post(deps))
}
