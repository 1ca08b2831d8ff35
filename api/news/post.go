package news

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
)

// Post serves the curated news feed for a topic
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("Invalid news request"))
			return
		}

		feed, err := deps.News.GetFeed(c.Request.Context(), req.Topic)
		if err != nil {
			log.Printf("[ERROR] News fetch failed: %v", err)
			c.JSON(http.StatusBadGateway, types.NewErrorResponse("Failed to fetch news"))
			return
		}

		c.JSON(http.StatusOK, feed)
	}
}
