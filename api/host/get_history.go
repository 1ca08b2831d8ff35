package host

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
)

// GetHistory lists recorded announcements, newest first
func GetHistory(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.History == nil {
			c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse("History is not configured"))
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		announcements, err := deps.History.Recent(c.Request.Context(), limit)
		if err != nil {
			log.Printf("[ERROR] History fetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse("Failed to fetch history"))
			return
		}

		counts, err := deps.History.CountByCategory(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] History counts failed: %v", err)
			counts = nil
		}

		c.JSON(http.StatusOK, types.HistoryResponse{
			Count:         len(announcements),
			Counts:        counts,
			Announcements: announcements,
		})
	}
}
