package host

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
)

// GetListeners returns the live audience with resolved cities
func GetListeners(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		listeners, err := deps.Broadcast.GetListeners(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Listener fetch failed: %v", err)
			c.JSON(http.StatusBadGateway, types.NewErrorResponse("Failed to fetch listeners"))
			return
		}

		cities, err := deps.Announcer.ListenerCities(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] City resolution failed: %v", err)
			// Cities are advisory; serve the raw listener list anyway
			cities = nil
		}

		if listeners == nil {
			listeners = []azuracast.Listener{}
		}
		if cities == nil {
			cities = []string{}
		}
		c.JSON(http.StatusOK, types.ListenersResponse{
			Success:        true,
			TotalListeners: len(listeners),
			Cities:         cities,
			Listeners:      listeners,
		})
	}
}
