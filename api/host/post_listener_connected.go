package host

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	apperrors "github.com/urbanallinone/radio-host-api/pkg/errors"
)

// PostListenerConnected gates a shoutout for a newly connected listener.
// Most connections pass silently so the station doesn't greet every
// single tune-in.
func PostListenerConnected(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ListenerConnectedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("Listener IP is required"))
			return
		}

		log.Printf("[DEBUG] New listener connected from %s", req.IP)

		if !deps.Announcer.ShouldShoutout() {
			c.JSON(http.StatusOK, types.ListenerConnectedResponse{
				Success:          true,
				PlayAnnouncement: false,
				Reason:           "Random skip to avoid being annoying",
			})
			return
		}

		result, err := deps.Announcer.Announce(c.Request.Context(), announcer.ModeLocation, req.IP)
		if err != nil {
			log.Printf("[ERROR] Shoutout failed: %v", err)
			c.JSON(apperrors.GetHTTPCode(err), types.NewErrorResponse("Failed to generate shoutout"))
			return
		}

		c.JSON(http.StatusOK, types.ListenerConnectedResponse{
			Success:          true,
			PlayAnnouncement: true,
			Text:             result.Text,
			AudioPath:        result.LocalPath,
			Location:         result.Location,
		})
	}
}
