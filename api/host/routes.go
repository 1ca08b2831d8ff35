package host

import (
	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
)

// RegisterRoutes registers announcement pipeline routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/host/evaluate - Run one decision tick
	router.POST("/evaluate", PostEvaluate(deps))

	// POST /api/v1/host/announce - Produce and deliver an announcement
	router.POST("/announce", PostAnnounce(deps))

	// POST /api/v1/host/listener-connected - Shoutout gate for new listeners
	router.POST("/listener-connected", PostListenerConnected(deps))

	// GET /api/v1/host/listeners - Live audience snapshot
	router.GET("/listeners", GetListeners(deps))

	// POST /api/v1/host/playlist - Bind uploaded media into a playlist
	router.POST("/playlist", PostPlaylist(deps))

	// GET /api/v1/host/history - Recorded announcements
	router.GET("/history", GetHistory(deps))
}
