package host

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
)

// PostPlaylist binds an uploaded media file into a playlist
func PostPlaylist(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.PlaylistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("fileId and playlistId are required"))
			return
		}

		log.Printf("[DEBUG] Adding file %d to playlist %d", req.FileID, req.PlaylistID)

		if err := deps.Broadcast.SetPlaylists(c.Request.Context(), req.FileID, []int{req.PlaylistID}); err != nil {
			log.Printf("[ERROR] Playlist assignment failed: %v", err)
			c.JSON(http.StatusBadGateway, types.NewErrorResponse("Failed to add file to playlist"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "File added to playlist",
		})
	}
}
