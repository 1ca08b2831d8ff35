package host

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	apperrors "github.com/urbanallinone/radio-host-api/pkg/errors"
)

// PostAnnounce produces an announcement and pushes it to the station
func PostAnnounce(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.AnnounceRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("Invalid announce payload"))
			return
		}
		if req.Type == "" {
			req.Type = announcer.ModeRandom
		}
		if !validMode(req.Type) {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("Unknown announcement type: "+req.Type))
			return
		}

		log.Printf("[DEBUG] Generating %s announcement", req.Type)

		result, err := deps.Announcer.Announce(c.Request.Context(), req.Type, req.ListenerIP)
		if err != nil {
			log.Printf("[ERROR] Announcement failed: %v", err)
			c.JSON(apperrors.GetHTTPCode(err), types.NewErrorResponse("Failed to generate announcement"))
			return
		}

		resp := types.AnnounceResponse{
			Success:   true,
			Text:      result.Text,
			AudioPath: result.LocalPath,
			Filename:  result.Filename,
			Location:  result.Location,
			Upload:    result.Upload,
		}
		if result.Upload != nil {
			resp.Uploaded = result.Upload.Uploaded
		}
		c.JSON(http.StatusOK, resp)
	}
}

func validMode(mode string) bool {
	switch mode {
	case announcer.ModeOutro, announcer.ModeIntro, announcer.ModeRandom, announcer.ModeLocation, announcer.ModeTime:
		return true
	}
	return false
}
