package host

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanallinone/radio-host-api/api/types"
	"github.com/urbanallinone/radio-host-api/internal/services/decision"
)

// PostEvaluate runs one decision tick over a now-playing snapshot
func PostEvaluate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.EvaluateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[ERROR] Invalid evaluate payload: %v", err)
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("Invalid now-playing payload"))
			return
		}

		state := decision.NewPlaybackState(req.Song.Artist, req.Song.Title, req.Song.Genre, req.Elapsed, req.Duration)
		d := deps.Announcer.Evaluate(state)

		log.Printf("[DEBUG] Evaluated %s - %s (elapsed %ds/%ds): announce=%v category=%s",
			state.Artist, state.Title, state.Elapsed, state.Duration, d.ShouldAnnounce, d.Category)

		cfg := deps.Decision
		c.JSON(http.StatusOK, types.EvaluateResponse{
			ShouldAnnounce:     d.ShouldAnnounce,
			AnnouncementType:   string(d.Category),
			AnnouncementTiming: string(d.Timing),
			Reason:             d.Reason,
			CurrentSong: types.NowPlayingSong{
				Artist: state.Artist,
				Title:  state.Title,
				Genre:  state.Genre,
			},
			Timing: types.TimingInfo{
				Elapsed:    state.Elapsed,
				Remaining:  state.Remaining(),
				Duration:   state.Duration,
				Percentage: state.Percentage(),
			},
			Debug: types.EvaluateDebug{
				Genre:            state.Genre,
				OutroWindow:      fmt.Sprintf("%d-%ds remaining", cfg.OutroMinSeconds, cfg.OutroMaxSeconds),
				IntroWindow:      fmt.Sprintf("%d-%ds elapsed", cfg.IntroMinSeconds, cfg.IntroMaxSeconds),
				CooldownPassRate: cfg.EffectivePassRate(),
			},
		})
	}
}
