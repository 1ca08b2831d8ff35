package host

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urbanallinone/radio-host-api/api/types"
	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	apperrors "github.com/urbanallinone/radio-host-api/pkg/errors"
)

func TestPostAnnounce(t *testing.T) {
	mockAnnouncer := new(MockAnnouncer)
	mockAnnouncer.On("Announce", mock.Anything, announcer.ModeOutro, "").Return(&announcer.Result{
		Mode:      announcer.ModeOutro,
		Text:      "That was Dave with Location!",
		Filename:  "ai-host-1700000000000.mp3",
		LocalPath: "./announcements/ai-host-1700000000000.mp3",
		Upload: &azuracast.UploadResult{
			Uploaded:   true,
			MediaID:    9,
			Playlisted: true,
		},
	}, nil)

	deps := &types.Dependencies{Announcer: mockAnnouncer}
	router := setupRouter(deps)

	w := performJSON(router, http.MethodPost, "/host/announce", types.AnnounceRequest{Type: "outro"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp types.AnnounceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "That was Dave with Location!", resp.Text)
	assert.Equal(t, "ai-host-1700000000000.mp3", resp.Filename)
	assert.True(t, resp.Uploaded)
	mockAnnouncer.AssertExpectations(t)
}

func TestPostAnnounce_EmptyBodyDefaultsToRandom(t *testing.T) {
	mockAnnouncer := new(MockAnnouncer)
	mockAnnouncer.On("Announce", mock.Anything, announcer.ModeRandom, "").Return(&announcer.Result{
		Mode: announcer.ModeRandom,
		Text: "You're locked in!",
	}, nil)

	deps := &types.Dependencies{Announcer: mockAnnouncer}
	router := setupRouter(deps)

	w := performJSON(router, http.MethodPost, "/host/announce", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAnnouncer.AssertExpectations(t)
}

func TestPostAnnounce_UnknownType(t *testing.T) {
	mockAnnouncer := new(MockAnnouncer)
	deps := &types.Dependencies{Announcer: mockAnnouncer}
	router := setupRouter(deps)

	w := performJSON(router, http.MethodPost, "/host/announce", types.AnnounceRequest{Type: "jingle"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAnnouncer.AssertNotCalled(t, "Announce", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostAnnounce_PipelineFailure(t *testing.T) {
	mockAnnouncer := new(MockAnnouncer)
	mockAnnouncer.On("Announce", mock.Anything, announcer.ModeOutro, "").
		Return(nil, apperrors.Wrap(errors.New("provider returned 401"), apperrors.ErrCodeSynthesisFailed, "synthesize announcement"))

	deps := &types.Dependencies{Announcer: mockAnnouncer}
	router := setupRouter(deps)

	w := performJSON(router, http.MethodPost, "/host/announce", types.AnnounceRequest{Type: "outro"})

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate announcement", resp.Error)
}
