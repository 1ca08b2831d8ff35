package announcer

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urbanallinone/radio-host-api/internal/models"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/decision"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
	"github.com/urbanallinone/radio-host-api/internal/services/voice"
)

// Mock implementations for testing

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, override *voice.SettingsOverride) (*voice.Audio, error) {
	args := m.Called(ctx, text, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voice.Audio), args.Error(1)
}

func (m *MockSynthesizer) Save(audio *voice.Audio, dir string) (string, error) {
	args := m.Called(audio, dir)
	return args.String(0), args.Error(1)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) GetNowPlaying(ctx context.Context) (*azuracast.NowPlaying, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*azuracast.NowPlaying), args.Error(1)
}

func (m *MockBroadcaster) GetListeners(ctx context.Context) ([]azuracast.Listener, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azuracast.Listener), args.Error(1)
}

func (m *MockBroadcaster) Deliver(ctx context.Context, filename string, data []byte) *azuracast.UploadResult {
	args := m.Called(ctx, filename, data)
	return args.Get(0).(*azuracast.UploadResult)
}

type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Resolve(ctx context.Context, ip string) geo.Location {
	args := m.Called(ctx, ip)
	return args.Get(0).(geo.Location)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func newTestService(generator Generator, broadcast Broadcaster, locator Locator, recorder Recorder) *Service {
	engine := decision.NewEngine(decision.DefaultConfig(), rand.New(rand.NewSource(1)))
	synth := &MockSynthesizer{}
	svc := NewService(Config{
		StationName: "Urban All-in-One Radio",
		OutputDir:   "/tmp/announcements",
		Timezone:    "UTC",
	}, engine, generator, synth, broadcast, locator, recorder, rand.New(rand.NewSource(1)))
	svc.synth = synth
	return svc
}

func TestAnnounce_OutroPipeline(t *testing.T) {
	generator := NewTemplateGenerator(rand.New(rand.NewSource(7)))
	broadcast := &MockBroadcaster{}
	recorder := &MockRecorder{}

	svc := newTestService(generator, broadcast, nil, recorder)
	synth := svc.synth.(*MockSynthesizer)

	broadcast.On("GetNowPlaying", mock.Anything).Return(&azuracast.NowPlaying{
		Song:          azuracast.Song{Artist: "Dave", Title: "Location", Genre: "UK Rap"},
		ListenerCount: 12,
	}, nil)

	audio := &voice.Audio{Data: []byte("mpeg"), Filename: "ai-host-1.mp3"}
	synth.On("Synthesize", mock.Anything, mock.MatchedBy(func(text string) bool {
		return text != ""
	}), (*voice.SettingsOverride)(nil)).Return(audio, nil).Run(func(args mock.Arguments) {
		audio.Text = args.String(1)
	})
	synth.On("Save", audio, "/tmp/announcements").Return("/tmp/announcements/ai-host-1.mp3", nil)

	broadcast.On("Deliver", mock.Anything, "ai-host-1.mp3", []byte("mpeg")).Return(&azuracast.UploadResult{
		Uploaded:   true,
		MediaID:    9,
		Playlisted: true,
	})

	recorder.On("Record", mock.Anything, mock.MatchedBy(func(a *models.Announcement) bool {
		return a.Category == ModeOutro && a.Uploaded && a.MediaID == 9 && a.Artist == "Dave"
	})).Return(nil)

	result, err := svc.Announce(context.Background(), ModeOutro, "")
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Dave")
	assert.Equal(t, "ai-host-1.mp3", result.Filename)
	assert.Equal(t, "/tmp/announcements/ai-host-1.mp3", result.LocalPath)
	assert.True(t, result.Upload.Uploaded)

	broadcast.AssertExpectations(t)
	synth.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestAnnounce_DeliveryFailureIsPartialSuccess(t *testing.T) {
	generator := NewTemplateGenerator(rand.New(rand.NewSource(7)))
	broadcast := &MockBroadcaster{}
	recorder := &MockRecorder{}

	svc := newTestService(generator, broadcast, nil, recorder)
	synth := svc.synth.(*MockSynthesizer)

	broadcast.On("GetNowPlaying", mock.Anything).Return(&azuracast.NowPlaying{
		Song: azuracast.Song{Artist: "Stormzy", Title: "Vossi Bop"},
	}, nil)

	audio := &voice.Audio{Data: []byte("mpeg"), Filename: "ai-host-2.mp3"}
	synth.On("Synthesize", mock.Anything, mock.Anything, (*voice.SettingsOverride)(nil)).Return(audio, nil)
	synth.On("Save", audio, mock.Anything).Return("/tmp/announcements/ai-host-2.mp3", nil)

	broadcast.On("Deliver", mock.Anything, "ai-host-2.mp3", []byte("mpeg")).Return(&azuracast.UploadResult{
		ErrorDetail: "upload: unexpected status 500",
	})

	recorder.On("Record", mock.Anything, mock.MatchedBy(func(a *models.Announcement) bool {
		return !a.Uploaded && a.ErrorDetail != ""
	})).Return(nil)

	result, err := svc.Announce(context.Background(), ModeRandom, "")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Text)
	assert.NotEmpty(t, result.LocalPath)
	assert.False(t, result.Upload.Uploaded)
	assert.Contains(t, result.Upload.ErrorDetail, "500")
	recorder.AssertExpectations(t)
}

func TestAnnounce_SynthesisFailureAborts(t *testing.T) {
	generator := NewTemplateGenerator(rand.New(rand.NewSource(7)))
	broadcast := &MockBroadcaster{}

	svc := newTestService(generator, broadcast, nil, nil)
	synth := svc.synth.(*MockSynthesizer)

	broadcast.On("GetNowPlaying", mock.Anything).Return(nil, errors.New("station down"))
	synth.On("Synthesize", mock.Anything, mock.Anything, (*voice.SettingsOverride)(nil)).
		Return(nil, errors.New("quota exceeded"))

	_, err := svc.Announce(context.Background(), ModeRandom, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesize announcement")
}

func TestAnnounce_LocationShoutout(t *testing.T) {
	generator := NewTemplateGenerator(rand.New(rand.NewSource(7)))
	broadcast := &MockBroadcaster{}
	locator := &MockLocator{}

	svc := newTestService(generator, broadcast, locator, nil)
	synth := svc.synth.(*MockSynthesizer)

	locator.On("Resolve", mock.Anything, "81.2.69.142").Return(geo.Location{City: "Manchester", Country: "United Kingdom"})
	broadcast.On("GetListeners", mock.Anything).Return([]azuracast.Listener{{IP: "81.2.69.142"}}, nil)

	audio := &voice.Audio{Data: []byte("mpeg"), Filename: "ai-host-3.mp3"}
	synth.On("Synthesize", mock.Anything, mock.MatchedBy(func(text string) bool {
		return assert.ObjectsAreEqual(true, text != "")
	}), (*voice.SettingsOverride)(nil)).Return(audio, nil)
	synth.On("Save", audio, mock.Anything).Return("/tmp/announcements/ai-host-3.mp3", nil)
	broadcast.On("Deliver", mock.Anything, "ai-host-3.mp3", []byte("mpeg")).Return(&azuracast.UploadResult{Uploaded: true})

	result, err := svc.Announce(context.Background(), ModeLocation, "81.2.69.142")
	require.NoError(t, err)

	require.NotNil(t, result.Location)
	assert.Equal(t, "Manchester", result.Location.City)
}

func TestListenerCities(t *testing.T) {
	broadcast := &MockBroadcaster{}
	locator := &MockLocator{}
	svc := newTestService(NewTemplateGenerator(nil), broadcast, locator, nil)

	broadcast.On("GetListeners", mock.Anything).Return([]azuracast.Listener{
		{IP: "1.1.1.1"},
		{IP: "2.2.2.2"},
		{IP: "3.3.3.3"},
		{IP: "4.4.4.4"},
	}, nil)
	locator.On("Resolve", mock.Anything, "1.1.1.1").Return(geo.Location{City: "London"})
	locator.On("Resolve", mock.Anything, "2.2.2.2").Return(geo.Location{City: "Leeds"})
	locator.On("Resolve", mock.Anything, "3.3.3.3").Return(geo.Location{City: "London"})
	locator.On("Resolve", mock.Anything, "4.4.4.4").Return(geo.Location{City: ""})

	cities, err := svc.ListenerCities(context.Background())
	require.NoError(t, err)

	// First-seen order, duplicates and blanks dropped
	assert.Equal(t, []string{"London", "Leeds"}, cities)
}

func TestShouldShoutout_Rate(t *testing.T) {
	svc := newTestService(NewTemplateGenerator(nil), nil, nil, nil)

	fired := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if svc.ShouldShoutout() {
			fired++
		}
	}
	assert.InDelta(t, 0.1, float64(fired)/float64(trials), 0.01)
}

func TestEvaluate_DelegatesToEngine(t *testing.T) {
	svc := newTestService(NewTemplateGenerator(nil), nil, nil, nil)

	d := svc.Evaluate(decision.NewPlaybackState("Dave", "Location", "grime", 12, 24))
	// Outro window classification is deterministic pre-gate
	if d.ShouldAnnounce {
		assert.Equal(t, decision.CategoryOutro, d.Category)
	} else {
		assert.Contains(t, d.Reason, "cooldown")
	}
}
