package host

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/urbanallinone/radio-host-api/internal/models"
	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/decision"
)

// MockAnnouncer is a mock implementation of types.AnnouncerService
type MockAnnouncer struct {
	mock.Mock
}

func (m *MockAnnouncer) Evaluate(state decision.PlaybackState) decision.Decision {
	args := m.Called(state)
	return args.Get(0).(decision.Decision)
}

func (m *MockAnnouncer) Announce(ctx context.Context, mode string, listenerIP string) (*announcer.Result, error) {
	args := m.Called(ctx, mode, listenerIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*announcer.Result), args.Error(1)
}

func (m *MockAnnouncer) ListenerCities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAnnouncer) ShouldShoutout() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockBroadcast is a mock implementation of types.BroadcastClient
type MockBroadcast struct {
	mock.Mock
}

func (m *MockBroadcast) GetNowPlaying(ctx context.Context) (*azuracast.NowPlaying, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*azuracast.NowPlaying), args.Error(1)
}

func (m *MockBroadcast) GetListeners(ctx context.Context) ([]azuracast.Listener, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azuracast.Listener), args.Error(1)
}

func (m *MockBroadcast) SetPlaylists(ctx context.Context, mediaID int, playlistIDs []int) error {
	args := m.Called(ctx, mediaID, playlistIDs)
	return args.Error(0)
}

// MockHistory is a mock implementation of types.HistoryStore
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Recent(ctx context.Context, limit int) ([]models.Announcement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *MockHistory) CountByCategory(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
