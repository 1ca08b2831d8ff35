package azuracast

// Song is the track metadata AzuraCast reports for the current item.
type Song struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Genre  string `json:"genre"`
}

// NowPlaying is the playback snapshot for a station.
type NowPlaying struct {
	Song          Song
	Elapsed       float64
	Duration      float64
	ListenerCount int
}

// nowPlayingResponse is the AzuraCast wire format for /api/nowplaying.
type nowPlayingResponse struct {
	NowPlaying struct {
		Elapsed  float64 `json:"elapsed"`
		Duration float64 `json:"duration"`
		Song     Song    `json:"song"`
	} `json:"now_playing"`
	Listeners struct {
		Current int `json:"current"`
	} `json:"listeners"`
}

// Listener is one connected client as reported by the station.
type Listener struct {
	IP            string `json:"ip"`
	UserAgent     string `json:"user_agent"`
	ConnectedTime int    `json:"connected_time"`
}

// StationFile is one entry in the station's media library.
type StationFile struct {
	ID       int    `json:"id"`
	UniqueID string `json:"unique_id"`
	Path     string `json:"path"`
}

// uploadRequest is the wire format for media uploads. File carries the
// base64-encoded audio.
type uploadRequest struct {
	Path string `json:"path"`
	File string `json:"file"`
}

// playlistAssignment is the wire format for attaching a media file to
// playlists.
type playlistAssignment struct {
	Playlists []int `json:"playlists"`
}

// UploadResult describes the outcome of a delivery attempt. Delivery
// failures are reported here rather than as errors so an announcement
// that synthesized fine still counts as a partial success.
type UploadResult struct {
	Uploaded    bool   `json:"uploaded"`
	Path        string `json:"path,omitempty"`
	MediaID     int    `json:"media_id,omitempty"`
	Playlisted  bool   `json:"playlisted,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
}
