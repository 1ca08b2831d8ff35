package types

// NowPlayingSong is track metadata inside an evaluation request.
type NowPlayingSong struct {
	Artist string `json:"artist" example:"Dave"`
	Title  string `json:"title" example:"Location"`
	Genre  string `json:"genre" example:"UK Rap"`
}

// EvaluateRequest is a now-playing snapshot submitted for one decision
// tick.
type EvaluateRequest struct {
	Song     NowPlayingSong `json:"song"`
	Elapsed  int            `json:"elapsed" example:"42"`
	Duration int            `json:"duration" example:"180"`
}

// AnnounceRequest asks for an announcement to be produced now.
type AnnounceRequest struct {
	Type       string `json:"type,omitempty" example:"random"` // outro, intro, random, location, time
	ListenerIP string `json:"listenerIP,omitempty" example:"81.2.69.142"`
}

// ListenerConnectedRequest is the webhook payload for a new listener.
type ListenerConnectedRequest struct {
	IP        string `json:"ip" binding:"required" example:"81.2.69.142"`
	UserAgent string `json:"userAgent,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PlaylistRequest binds an uploaded media file into a playlist.
type PlaylistRequest struct {
	FileID     int `json:"fileId" binding:"required" example:"11431461"`
	PlaylistID int `json:"playlistId" binding:"required" example:"5344"`
}

// NewsRequest selects a news topic.
type NewsRequest struct {
	Topic string `json:"topic,omitempty" example:"uk"`
}
