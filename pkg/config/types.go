package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Station   StationConfig   `mapstructure:"station"`
	AzuraCast AzuraCastConfig `mapstructure:"azuracast"`
	Voice     VoiceConfig     `mapstructure:"voice"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	GeoIP     GeoIPConfig     `mapstructure:"geoip"`
	Announcer AnnouncerConfig `mapstructure:"announcer"`
	News      NewsConfig      `mapstructure:"news"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StationConfig identifies the station on air
type StationConfig struct {
	Name     string `mapstructure:"name"`
	Tagline  string `mapstructure:"tagline"`
	Timezone string `mapstructure:"timezone"`
}

// AzuraCastConfig contains broadcast server API settings
type AzuraCastConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	StationID    int           `mapstructure:"station_id"`
	UploadFolder string        `mapstructure:"upload_folder"`
	PlaylistID   int64         `mapstructure:"playlist_id"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// VoiceConfig contains ElevenLabs text-to-speech settings
type VoiceConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	VoiceID         string        `mapstructure:"voice_id"`
	ModelID         string        `mapstructure:"model_id"`
	BaseURL         string        `mapstructure:"base_url"`
	OutputDir       string        `mapstructure:"output_dir"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Stability       float64       `mapstructure:"stability"`
	SimilarityBoost float64       `mapstructure:"similarity_boost"`
	Style           float64       `mapstructure:"style"`
	SpeakerBoost    bool          `mapstructure:"speaker_boost"`
}

// GeminiConfig contains generative text settings
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// GeoIPConfig contains IP geolocation settings
type GeoIPConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	DefaultCity       string        `mapstructure:"default_city"`
	DefaultRegion     string        `mapstructure:"default_region"`
	DefaultCountry    string        `mapstructure:"default_country"`
	DefaultCode       string        `mapstructure:"default_code"`
}

// AnnouncerConfig contains the announcement scheduling thresholds.
// All values are independently tunable; the testing flag swaps in a
// profile with wide windows and no cooldown so short runs are observable.
type AnnouncerConfig struct {
	OutroMinSeconds      int           `mapstructure:"outro_min_seconds"`
	OutroMaxSeconds      int           `mapstructure:"outro_max_seconds"`
	IntroMinSeconds      int           `mapstructure:"intro_min_seconds"`
	IntroMaxSeconds      int           `mapstructure:"intro_max_seconds"`
	IntroGenres          []string      `mapstructure:"intro_genres"`
	RandomChance         float64       `mapstructure:"random_chance"`
	CooldownPassRate     float64       `mapstructure:"cooldown_pass_rate"`
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	TargetFireInterval   time.Duration `mapstructure:"target_fire_interval"`
	ListenerAnnounceRate float64       `mapstructure:"listener_announce_rate"`
	Testing              bool          `mapstructure:"testing"`
}

// NewsConfig contains the news summarization proxy settings
type NewsConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CacheConfig contains in-memory cache settings
type CacheConfig struct {
	MaxSizeMB int64 `mapstructure:"max_size_mb"`
}
