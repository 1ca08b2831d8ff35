package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load()
	})

	return initErr
}

// load performs the actual configuration setup. Split out of Init so
// tests can re-run it after viper.Reset().
func load() error {
	// Load .env first so credentials land in the environment before
	// viper reads it. Missing file is fine.
	_ = godotenv.Load()

	// Set default values
	setDefaults()

	// Set up environment variable reading for overrides
	viper.SetEnvPrefix("RADIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Load config from fixed location (cleaned for safety)
	configPath := filepath.Clean("./config/settings.yaml")
	viper.SetConfigFile(configPath)

	// Try to read the config file
	if err := viper.ReadInConfig(); err != nil {
		// If the config file doesn't exist, just use defaults and env vars
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	// Validate the configuration
	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float64 config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		// Database is optional; the announcement history endpoint is
		// simply disabled without it.
		fmt.Println("Warning: No database path configured")
	}

	// Validate API keys aren't using placeholder values
	if err := validateAPIKeys(); err != nil {
		return err
	}

	// Auto-correct probabilities outside [0,1]
	if p := viper.GetFloat64("announcer.random_chance"); p < 0 || p > 1 {
		viper.Set("announcer.random_chance", 0.05)
	}
	if p := viper.GetFloat64("announcer.cooldown_pass_rate"); p < 0 || p > 1 {
		viper.Set("announcer.cooldown_pass_rate", 0)
	}
	if p := viper.GetFloat64("announcer.listener_announce_rate"); p < 0 || p > 1 {
		viper.Set("announcer.listener_announce_rate", 0.1)
	}

	return nil
}

// validateAPIKeys validates that API keys are not using placeholder values
func validateAPIKeys() error {
	// Check for production environment
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	// List of placeholder values that shouldn't be used
	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
	}

	keys := map[string]string{
		"ElevenLabs API key": viper.GetString("voice.api_key"),
		"AzuraCast API key":  viper.GetString("azuracast.api_key"),
		"Gemini API key":     viper.GetString("gemini.api_key"),
		"Perplexity API key": viper.GetString("news.api_key"),
	}

	for name, value := range keys {
		for _, placeholder := range placeholders {
			if value == placeholder {
				if isProduction {
					return fmt.Errorf("invalid %s: cannot use placeholder values in production", name)
				}
				fmt.Printf("Warning: %s is using a placeholder value\n", name)
				break
			}
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Announcer.RandomChance < 0 || c.Announcer.RandomChance > 1 {
		c.Announcer.RandomChance = 0.05
	}

	if c.Announcer.ListenerAnnounceRate < 0 || c.Announcer.ListenerAnnounceRate > 1 {
		c.Announcer.ListenerAnnounceRate = 0.1
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/radio.db")
	viper.SetDefault("database.verbose", false)

	// Station defaults
	viper.SetDefault("station.name", "Urban All-in-One Radio")
	viper.SetDefault("station.tagline", "UK urban music, non-stop heat")
	viper.SetDefault("station.timezone", "Europe/London")

	// AzuraCast defaults
	viper.SetDefault("azuracast.station_id", 1)
	viper.SetDefault("azuracast.upload_folder", "ai-dj-live")
	viper.SetDefault("azuracast.timeout", 15*time.Second)

	// Voice synthesis defaults
	viper.SetDefault("voice.base_url", "https://api.elevenlabs.io")
	viper.SetDefault("voice.model_id", "eleven_turbo_v2_5")
	viper.SetDefault("voice.output_dir", "./output/voice")
	viper.SetDefault("voice.timeout", 30*time.Second)
	viper.SetDefault("voice.stability", 0.5)
	viper.SetDefault("voice.similarity_boost", 0.75)
	viper.SetDefault("voice.style", 0.5)
	viper.SetDefault("voice.speaker_boost", true)

	// Gemini defaults
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.temperature", 0.9)

	// GeoIP defaults
	viper.SetDefault("geoip.base_url", "https://ipapi.co")
	viper.SetDefault("geoip.timeout", 5*time.Second)
	viper.SetDefault("geoip.requests_per_minute", 30)
	viper.SetDefault("geoip.default_city", "London")
	viper.SetDefault("geoip.default_region", "England")
	viper.SetDefault("geoip.default_country", "United Kingdom")
	viper.SetDefault("geoip.default_code", "GB")

	// Announcer defaults (production profile)
	viper.SetDefault("announcer.outro_min_seconds", 10)
	viper.SetDefault("announcer.outro_max_seconds", 15)
	viper.SetDefault("announcer.intro_min_seconds", 15)
	viper.SetDefault("announcer.intro_max_seconds", 30)
	viper.SetDefault("announcer.intro_genres", []string{"hip hop", "rap", "urban"})
	viper.SetDefault("announcer.random_chance", 0.05)
	// cooldown_pass_rate 0 means "derive from poll_interval / target_fire_interval"
	viper.SetDefault("announcer.cooldown_pass_rate", 0.0)
	viper.SetDefault("announcer.poll_interval", 5*time.Second)
	viper.SetDefault("announcer.target_fire_interval", 3*time.Minute)
	viper.SetDefault("announcer.listener_announce_rate", 0.1)
	viper.SetDefault("announcer.testing", false)

	// News defaults
	viper.SetDefault("news.base_url", "https://api.perplexity.ai")
	viper.SetDefault("news.model", "sonar")
	viper.SetDefault("news.cache_ttl", 15*time.Minute)
	viper.SetDefault("news.timeout", 20*time.Second)

	// Cache defaults
	viper.SetDefault("cache.max_size_mb", 64)
}
