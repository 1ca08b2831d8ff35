package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Location is one resolved geography. Degraded marks a fallback result
// produced because the lookup provider was unreachable; Local marks a
// private/loopback address that was never sent to the provider.
type Location struct {
	IP          string `json:"ip,omitempty"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Local       bool   `json:"is_local,omitempty"`
	Degraded    bool   `json:"degraded,omitempty"`
}

// Config holds configuration for the resolver
type Config struct {
	// BaseURL of the ipapi.co-compatible lookup service
	BaseURL string // Default: https://ipapi.co

	Timeout time.Duration // Default: 5s

	// RequestsPerMinute throttles lookups to stay inside the provider's
	// free-tier quota. Default: 30
	RequestsPerMinute int

	// Default is returned for private addresses and on provider
	// failure. Geolocation is advisory; the resolver never fails the
	// caller.
	Default Location
}

// Resolver maps IP addresses to geography.
type Resolver struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
}

// ipapiResponse is the provider wire format.
type ipapiResponse struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
}

// NewResolver creates a new geolocation resolver
func NewResolver(cfg Config) *Resolver {
	// Apply defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://ipapi.co"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.Default == (Location{}) {
		cfg.Default = Location{
			City:        "London",
			Region:      "England",
			Country:     "United Kingdom",
			CountryCode: "GB",
		}
	}

	return &Resolver{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			5,
		),
		config: cfg,
	}
}

// Resolve maps an IP to a location. Private and loopback addresses
// short-circuit to the default locale without a network call; provider
// failures degrade to a default-country fallback instead of erroring,
// because a missing city must never stall the announcement pipeline.
func (r *Resolver) Resolve(ctx context.Context, ip string) Location {
	if isLocalAddress(ip) {
		loc := r.config.Default
		loc.IP = ip
		loc.Local = true
		return loc
	}

	loc, err := r.lookup(ctx, ip)
	if err != nil {
		log.Printf("[DEBUG] Geolocation lookup failed for %s: %v", ip, err)
		fallback := r.config.Default
		fallback.IP = ip
		fallback.City = fallback.Country // city unknown, fall back to country-level
		fallback.Degraded = true
		return fallback
	}

	return loc
}

// lookup performs the provider request.
func (r *Resolver) lookup(ctx context.Context, ip string) (Location, error) {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return Location{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	url := fmt.Sprintf("%s/%s/json/", r.config.BaseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("decode response: %w", err)
	}

	return Location{
		IP:          body.IP,
		City:        body.City,
		Region:      body.Region,
		Country:     body.CountryName,
		CountryCode: body.CountryCode,
	}, nil
}

// isLocalAddress reports whether ip carries no real geography: private
// ranges, loopback, link-local, or anything unparseable.
func isLocalAddress(ip string) bool {
	if ip == "" || ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}
