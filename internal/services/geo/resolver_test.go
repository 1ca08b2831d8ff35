package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/81.2.69.142/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ip": "81.2.69.142",
			"city": "Manchester",
			"region": "England",
			"country_name": "United Kingdom",
			"country_code": "GB"
		}`))
	}))
	defer server.Close()

	resolver := NewResolver(Config{BaseURL: server.URL})

	loc := resolver.Resolve(context.Background(), "81.2.69.142")
	assert.Equal(t, "Manchester", loc.City)
	assert.Equal(t, "England", loc.Region)
	assert.Equal(t, "United Kingdom", loc.Country)
	assert.Equal(t, "GB", loc.CountryCode)
	assert.False(t, loc.Local)
	assert.False(t, loc.Degraded)
}

func TestResolve_LocalAddresses(t *testing.T) {
	// No server: a local address must never hit the network
	resolver := NewResolver(Config{BaseURL: "http://127.0.0.1:1"})

	tests := []struct {
		name string
		ip   string
	}{
		{"loopback v4", "127.0.0.1"},
		{"loopback v6", "::1"},
		{"private 10", "10.1.2.3"},
		{"private 172", "172.16.0.9"},
		{"private 192", "192.168.1.50"},
		{"link local", "169.254.10.10"},
		{"unspecified", "0.0.0.0"},
		{"empty", ""},
		{"localhost literal", "localhost"},
		{"garbage", "not-an-ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := resolver.Resolve(context.Background(), tt.ip)

			assert.True(t, loc.Local)
			assert.False(t, loc.Degraded)
			assert.Equal(t, "London", loc.City)
			assert.Equal(t, "England", loc.Region)
			assert.Equal(t, "United Kingdom", loc.Country)
			assert.Equal(t, "GB", loc.CountryCode)
		})
	}
}

func TestResolve_ProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	resolver := NewResolver(Config{BaseURL: server.URL})

	loc := resolver.Resolve(context.Background(), "81.2.69.142")
	assert.True(t, loc.Degraded)
	assert.False(t, loc.Local)
	// City degrades to country-level
	assert.Equal(t, "United Kingdom", loc.City)
	assert.Equal(t, "GB", loc.CountryCode)
}

func TestResolve_ProviderUnreachable(t *testing.T) {
	resolver := NewResolver(Config{BaseURL: "http://127.0.0.1:1"})

	loc := resolver.Resolve(context.Background(), "81.2.69.142")
	assert.True(t, loc.Degraded)
	assert.Equal(t, "United Kingdom", loc.Country)
}

func TestNewResolver_CustomDefault(t *testing.T) {
	resolver := NewResolver(Config{
		Default: Location{City: "Berlin", Region: "Berlin", Country: "Germany", CountryCode: "DE"},
	})

	loc := resolver.Resolve(context.Background(), "192.168.0.1")
	assert.Equal(t, "Berlin", loc.City)
	assert.Equal(t, "DE", loc.CountryCode)
}
