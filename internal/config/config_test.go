package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.HTTPPort != "8081" {
		t.Errorf("HTTPPort = %q, want 8081", cfg.HTTPPort)
	}
	if cfg.JWTIssuer != "campus-portal" {
		t.Errorf("JWTIssuer = %q", cfg.JWTIssuer)
	}
	if cfg.QueueBackend != "memory" {
		t.Errorf("QueueBackend = %q, want memory", cfg.QueueBackend)
	}
	if cfg.MirrorColl != "students" {
		t.Errorf("MirrorColl = %q, want students", cfg.MirrorColl)
	}
	if cfg.SimulatedDelay != 800*time.Millisecond {
		t.Errorf("SimulatedDelay = %v, want 800ms", cfg.SimulatedDelay)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", cfg.AccessTTL)
	}
	if cfg.AuthSkip {
		t.Error("AuthSkip defaults to true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SIMULATED_DELAY", "0s")
	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg := Load()
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.SimulatedDelay != 0 {
		t.Errorf("SimulatedDelay = %v, want 0", cfg.SimulatedDelay)
	}
	if !cfg.AuthSkip {
		t.Error("AUTH_SKIP=true not honored")
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("RateLimitPerMin = %d, want 30", cfg.RateLimitPerMin)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("SIMULATED_DELAY", "soon")
	t.Setenv("AUTH_SKIP", "maybe")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	if cfg.SimulatedDelay != 800*time.Millisecond {
		t.Errorf("SimulatedDelay = %v, want fallback 800ms", cfg.SimulatedDelay)
	}
	if cfg.AuthSkip {
		t.Error("unparseable AUTH_SKIP did not fall back to false")
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("RateLimitPerMin = %d, want fallback 120", cfg.RateLimitPerMin)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     App
		wantErr string
	}{
		{"skip mode needs nothing", App{AuthSkip: true}, ""},
		{"fully configured", App{AuthBaseURL: "https://auth.example.com", AuthAPIKey: "k"}, ""},
		{"missing both", App{}, "AUTH_BASE_URL, AUTH_API_KEY"},
		{"missing key only", App{AuthBaseURL: "https://auth.example.com"}, "AUTH_API_KEY"},
		{"missing url only", App{AuthAPIKey: "k"}, "AUTH_BASE_URL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}
