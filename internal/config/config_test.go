package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:          8000,
		MaxAmount:     1e9,
		MaxRate:       100,
		MaxGrowthRate: 1,
		MaxDuration:   10,
		MaxLoanTerm:   30,
		CacheBackend:  CacheMemory,
		CacheSize:     16,
		CacheTTL:      time.Minute,
		RedisAddr:     "localhost:6379",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid memory cache",
			modify:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "cache disabled ignores ttl",
			modify:  func(c *Config) { c.CacheBackend = CacheNone; c.CacheTTL = 0 },
			wantErr: false,
		},
		{
			name:    "valid redis cache",
			modify:  func(c *Config) { c.CacheBackend = CacheRedis },
			wantErr: false,
		},
		{
			name:        "port out of range",
			modify:      func(c *Config) { c.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "zero loan term limit",
			modify:      func(c *Config) { c.MaxLoanTerm = 0 },
			wantErr:     true,
			errorString: "invalid max loan term 0: must be at least 1",
		},
		{
			name:        "unknown cache backend",
			modify:      func(c *Config) { c.CacheBackend = "memcached" },
			wantErr:     true,
			errorString: "invalid cache backend 'memcached': must be one of [none memory redis]",
		},
		{
			name:        "redis without address",
			modify:      func(c *Config) { c.CacheBackend = CacheRedis; c.RedisAddr = "" },
			wantErr:     true,
			errorString: "redis address cannot be empty when using redis cache backend",
		},
		{
			name:        "empty memory cache",
			modify:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0: must be at least 1",
		},
		{
			name: "multiple problems reported together",
			modify: func(c *Config) {
				c.Port = 0
				c.MaxRate = 0
			},
			wantErr:     true,
			errorString: "invalid max rate 0: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_LOAN_TERM", "25")
	t.Setenv("CACHE_BACKEND", "NONE")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("MAX_RATE", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Addr())
	}
	if cfg.MaxLoanTerm != 25 {
		t.Errorf("expected max loan term 25, got %d", cfg.MaxLoanTerm)
	}
	if cfg.CacheBackend != CacheNone {
		t.Errorf("expected cache backend %q, got %q", CacheNone, cfg.CacheBackend)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("expected cache ttl 90s, got %v", cfg.CacheTTL)
	}
	if cfg.MaxRate != 100 {
		t.Errorf("expected unparsable MAX_RATE to fall back to 100, got %v", cfg.MaxRate)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "disk")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown cache backend")
	}
}
