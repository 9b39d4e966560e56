package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing database url",
			cfg:     Config{JWTSecret: "secret"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "no token validation configured",
			cfg:     Config{DatabaseURL: "sqlite://test.db"},
			wantErr: "either AUTH0_DOMAIN or JWT_SECRET is required",
		},
		{
			name:    "auth0 without audience",
			cfg:     Config{DatabaseURL: "sqlite://test.db", Auth0Domain: "tenant.auth0.com"},
			wantErr: "AUTH0_AUDIENCE is required when AUTH0_DOMAIN is set",
		},
		{
			name:    "node id out of range",
			cfg:     Config{DatabaseURL: "sqlite://test.db", JWTSecret: "secret", NodeID: 4096},
			wantErr: "NODE_ID must be between 0 and 1023, got 4096",
		},
		{
			name: "shared secret configuration",
			cfg:  Config{DatabaseURL: "sqlite://test.db", JWTSecret: "secret"},
		},
		{
			name: "auth0 configuration",
			cfg:  Config{DatabaseURL: "postgres://x", Auth0Domain: "tenant.auth0.com", Auth0Audience: "https://api"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://crewdesk.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000 ,")
	t.Setenv("NODE_ID", "7")
	t.Setenv("AWS_S3_BUCKET", "")

	original := GetConfig()
	defer SetConfig(original)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "sqlite://crewdesk.db", cfg.DatabaseURL)
	assert.Equal(t, "job-photos", cfg.AWSS3Bucket, "bucket should default to job-photos")
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(7), cfg.NodeID)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.UsesAuth0())
	assert.False(t, cfg.UsesS3())
	assert.Same(t, cfg, GetConfig(), "Load should register the config globally")
}

func TestLoadFailsValidation(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestGetEnvIntFallsBack(t *testing.T) {
	t.Setenv("NODE_ID", "not-a-number")
	assert.Equal(t, int64(3), getEnvInt("NODE_ID", 3))
}
