package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"smtp": map[string]any{
			"host": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SMTP_HOST", want: "smtp.host"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SecretKey.Access = "a"
	cfg.SecretKey.Refresh = "r"

	if err := cfg.applyDefaults(); err != nil {
		t.Fatalf("applyDefaults() error = %v", err)
	}

	if cfg.Auth.BcryptCost != MinBcryptCost {
		t.Fatalf("BcryptCost = %d, want %d", cfg.Auth.BcryptCost, MinBcryptCost)
	}
	if cfg.OTP.Length != 6 || cfg.OTP.TTL != defaultOTPTTL {
		t.Fatalf("OTP defaults = %+v", cfg.OTP)
	}
	if !cfg.Booking.AllowDirectCompletion || cfg.Booking.EnforceTerminalStates {
		t.Fatalf("Booking defaults = %+v", cfg.Booking)
	}
	if cfg.Auth.RefreshTokenTTL != defaultRefreshTokenTTL {
		t.Fatalf("RefreshTokenTTL = %s", cfg.Auth.RefreshTokenTTL)
	}
}

func TestApplyDefaults_RejectsWeakBcryptCost(t *testing.T) {
	cfg := &Config{Auth: &AuthConfig{BcryptCost: 10}}
	cfg.SecretKey.Access = "a"
	cfg.SecretKey.Refresh = "r"

	if err := cfg.applyDefaults(); err == nil {
		t.Fatal("applyDefaults() expected error for bcrypt cost below minimum")
	}
}

func TestApplyDefaults_RequiresSecrets(t *testing.T) {
	cfg := &Config{}

	if err := cfg.applyDefaults(); err == nil {
		t.Fatal("applyDefaults() expected error when secrets are missing")
	}
}
