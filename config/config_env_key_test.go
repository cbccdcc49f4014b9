package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"relay": map[string]any{
			"drainInterval": "3s",
		},
		"discord": map[string]any{
			"botToken": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "RELAY_DRAININTERVAL", want: "relay.drainInterval"},
		{envKey: "DISCORD_BOTTOKEN", want: "discord.botToken"},
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

func TestApplyRelayDefaults(t *testing.T) {
	var relay RelayConfig
	applyRelayDefaults(&relay)

	if relay.DrainInterval != 3*time.Second {
		t.Fatalf("DrainInterval = %v, want 3s", relay.DrainInterval)
	}
	if relay.PruneInterval != 5*time.Minute {
		t.Fatalf("PruneInterval = %v, want 5m", relay.PruneInterval)
	}
	if relay.UnconfirmedTTL != 5*time.Minute {
		t.Fatalf("UnconfirmedTTL = %v, want 5m", relay.UnconfirmedTTL)
	}
	if relay.ConfirmedTTL != 24*time.Hour {
		t.Fatalf("ConfirmedTTL = %v, want 24h", relay.ConfirmedTTL)
	}
	if relay.ReconnectMax != 5*time.Minute {
		t.Fatalf("ReconnectMax = %v, want 5m", relay.ReconnectMax)
	}

	configured := RelayConfig{DrainInterval: time.Second}
	applyRelayDefaults(&configured)
	if configured.DrainInterval != time.Second {
		t.Fatalf("configured DrainInterval overridden to %v", configured.DrainInterval)
	}
}
