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
		"jwt": map[string]any{
			"refreshExpiresIn": 1440,
		},
		"worker": map[string]any{
			"verifyPushAuth": false,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "JWT_REFRESHEXPIRESIN", want: "jwt.refreshExpiresIn"},
		{envKey: "WORKER_VERIFYPUSHAUTH", want: "worker.verifyPushAuth"},
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

func TestEnvKeyToPath_LegacyNames(t *testing.T) {
	existing := map[string]any{
		"jwt": map[string]any{"secret": ""},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "JWT_SECRET", want: "jwt.secret"},
		{envKey: "JWT_EXPIRES_IN", want: "jwt.expiresIn"},
		{envKey: "REFRESH_TOKEN_EXPIRES_IN", want: "jwt.refreshExpiresIn"},
		{envKey: "PORT", want: "http.port"},
		{envKey: "DATABASE_URL", want: "database.url"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := envKeyToPath(tt.envKey, existing); got != tt.want {
				t.Fatalf("envKeyToPath(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
