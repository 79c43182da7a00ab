package config

import "testing"

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("PAK_TEST_KEY", "")
	if got := GetEnv("PAK_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}
	t.Setenv("PAK_TEST_KEY", "  nilai ")
	if got := GetEnv("PAK_TEST_KEY", "fallback"); got != "nilai" {
		t.Fatalf("GetEnv = %q, want nilai", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("PAK_SEED", "false")
	if GetBool("PAK_SEED", true) {
		t.Fatalf("expected false")
	}
	t.Setenv("PAK_SEED", "bukan")
	if !GetBool("PAK_SEED", true) {
		t.Fatalf("invalid value should fall back to default")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "production")
	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Fatalf("AppPort = %q", cfg.AppPort)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
}
