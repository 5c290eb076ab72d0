package config

import (
	"testing"
)

func TestExpandEnvUsesEnvironmentValue(t *testing.T) {
	t.Setenv("PAGESMITH_TEST_PORT", "9999")
	got := expandEnv("port: ${PAGESMITH_TEST_PORT:8080}")
	if got != "port: 9999" {
		t.Fatalf("expected env value, got %q", got)
	}
}

func TestExpandEnvFallsBackToDefault(t *testing.T) {
	got := expandEnv("host: ${PAGESMITH_TEST_UNSET_HOST:localhost}")
	if got != "host: localhost" {
		t.Fatalf("expected default value, got %q", got)
	}
}

func TestExpandEnvKeepsUnknownWithoutDefault(t *testing.T) {
	got := expandEnv("token: ${PAGESMITH_TEST_UNSET_TOKEN}")
	if got != "token: ${PAGESMITH_TEST_UNSET_TOKEN}" {
		t.Fatalf("expected placeholder kept, got %q", got)
	}
}

func TestExpandEnvEmptyDefault(t *testing.T) {
	got := expandEnv("password: ${PAGESMITH_TEST_UNSET_PASSWORD:}")
	if got != "password: " {
		t.Fatalf("expected empty default, got %q", got)
	}
}
