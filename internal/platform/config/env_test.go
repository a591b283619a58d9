package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Locale   string `env:"TIMELABEL_TEST_LOCALE" envDefault:"en-US"`
	MaxNodes int    `env:"TIMELABEL_TEST_MAX_NODES" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("expected default locale en-US, got %q", cfg.Locale)
	}
	if cfg.MaxNodes != 123 {
		t.Fatalf("expected default max nodes 123, got %d", cfg.MaxNodes)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TIMELABEL_TEST_MAX_NODES", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
