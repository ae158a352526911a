package configparser

import (
	"testing"
	"time"
)

type testConfig struct {
	Nested struct {
		Host    string        `env:"PARSETEST_HOST" default:"localhost"`
		Port    int           `env:"PARSETEST_PORT" default:"5432"`
		Enabled bool          `env:"PARSETEST_ENABLED" default:"false"`
		Timeout time.Duration `env:"PARSETEST_TIMEOUT" default:"2s"`
	}
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Nested.Host != "localhost" || cfg.Nested.Port != 5432 {
		t.Fatalf("defaults not applied: %+v", cfg.Nested)
	}
	if cfg.Nested.Enabled {
		t.Fatal("bool default not applied")
	}
	if cfg.Nested.Timeout != 2*time.Second {
		t.Fatalf("duration default not applied: %s", cfg.Nested.Timeout)
	}
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("PARSETEST_HOST", "db.internal")
	t.Setenv("PARSETEST_PORT", "6432")
	t.Setenv("PARSETEST_ENABLED", "true")
	t.Setenv("PARSETEST_TIMEOUT", "150ms")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Nested.Host != "db.internal" || cfg.Nested.Port != 6432 {
		t.Fatalf("env not applied: %+v", cfg.Nested)
	}
	if !cfg.Nested.Enabled {
		t.Fatal("bool env not applied")
	}
	if cfg.Nested.Timeout != 150*time.Millisecond {
		t.Fatalf("duration env not applied: %s", cfg.Nested.Timeout)
	}
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(cfg); err == nil {
		t.Fatal("expected error for non-pointer config")
	}
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("PARSETEST_PORT", "not-a-number")

	var cfg testConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Fatal("expected error for invalid integer")
	}
}
