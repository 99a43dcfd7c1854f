package envconf

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoad_BasicTypes(t *testing.T) {
	type cfg struct {
		Name    string        `env:"TEST_NAME"`
		Port    uint16        `env:"TEST_PORT"`
		Debug   bool          `env:"TEST_DEBUG"`
		Retries int           `env:"TEST_RETRIES"`
		Wait    time.Duration `env:"TEST_WAIT"`
		Level   slog.Level    `env:"TEST_LEVEL"`
	}

	t.Setenv("TEST_NAME", "wallet")
	t.Setenv("TEST_PORT", "8080")
	t.Setenv("TEST_DEBUG", "true")
	t.Setenv("TEST_RETRIES", "3")
	t.Setenv("TEST_WAIT", "1m30s")
	t.Setenv("TEST_LEVEL", "DEBUG")

	c := new(cfg)
	if err := Load(c); err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Name != "wallet" {
		t.Errorf("Name: got %q", c.Name)
	}
	if c.Port != 8080 {
		t.Errorf("Port: got %d", c.Port)
	}
	if !c.Debug {
		t.Error("Debug: got false")
	}
	if c.Retries != 3 {
		t.Errorf("Retries: got %d", c.Retries)
	}
	if c.Wait != 90*time.Second {
		t.Errorf("Wait: got %v", c.Wait)
	}
	if c.Level != slog.LevelDebug {
		t.Errorf("Level: got %v", c.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	type cfg struct {
		Port uint16        `env:"TEST_DEF_PORT" default:"8080"`
		Wait time.Duration `env:"TEST_DEF_WAIT" default:"10s"`
	}

	t.Run("default_used_when_unset", func(t *testing.T) {
		c := new(cfg)
		if err := Load(c); err != nil {
			t.Fatalf("load: %v", err)
		}
		if c.Port != 8080 || c.Wait != 10*time.Second {
			t.Errorf("defaults not applied: %+v", c)
		}
	})

	t.Run("env_overrides_default", func(t *testing.T) {
		t.Setenv("TEST_DEF_PORT", "9000")

		c := new(cfg)
		if err := Load(c); err != nil {
			t.Fatalf("load: %v", err)
		}
		if c.Port != 9000 {
			t.Errorf("Port: got %d", c.Port)
		}
	})
}

func TestLoad_MissingRequired(t *testing.T) {
	type cfg struct {
		DSN string `env:"TEST_MISSING_DSN"`
	}

	err := Load(new(cfg))
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got: %v", err)
	}
}

func TestLoad_NestedStruct(t *testing.T) {
	type inner struct {
		DSN string `env:"TEST_NESTED_DSN"`
	}
	type cfg struct {
		Inner inner
		Ptr   *inner
	}

	t.Setenv("TEST_NESTED_DSN", "postgres://x")

	c := new(cfg)
	if err := Load(c); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Inner.DSN != "postgres://x" {
		t.Errorf("Inner.DSN: got %q", c.Inner.DSN)
	}
	if c.Ptr == nil || c.Ptr.DSN != "postgres://x" {
		t.Errorf("Ptr not populated: %+v", c.Ptr)
	}
}

func TestLoad_ParseFailure(t *testing.T) {
	type cfg struct {
		Port uint16 `env:"TEST_BAD_PORT"`
	}

	t.Setenv("TEST_BAD_PORT", "not-a-number")

	if err := Load(new(cfg)); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestLoad_RejectsNonStruct(t *testing.T) {
	if err := Load(nil); err == nil {
		t.Fatal("expected error for nil")
	}

	var s string
	if err := Load(&s); err == nil {
		t.Fatal("expected error for non-struct")
	}
}
