package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Envs(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "cli"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env)
			if err != nil {
				t.Fatalf("NewLogger(%q) error: %v", env, err)
			}
			if l == nil {
				t.Fatal("nil logger")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("cli", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled by override")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_CLIDefaultsToWarn(t *testing.T) {
	l, err := NewLogger("cli")
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("cli logger should suppress info")
	}
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		env         string
		encoding    string
		level       zapcore.Level
		wantService bool
		wantTime    bool
	}{
		{"prod", "json", zapcore.InfoLevel, true, true},
		{"local", "console", zapcore.DebugLevel, false, true},
		{"docker", "console", zapcore.DebugLevel, false, true},
		{"cli", "console", zapcore.WarnLevel, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			cfg, err := configFor(tc.env)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Encoding != tc.encoding {
				t.Errorf("encoding = %q, want %q", cfg.Encoding, tc.encoding)
			}
			if got := cfg.Level.Level(); got != tc.level {
				t.Errorf("level = %v, want %v", got, tc.level)
			}
			if got := cfg.InitialFields["service"] == serviceName; got != tc.wantService {
				t.Errorf("service field present = %v, want %v", got, tc.wantService)
			}
			if got := cfg.EncoderConfig.TimeKey != ""; got != tc.wantTime {
				t.Errorf("time key present = %v, want %v", got, tc.wantTime)
			}
		})
	}
}

func TestConfigFor_ProdCarriesVersion(t *testing.T) {
	cfg, err := configFor("prod")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.InitialFields["version"]; !ok {
		t.Error("prod config missing version field")
	}
}

func TestFromContext_Missing(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() returned nil")
	}
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ctx = With(ctx, zap.String("user_id", "u1"))
	FromContext(ctx).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["user_id"]; got != "u1" {
		t.Errorf("user_id = %v", got)
	}
}
