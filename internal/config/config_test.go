package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

// writeConfig writes content to a temp YAML file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stego.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "warn" {
		t.Errorf("expected log.level=warn, got %s", cfg.Log.Level)
	}
	if cfg.Limits.MaxImageBytes != 16*1024*1024 {
		t.Errorf("expected max_image_bytes=16MiB, got %d", cfg.Limits.MaxImageBytes)
	}
	if cfg.Encode.DefaultChannel != "R" {
		t.Errorf("expected default_channel=R, got %s", cfg.Encode.DefaultChannel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limits.MaxPixels != Default().Limits.MaxPixels {
		t.Errorf("expected default max_pixels, got %d", cfg.Limits.MaxPixels)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `
log:
  level: debug
limits:
  max_image_bytes: 1048576
encode:
  default_channel: all
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log.level=debug, got %s", cfg.Log.Level)
	}
	if cfg.Limits.MaxImageBytes != 1048576 {
		t.Errorf("expected max_image_bytes=1048576, got %d", cfg.Limits.MaxImageBytes)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Limits.MaxPixels != 40_000_000 {
		t.Errorf("expected default max_pixels, got %d", cfg.Limits.MaxPixels)
	}

	ch, err := cfg.DefaultChannel()
	if err != nil {
		t.Fatalf("DefaultChannel failed: %v", err)
	}
	if ch != steg.All {
		t.Errorf("expected ALL, got %v", ch)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := writeConfig(t, "bitplane:\n  max_scale: 4\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BitPlane.MaxScale != 4 {
		t.Errorf("expected max_scale=4, got %d", cfg.BitPlane.MaxScale)
	}
}

func TestLoad_LogLevelOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: error\n")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		t.Fatalf("SlogLevel failed: %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("expected debug level from environment, got %v", level)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("empty file should keep defaults, got level %s", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown field", "limits:\n  max_bytes: 5\n", "max_bytes"},
		{"bad yaml", "log: [\n", "failed to parse config"},
		{"bad channel", "encode:\n  default_channel: purple\n", "encode.default_channel"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"negative limit", "limits:\n  max_pixels: -1\n", "limits.max_pixels"},
		{"zero scale", "bitplane:\n  max_scale: 0\n", "bitplane.max_scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/stego.yaml"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Limits.MaxImageBytes = 0
	cfg.BitPlane.MaxScale = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	msg := err.Error()
	if !strings.Contains(msg, "max_image_bytes") || !strings.Contains(msg, "max_scale") {
		t.Errorf("expected both errors, got %q", msg)
	}
}
