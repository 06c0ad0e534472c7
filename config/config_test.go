package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moyu-x/duplicate-finder/internal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != internal.DefaultDatabasePath {
		t.Errorf("Expected database path %s, got %s", internal.DefaultDatabasePath, cfg.Database.Path)
	}
	if cfg.Scanner.Heartbeat != internal.DefaultHeartbeatInterval {
		t.Errorf("Expected heartbeat %v, got %v", internal.DefaultHeartbeatInterval, cfg.Scanner.Heartbeat)
	}
	if cfg.Performance.Workers != internal.DefaultWorkers {
		t.Errorf("Expected %d workers, got %d", internal.DefaultWorkers, cfg.Performance.Workers)
	}
	if cfg.Buffer.Ceiling != internal.DefaultBufferCeiling {
		t.Errorf("Expected ceiling %d, got %d", internal.DefaultBufferCeiling, cfg.Buffer.Ceiling)
	}
	if cfg.Buffer.Floor != internal.DefaultBufferFloor {
		t.Errorf("Expected floor %d, got %d", internal.DefaultBufferFloor, cfg.Buffer.Floor)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/reports.db
scanner:
  heartbeat: 2s
performance:
  workers: 4
buffer:
  ceiling: 1048576
  floor: 8192
logging:
  level: debug
  file: /tmp/scan.log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/reports.db" {
		t.Errorf("Expected /tmp/reports.db, got %s", cfg.Database.Path)
	}
	if cfg.Scanner.Heartbeat != 2*time.Second {
		t.Errorf("Expected 2s heartbeat, got %v", cfg.Scanner.Heartbeat)
	}
	if cfg.Performance.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Performance.Workers)
	}
	if cfg.Buffer.Ceiling != 1048576 || cfg.Buffer.Floor != 8192 {
		t.Errorf("Unexpected buffer bounds: %d/%d", cfg.Buffer.Ceiling, cfg.Buffer.Floor)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/scan.log" {
		t.Errorf("Unexpected logging config: %+v", cfg.Logging)
	}
	if Get().Performance.Workers != 4 {
		t.Error("Expected Get() to return the loaded config")
	}
}

func TestLoad_ExplicitFileDoesNotLeak(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "performance:\n  workers: 7\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Performance.Workers != 7 {
		t.Fatalf("Expected 7 workers, got %d", cfg.Performance.Workers)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove config: %v", err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Performance.Workers != internal.DefaultWorkers {
		t.Errorf("Expected default %d workers after removing the file, got %d", internal.DefaultWorkers, cfg.Performance.Workers)
	}
}

func TestLoad_InvalidBuffer(t *testing.T) {
	path := writeConfig(t, "buffer:\n  ceiling: 1024\n  floor: 4096\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected error when ceiling is below floor")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "buffer: [\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	var c Config
	c.Buffer.Ceiling = 4096
	c.Buffer.Floor = 4096
	c.Performance.Workers = 1
	c.Scanner.Heartbeat = time.Second

	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	c.Performance.Workers = 0
	if err := c.Validate(); err == nil {
		t.Error("Expected error for zero workers")
	}

	c.Performance.Workers = 1
	c.Scanner.Heartbeat = 0
	if err := c.Validate(); err == nil {
		t.Error("Expected error for zero heartbeat")
	}
}
