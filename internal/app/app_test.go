package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func setupConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: error\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func setupFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/data/A": "aaaaaaaaaa",
		"/data/B": "aaaaaaaaaa",
		"/data/C": "bbbbbbbbbb",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	return fs
}

func TestRunScan(t *testing.T) {
	var out bytes.Buffer
	result, err := RunScan(&ScanOptions{
		Roots:      []string{"/data"},
		ConfigFile: setupConfig(t),
		Out:        &out,
		Fs:         setupFs(t),
	})
	if err != nil {
		t.Fatalf("RunScan() error = %v", err)
	}

	if len(result.DuplicateGroups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(result.DuplicateGroups))
	}
	if result.TotalReclaimableBytes != 10 {
		t.Errorf("Expected 10 reclaimable bytes, got %d", result.TotalReclaimableBytes)
	}
	if !strings.Contains(out.String(), "/data/A") || !strings.Contains(out.String(), "可释放 10 字节") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}
	if strings.Contains(out.String(), "报告已保存") {
		t.Error("Expected report not to be saved without --db")
	}
}

func TestRunScan_SaveAndHistory(t *testing.T) {
	cfgPath := setupConfig(t)
	dbPath := filepath.Join(t.TempDir(), "reports.db")

	var out bytes.Buffer
	result, err := RunScan(&ScanOptions{
		Roots:      []string{"/data"},
		ConfigFile: cfgPath,
		DBPath:     dbPath,
		Workers:    2,
		Out:        &out,
		Fs:         setupFs(t),
	})
	if err != nil {
		t.Fatalf("RunScan() error = %v", err)
	}
	if !strings.Contains(out.String(), result.ID) {
		t.Error("Expected saved scan id in output")
	}

	var list bytes.Buffer
	if err := RunHistory(&HistoryOptions{ConfigFile: cfgPath, DBPath: dbPath, Out: &list}); err != nil {
		t.Fatalf("RunHistory() error = %v", err)
	}
	if !strings.Contains(list.String(), result.ID) || !strings.Contains(list.String(), "/data") {
		t.Errorf("Unexpected history:\n%s", list.String())
	}

	var show bytes.Buffer
	if err := RunHistory(&HistoryOptions{ConfigFile: cfgPath, DBPath: dbPath, ScanID: result.ID, Out: &show}); err != nil {
		t.Fatalf("RunHistory() error = %v", err)
	}
	if !strings.Contains(show.String(), "/data/B") {
		t.Errorf("Expected stored report to list /data/B:\n%s", show.String())
	}
}

func TestRunHistory_Empty(t *testing.T) {
	var out bytes.Buffer
	err := RunHistory(&HistoryOptions{
		ConfigFile: setupConfig(t),
		DBPath:     filepath.Join(t.TempDir(), "reports.db"),
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("RunHistory() error = %v", err)
	}
	if !strings.Contains(out.String(), "没有保存的扫描记录") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestRunHistory_UnknownID(t *testing.T) {
	err := RunHistory(&HistoryOptions{
		ConfigFile: setupConfig(t),
		DBPath:     filepath.Join(t.TempDir(), "reports.db"),
		ScanID:     "missing",
		Out:        &bytes.Buffer{},
	})
	if err == nil {
		t.Error("Expected error for unknown scan id")
	}
}

func TestRunScan_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("buffer:\n  floor: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := RunScan(&ScanOptions{Roots: []string{"/data"}, ConfigFile: path, Fs: afero.NewMemMapFs()}); err == nil {
		t.Error("Expected error for invalid config")
	}
}
