package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetForTest() {
	CloseAll()
	logsDir = ""
	settings = Settings{}
}

func TestCategoriesWriteFilesInDebugMode(t *testing.T) {
	t.Cleanup(resetForTest)
	dotDir := t.TempDir()

	err := Initialize(dotDir, Settings{DebugMode: true, Level: "debug"})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	API("fetched %d fields", 4)
	DashboardError("stat refresh failed: %v", os.ErrDeadlineExceeded)
	CloseAll()

	date := time.Now().Format("2006-01-02")
	apiLog := filepath.Join(dotDir, "logs", date+"_api.log")
	data, err := os.ReadFile(apiLog)
	if err != nil {
		t.Fatalf("expected api log file: %v", err)
	}
	if !strings.Contains(string(data), "fetched 4 fields") {
		t.Errorf("api log missing entry: %s", data)
	}

	dashLog := filepath.Join(dotDir, "logs", date+"_dashboard.log")
	if _, err := os.Stat(dashLog); err != nil {
		t.Errorf("expected dashboard log file: %v", err)
	}
}

func TestProductionModeIsSilent(t *testing.T) {
	t.Cleanup(resetForTest)
	dotDir := t.TempDir()

	if err := Initialize(dotDir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Boot("should not be written")
	Session("neither should this")
	CloseAll()

	if _, err := os.Stat(filepath.Join(dotDir, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not exist in production mode")
	}
}

func TestCategoryFilter(t *testing.T) {
	t.Cleanup(resetForTest)
	dotDir := t.TempDir()

	err := Initialize(dotDir, Settings{
		DebugMode:  true,
		Categories: map[string]bool{"upload": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryUpload) {
		t.Error("upload category should be disabled")
	}
	if !IsCategoryEnabled(CategoryAPI) {
		t.Error("unlisted categories should default to enabled")
	}

	Upload("suppressed")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	if _, err := os.Stat(filepath.Join(dotDir, "logs", date+"_upload.log")); !os.IsNotExist(err) {
		t.Error("disabled category should not create a log file")
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Cleanup(resetForTest)
	dotDir := t.TempDir()

	if err := Initialize(dotDir, Settings{DebugMode: true, Level: "error"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	l := Get(CategoryAPI)
	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("dropped")
	l.Error("kept")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dotDir, "logs", date+"_api.log"))
	if err != nil {
		t.Fatalf("expected api log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "dropped") {
		t.Errorf("lower-level entries leaked: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("error entry missing: %s", out)
	}
}
