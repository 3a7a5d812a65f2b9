package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetState() {
	CloseAll()
	logsDir = ""
	debugMode = false
	logLevel = LevelInfo
}

func TestDebugModeCreatesCategoryFiles(t *testing.T) {
	defer resetState()
	tempDir := t.TempDir()

	if err := Initialize(tempDir, true, "debug"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	categories := []Category{CategoryBoot, CategoryAPI, CategoryUI, CategoryAudio, CategoryRSVP, CategoryShare}
	for _, cat := range categories {
		Get(cat).Info("test message for %s", cat)
	}
	CloseAll()

	date := time.Now().Format("2006-01-02")
	for _, cat := range categories {
		path := filepath.Join(tempDir, "logs", date+"_"+string(cat)+".log")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("expected log file for category %s: %v", cat, err)
			continue
		}
		if !strings.Contains(string(data), "test message for "+string(cat)) {
			t.Errorf("log file for %s missing message", cat)
		}
	}
}

func TestProductionModeWritesNothing(t *testing.T) {
	defer resetState()
	tempDir := t.TempDir()

	if err := Initialize(tempDir, false, "info"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Boot("should not appear")
	API("should not appear")
	CloseAll()

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not exist in production mode")
	}
}

func TestLevelFilter(t *testing.T) {
	defer resetState()
	tempDir := t.TempDir()

	if err := Initialize(tempDir, true, "warn"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	l := Get(CategoryUI)
	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(tempDir, "logs", date+"_ui.log"))
	if err != nil {
		t.Fatalf("reading ui log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Error("lines below warn level should be filtered")
	}
	if !strings.Contains(out, "warn line") || !strings.Contains(out, "error line") {
		t.Error("warn and error lines should be written")
	}
}

func TestInitializeRequiresDirectory(t *testing.T) {
	defer resetState()
	if err := Initialize("", true, "info"); err == nil {
		t.Error("expected error for empty state directory")
	}
}

func TestTimerStopLogsDuration(t *testing.T) {
	defer resetState()
	tempDir := t.TempDir()

	if err := Initialize(tempDir, true, "debug"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	timer := StartTimer(CategoryAPI, "fake call")
	time.Sleep(time.Millisecond)
	if elapsed := timer.Stop(); elapsed <= 0 {
		t.Error("expected positive elapsed duration")
	}
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(tempDir, "logs", date+"_api.log"))
	if err != nil {
		t.Fatalf("reading api log: %v", err)
	}
	if !strings.Contains(string(data), "fake call completed in") {
		t.Error("timer should log completion with duration")
	}
}
