package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func resetLogging(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		CloseAll()
		configMu.Lock()
		settings = Settings{}
		logsDir = ""
		configMu.Unlock()
	})
}

// TestAllCategoriesLog tests that all categories create log files when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()
	resetLogging(t)

	if err := Initialize(tempDir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	categories := []Category{
		CategoryBoot,
		CategoryAgent,
		CategoryNormalize,
		CategoryCampaign,
		CategoryStore,
		CategoryState,
		CategoryUsage,
		CategoryCLI,
	}

	for _, cat := range categories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}
		logger := Get(cat)
		logger.Info("Test info message for %s", cat)
		logger.Debug("Test debug message for %s", cat)
		logger.Warn("Test warn message for %s", cat)
		logger.Error("Test error message for %s", cat)
	}

	Agent("Convenience agent log")
	Campaign("Convenience campaign log")
	Store("Convenience store log")

	CloseAll()

	logsPath := filepath.Join(tempDir, "logs")
	entries, err := os.ReadDir(logsPath)
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	for _, cat := range categories {
		found := false
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), "_"+string(cat)+".log") {
				found = true
				content, err := os.ReadFile(filepath.Join(logsPath, entry.Name()))
				if err != nil {
					t.Errorf("Failed to read log file for %s: %v", cat, err)
					continue
				}
				if !strings.Contains(string(content), "Test info message for "+string(cat)) {
					t.Errorf("Log file for %s is missing the info entry", cat)
				}
				break
			}
		}
		if !found {
			t.Errorf("No log file found for category: %s", cat)
		}
	}
}

// TestDebugModeDisabled tests that no logs are created when debug_mode is false
func TestDebugModeDisabled(t *testing.T) {
	tempDir := t.TempDir()
	resetLogging(t)

	if err := Initialize(tempDir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsDebugMode() {
		t.Error("Expected debug mode to be disabled")
	}

	Agent("should not be written")
	Get(CategoryStore).Error("nor this")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Errorf("logs directory should not exist in production mode, stat err = %v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	tempDir := t.TempDir()
	resetLogging(t)

	err := Initialize(tempDir, Settings{
		DebugMode:  true,
		Categories: map[string]bool{"store": false},
	})
	if err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if IsCategoryEnabled(CategoryStore) {
		t.Error("store category should be disabled")
	}
	if !IsCategoryEnabled(CategoryAgent) {
		t.Error("unlisted categories should default to enabled")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	tempDir := t.TempDir()
	resetLogging(t)

	if err := Initialize(tempDir, Settings{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	AgentDebug("hidden debug line")
	AgentWarn("visible warn line")
	CloseAll()

	name := time.Now().Format("2006-01-02") + "_agent.log"
	content, err := os.ReadFile(filepath.Join(tempDir, "logs", name))
	if err != nil {
		t.Fatalf("read agent log: %v", err)
	}
	if strings.Contains(string(content), "hidden debug line") {
		t.Error("debug line written at warn level")
	}
	if !strings.Contains(string(content), "visible warn line") {
		t.Error("warn line missing")
	}
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	if err := Initialize("", Settings{}); err == nil {
		t.Error("expected error for empty workspace")
	}
}

func TestConcurrentGet(t *testing.T) {
	tempDir := t.TempDir()
	resetLogging(t)

	if err := Initialize(tempDir, Settings{DebugMode: true}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Campaign("goroutine %d", n)
		}(i)
	}
	wg.Wait()

	loggersMu.RLock()
	defer loggersMu.RUnlock()
	if len(loggers) != 2 { // boot + campaign
		t.Errorf("expected 2 cached loggers, got %d", len(loggers))
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer(CategoryCampaign, "op")
	time.Sleep(time.Millisecond)
	if d := timer.Stop(); d <= 0 {
		t.Errorf("expected positive duration, got %v", d)
	}
	if d := StartTimer(CategoryCampaign, "op").StopWithThreshold(time.Hour); d < 0 {
		t.Errorf("expected non-negative duration, got %v", d)
	}
}
