package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MCC_AGENT_API_KEY", "GEMINI_API_KEY", "MCC_AGENT_BASE_URL", "MCC_STORE_PATH"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "mcc" {
		t.Errorf("expected Name=mcc, got %s", cfg.Name)
	}
	if cfg.Agents.Provider != ProviderHTTP {
		t.Errorf("expected Provider=http, got %s", cfg.Agents.Provider)
	}
	if cfg.Agents.OrchestratorID != "69a2883be72641e0c6070afe" {
		t.Errorf("unexpected orchestrator id %s", cfg.Agents.OrchestratorID)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Logging.DebugMode {
		t.Error("debug mode must be off by default")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", DefaultFileName)

	cfg := DefaultConfig()
	cfg.Agents.Provider = ProviderGemini
	cfg.Agents.APIKey = "sk-test"
	cfg.Storage.Backend = BackendFile

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Agents.Provider != ProviderGemini {
		t.Errorf("expected Provider=gemini, got %s", loaded.Agents.Provider)
	}
	if loaded.Agents.APIKey != "sk-test" {
		t.Errorf("expected APIKey=sk-test, got %s", loaded.Agents.APIKey)
	}
	if loaded.Storage.Backend != BackendFile {
		t.Errorf("expected file backend, got %s", loaded.Storage.Backend)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agents.BaseURL != DefaultConfig().Agents.BaseURL {
		t.Errorf("expected default base url, got %s", cfg.Agents.BaseURL)
	}
}

func TestLoad_MissingFileStillAppliesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MCC_AGENT_BASE_URL", "http://agents.internal/run")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agents.BaseURL != "http://agents.internal/run" {
		t.Errorf("env override not applied, got %s", cfg.Agents.BaseURL)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("agents: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"2m", 2 * time.Minute},
		{"", 180 * time.Second},
		{"bogus", 180 * time.Second},
		{"-5s", 180 * time.Second},
	}
	for _, tt := range tests {
		got := AgentsConfig{Timeout: tt.in}.GetTimeout()
		if got != tt.want {
			t.Errorf("GetTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	ws := filepath.Join(string(filepath.Separator), "ws")
	if got := (StorageConfig{Path: "mcc.db"}).ResolvePath(ws); got != filepath.Join(ws, "mcc.db") {
		t.Errorf("relative path not anchored: %s", got)
	}
	abs := filepath.Join(string(filepath.Separator), "data", "mcc.db")
	if got := (StorageConfig{Path: abs}).ResolvePath(ws); got != abs {
		t.Errorf("absolute path rewritten: %s", got)
	}
}
