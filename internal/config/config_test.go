package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var configEnvVars = []string{
	"EXAMPLE", "API_PORT", "UPLOAD_DIR",
	"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
	"QDRANT_URL", "QDRANT_COLLECTION", "QDRANT_VECTOR_SIZE",
	"DB_PATH", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets all config env vars and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		original, had := os.LookupEnv(key)
		_ = os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, original)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ExampleName != "localrag" {
		t.Errorf("ExampleName = %q, want localrag", cfg.ExampleName)
	}
	if cfg.APIPort != "8081" {
		t.Errorf("APIPort = %q, want 8081", cfg.APIPort)
	}
	if cfg.UploadDir != "uploaded_files" {
		t.Errorf("UploadDir = %q, want uploaded_files", cfg.UploadDir)
	}
	if cfg.QdrantVectorSize != 1024 {
		t.Errorf("QdrantVectorSize = %d, want 1024", cfg.QdrantVectorSize)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	_ = os.Setenv("EXAMPLE", "customchain")
	_ = os.Setenv("QDRANT_VECTOR_SIZE", "768")
	_ = os.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ExampleName != "customchain" {
		t.Errorf("ExampleName = %q, want customchain", cfg.ExampleName)
	}
	if cfg.QdrantVectorSize != 768 {
		t.Errorf("QdrantVectorSize = %d, want 768", cfg.QdrantVectorSize)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadInvalidVectorSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_ = os.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
			_ = os.Setenv("QDRANT_VECTOR_SIZE", tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with QDRANT_VECTOR_SIZE=%q should fail", tt.value)
			}
		})
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	_ = os.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Error("Load() with invalid LOG_LEVEL should fail")
	}
}
