// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("APP_URL", "https://polls.example")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.BaseURL != "https://polls.example" {
		t.Errorf("expected APP_URL base, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-secret", "s1", "-base-url", "http://x"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
	if cfg.BaseURL != "http://x" {
		t.Errorf("expected base URL from flag, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_URL", "")
	t.Setenv("DATABASE_TYPE", "")

	cfg, err := ParseFlags([]string{"-d", ":memory:", "-session-secret", "s"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DATABASE_TYPE", "")

	tests := []struct {
		name string
		args []string
		port string
	}{
		{"missing database url", []string{"-session-secret", "s"}, ""},
		{"missing session secret", []string{"-d", ":memory:"}, ""},
		{"bad port", []string{"-d", ":memory:", "-session-secret", "s"}, "abc"},
		{"bad database type", []string{"-d", ":memory:", "-session-secret", "s", "-t", "mysql"}, ""},
		{"missing env file", []string{"-env-file", "/nonexistent/.env"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("SESSION_SECRET")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "DATABASE_URL=file:from-env-file.db\nSESSION_SECRET=file-secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("SESSION_SECRET")
	})

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseURL != "file:from-env-file.db" || cfg.SessionSecret != "file-secret" {
		t.Errorf("env file values not applied: %+v", cfg)
	}
}
