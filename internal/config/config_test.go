package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvDownloadDir, "")
	t.Setenv(EnvLogFile, "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if cfg.DownloadName != defaultDownloadName {
		t.Fatalf("DownloadName = %q, want %q", cfg.DownloadName, defaultDownloadName)
	}
	wantDir, err := expandPath(defaultDownloadDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDownloadDir) returned error: %v", err)
	}
	if cfg.DownloadDir != wantDir {
		t.Fatalf("DownloadDir = %q, want %q", cfg.DownloadDir, wantDir)
	}
	if cfg.HealthInterval != defaultHealthInterval {
		t.Fatalf("HealthInterval = %v, want %v", cfg.HealthInterval, defaultHealthInterval)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
endpoint = "  http://10.0.0.5:9999/convert  "
download_dir = "  ~/art  "
download_name = " ../../result.png "
health_interval_seconds = 12
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != "http://10.0.0.5:9999/convert" {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, "http://10.0.0.5:9999/convert")
	}
	if cfg.DownloadDir != filepath.Join(home, "art") {
		t.Fatalf("DownloadDir = %q, want %q", cfg.DownloadDir, filepath.Join(home, "art"))
	}
	if cfg.DownloadName != "result.png" {
		t.Fatalf("DownloadName = %q, want result.png", cfg.DownloadName)
	}
	if cfg.HealthInterval != 12*time.Second {
		t.Fatalf("HealthInterval = %v, want 12s", cfg.HealthInterval)
	}
	if cfg.DownloadPath() != filepath.Join(home, "art", "result.png") {
		t.Fatalf("DownloadPath = %q", cfg.DownloadPath())
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
endpoint = "   "
download_name = ""
health_interval_seconds = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if cfg.DownloadName != defaultDownloadName {
		t.Fatalf("DownloadName = %q, want %q", cfg.DownloadName, defaultDownloadName)
	}
	if cfg.HealthInterval != defaultHealthInterval {
		t.Fatalf("HealthInterval = %v, want %v", cfg.HealthInterval, defaultHealthInterval)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)
	t.Setenv(EnvEndpoint, "https://art.example.com/upload")
	t.Setenv(EnvDownloadDir, "~/out")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`endpoint = "http://localhost:1/upload"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != "https://art.example.com/upload" {
		t.Fatalf("Endpoint = %q, want env override", cfg.Endpoint)
	}
	if cfg.DownloadDir != filepath.Join(home, "out") {
		t.Fatalf("DownloadDir = %q, want %q", cfg.DownloadDir, filepath.Join(home, "out"))
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`endpoint = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsNonHTTPEndpoint(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`endpoint = "ftp://example.com/upload"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want scheme error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestLoad_MalformedDotEnvWarnsAndContinues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)
	buf := captureLog(t)

	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("bad{key=1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Endpoint != defaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, defaultEndpoint)
	}
	if !strings.Contains(buf.String(), ".env") {
		t.Fatalf("expected a warning about .env, log = %q", buf.String())
	}
}

func TestLoad_MissingDotEnvIsSilent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)
	buf := captureLog(t)
	chdir(t, t.TempDir())

	if _, err := Load(filepath.Join(home, "missing.toml")); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output for missing .env: %q", buf.String())
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
