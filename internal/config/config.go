package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// Config captures the settings glyphart needs to reach the conversion service.
type Config struct {
	Endpoint       string
	DownloadDir    string
	DownloadName   string
	LogFile        string
	HealthInterval time.Duration
}

const (
	defaultConfigPath     = "~/.config/glyphart/config.toml"
	defaultEndpoint       = "http://localhost:8000/upload"
	defaultDownloadDir    = "~/Pictures"
	defaultDownloadName   = "glyphart.png"
	defaultLogFile        = "~/.local/state/glyphart/glyphart.log"
	defaultHealthInterval = 5 * time.Second
)

// Environment variables that override the config file.
const (
	EnvEndpoint    = "GLYPHART_ENDPOINT"
	EnvDownloadDir = "GLYPHART_DOWNLOAD_DIR"
	EnvLogFile     = "GLYPHART_LOG_FILE"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint:       defaultEndpoint,
		DownloadDir:    mustExpand(defaultDownloadDir),
		DownloadName:   defaultDownloadName,
		LogFile:        mustExpand(defaultLogFile),
		HealthInterval: defaultHealthInterval,
	}
}

// Load locates and parses the glyphart config, falling back to defaults when
// missing. Values from a .env file in the working directory and from the
// process environment take precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		applyEnv(&cfg)
		return cfg, cfg.validate()
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint              string `toml:"endpoint"`
		DownloadDir           string `toml:"download_dir"`
		DownloadName          string `toml:"download_name"`
		LogFile               string `toml:"log_file"`
		HealthIntervalSeconds int    `toml:"health_interval_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(raw.DownloadDir); v != "" {
		cfg.DownloadDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.DownloadName); v != "" {
		cfg.DownloadName = filepath.Base(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.HealthIntervalSeconds > 0 {
		cfg.HealthInterval = time.Duration(raw.HealthIntervalSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, cfg.validate()
}

// DownloadPath returns where a downloaded result is written.
func (c Config) DownloadPath() string {
	name := c.DownloadName
	if strings.TrimSpace(name) == "" {
		name = defaultDownloadName
	}
	return filepath.Join(c.DownloadDir, name)
}

func (c Config) validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDownloadDir)); v != "" {
		cfg.DownloadDir = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = mustExpand(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
