package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the connection settings for the Librarian backend.
type Config struct {
	APIURL      string
	Token       string
	DownloadDir string
}

const (
	defaultConfigPath  = "~/.config/librarian/config.toml"
	defaultAPIURL      = "http://127.0.0.1:4000/api"
	defaultDownloadDir = "~/Downloads"

	envAPIURL = "LIBRARIAN_API_URL"
	envToken  = "LIBRARIAN_TOKEN"
)

// Load locates and parses the config file, falling back to defaults when
// missing. A .env file in the working directory is loaded first; the
// LIBRARIAN_API_URL and LIBRARIAN_TOKEN environment variables override the
// file's values.
func Load(path string) (Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIURL: defaultAPIURL, DownloadDir: defaultDownloadDir}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(finalize(cfg)), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		Token       string `toml:"token"`
		DownloadDir string `toml:"download_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if v := strings.TrimSpace(raw.DownloadDir); v != "" {
		cfg.DownloadDir = v
	}

	return applyEnv(finalize(cfg)), nil
}

func finalize(cfg Config) Config {
	cfg.DownloadDir = mustExpand(cfg.DownloadDir)
	return cfg
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		cfg.Token = v
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
