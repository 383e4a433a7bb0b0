package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// EnsureUserConfig makes sure a writable config exists under dataDir,
// seeding it from the packaged default on first run. When the packaged
// file is missing too (bare binary install) a minimal default is written
// instead of failing startup.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return userPath, writeMinimalDefault(userPath)
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

func writeMinimalDefault(path string) error {
	var cfg Config
	cfg.App.Port = 8345
	cfg.App.DataDir = filepath.Dir(path)
	cfg.Registry.BaseURL = "https://suggestions.dadata.ru/suggestions/api/4_1/rs"
	cfg.Search.BaseURL = "https://openrouter.ai/api/v1"
	cfg.Search.Model = "perplexity/sonar"
	cfg.Messenger.MaxPartLen = 4000
	normalized, _ := NormalizeAndValidate(cfg)
	return SaveAtomic(path, normalized)
}
