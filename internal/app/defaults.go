package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by the application.
const (
	EnvConfigPath = "SKILLORA_CONFIG_PATH"
	EnvHome       = "SKILLORA_HOME"
	EnvPassphrase = "SKILLORA_PASSPHRASE"
)

// Defaults holds the default locations of the config file and data.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// LoadDotEnv loads path (normally ".env") into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - SKILLORA_CONFIG_PATH: config file location (default: ~/.config/skillora.toml)
//   - SKILLORA_HOME: base directory for skillora data (default: ~/.local/share/skillora)
func GetDefaults() (*Defaults, error) {
	configPath, err := envOrHome(EnvConfigPath, ".config", "skillora.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := envOrHome(EnvHome, ".local", "share", "skillora")
	if err != nil {
		return nil, err
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of env, or the home directory joined with elem.
func envOrHome(env string, elem ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}

// EnvPassphraseSource returns a PassphraseFunc that reads SKILLORA_PASSPHRASE
// and falls back to next when it is unset. next may be nil.
func EnvPassphraseSource(next PassphraseFunc) PassphraseFunc {
	return func() (string, error) {
		if p := os.Getenv(EnvPassphrase); p != "" {
			return p, nil
		}
		if next == nil {
			return "", fmt.Errorf("no passphrase: set %s", EnvPassphrase)
		}
		return next()
	}
}
