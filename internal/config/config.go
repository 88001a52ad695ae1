package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config represents the main configuration for skillora.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir" validate:"required"`
	LogLevel   string           `toml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Store      StoreConfig      `toml:"store"`
	Encryption EncryptionConfig `toml:"encryption"`
	Latency    LatencyConfig    `toml:"latency"`
	Server     ServerConfig     `toml:"server"`
}

// StoreConfig represents configuration for the key-value store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type" validate:"required,oneof=memory filesystem sqlite postgres s3"`

	// Filesystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty" validate:"required_if=Type filesystem"`

	// SQLite-specific fields (only used when Type == "sqlite")
	SQLitePath string `toml:"sqlite_path,omitempty" validate:"required_if=Type sqlite"`

	// Postgres-specific fields (only used when Type == "postgres")
	PostgresDSN string `toml:"postgres_dsn,omitempty" validate:"required_if=Type postgres"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty" validate:"required_if=Type s3"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3Endpoint        string `toml:"s3_endpoint,omitempty"`          // for S3-compatible services
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`     // static credentials; default chain when empty
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"` // static credentials; default chain when empty
}

// EncryptionConfig selects at-rest encryption of stored values.
type EncryptionConfig struct {
	Type           string `toml:"type" validate:"omitempty,oneof=none age test"` // "none" (default), "age" or "test"
	PublicKeyPath  string `toml:"public_key_path" validate:"required_if=Type age"`
	PrivateKeyPath string `toml:"private_key_path" validate:"required_if=Type age"`
}

// LatencyConfig controls the simulated backend round trip.
type LatencyConfig struct {
	Enabled bool `toml:"enabled"`
}

// ServerConfig holds settings for `skillora serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// NewConfig creates a new Config rooted at baseDir with a sqlite store and
// simulated latency enabled.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		LogLevel: "info",
		Store: StoreConfig{
			Type:       "sqlite",
			SQLitePath: filepath.Join(baseDir, "skillora.db"),
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "skillora.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "skillora.key"),
		},
		Latency: LatencyConfig{Enabled: true},
		Server:  ServerConfig{Addr: DefaultAddr},
	}
}

// Validate checks the config for missing or inconsistent fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads and validates a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
