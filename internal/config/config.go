package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix is the prefix of environment overrides (OLLATERM_BACKEND_URL, ...)
	EnvPrefix = "OLLATERM"

	// DefaultBackendURL is the address of a locally started backend
	DefaultBackendURL = "http://localhost:8000"
	// DefaultMessageTimeout is how long a status message stays visible
	DefaultMessageTimeout = 3 * time.Second
)

var (
	// ConfigDir is the global configuration directory (~/.ollaterm)
	ConfigDir string

	// ConfigFile is the YAML configuration file
	ConfigFile string

	// LogFile is the default log destination
	LogFile string

	// KeybindsFile is the user keybinding overrides file
	KeybindsFile string

	// ExportDir is where history transcripts are written
	ExportDir string
)

// Highlight configures code detection and syntax highlighting of output
type Highlight struct {
	Language string   `yaml:"language" envconfig:"LANGUAGE"`
	Style    string   `yaml:"style" envconfig:"STYLE"`
	Keywords []string `yaml:"keywords" envconfig:"KEYWORDS"`
	Disabled bool     `yaml:"disabled" envconfig:"DISABLED"`
}

// Config is the resolved client configuration
type Config struct {
	BackendURL     string        `yaml:"backend_url" envconfig:"BACKEND_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	MessageTimeout time.Duration `yaml:"message_timeout" envconfig:"MESSAGE_TIMEOUT"`
	LogLevel       string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFile        string        `yaml:"log_file" envconfig:"LOG_FILE"`
	KeybindsFile   string        `yaml:"keybinds_file" envconfig:"KEYBINDS_FILE"`
	ExportDir      string        `yaml:"export_dir" envconfig:"EXPORT_DIR"`
	Highlight      Highlight     `yaml:"highlight"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BackendURL:     DefaultBackendURL,
		MessageTimeout: DefaultMessageTimeout,
		LogLevel:       "info",
		LogFile:        LogFile,
		KeybindsFile:   KeybindsFile,
		ExportDir:      ExportDir,
		Highlight: Highlight{
			Language: "python",
			Style:    "monokai",
			Keywords: []string{"def ", "class ", "import "},
		},
	}
}

// Initialize sets up the configuration directory
// It creates ~/.ollaterm/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".ollaterm"))
}

// InitializeAt sets up the configuration paths under dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	LogFile = filepath.Join(ConfigDir, "ollaterm.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")
	ExportDir = filepath.Join(ConfigDir, "exports")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Load reads the config file (if present) and applies environment overrides
func Load() (*Config, error) {
	cfg := Default()

	if ConfigFile != "" {
		if err := loadFile(ConfigFile, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges a YAML file over cfg; a missing file is not an error
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks the resolved configuration
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url must not be empty")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend_url must start with http:// or https://, got %q", c.BackendURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.MessageTimeout <= 0 {
		c.MessageTimeout = DefaultMessageTimeout
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetExportPath returns the path for an export file name, creating the export directory
func (c *Config) GetExportPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	dir := c.ExportDir
	if dir == "" {
		dir = ExportDir
	}
	if strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, dir[2:])
	}

	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	return filepath.Join(dir, name), nil
}
