package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"pagefind/internal/eventbus"
	"pagefind/internal/matcher"
)

// FileName is the per-directory config file checked before the user config
const FileName = ".pagefind.toml"

var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version"`
	Find    FindSettings `toml:"find"`
	UI      UISettings   `toml:"ui"`
}

// FindSettings controls matching and the host queue
type FindSettings struct {
	Engine        string `toml:"engine"` // "literal" or "regex"
	CaseSensitive bool   `toml:"case_sensitive"`
	QueueSize     int    `toml:"queue_size"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	WrapStatus      bool `toml:"wrap_status"` // show "(wrapped)" when navigation wraps
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "pagefind", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the user configuration, falling back to defaults when absent
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Path returns the user config file used by Load and Save
func (cs *configService) Path() string {
	return cs.filePath
}

// Save saves the configuration to the user config file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cs.publishLoaded(cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{
		Engine:        cfg.Find.Engine,
		CaseSensitive: cfg.Find.CaseSensitive,
	})
}

// Validate fills zero values and rejects settings the host cannot use
func (c *Config) Validate() error {
	if c.Version == 0 {
		c.Version = 1
	}
	c.Find.Engine = strings.ToLower(strings.TrimSpace(c.Find.Engine))
	if c.Find.Engine == "" {
		c.Find.Engine = matcher.EngineLiteral
	}
	if !slices.Contains(matcher.Engines(), c.Find.Engine) {
		return fmt.Errorf("%w: unknown engine %q", ErrInvalidConfig, c.Find.Engine)
	}
	if c.Find.QueueSize < 0 {
		return fmt.Errorf("%w: queue_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewMatcher builds the matcher described by the find settings
func (c *Config) NewMatcher() (matcher.Matcher, error) {
	return matcher.New(c.Find.Engine, c.Find.CaseSensitive)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Find: FindSettings{
			Engine:    matcher.EngineLiteral,
			QueueSize: 64,
		},
		UI: UISettings{
			ShowLineNumbers: true,
			WrapStatus:      true,
		},
	}
}
