package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scrollgrip/internal/eventbus"
)

// FileName is the per-directory config file that overrides the user config
const FileName = ".scrollgrip.toml"

// Config represents the scrollbar configuration
type Config struct {
	Version int `toml:"version"`

	// Which scrollbars may be used: auto, vertical or horizontal
	Orientation string `toml:"orientation"`
	// When scrollbars are shown: native, always or hover
	Visibility string `toml:"visibility"`
	// standard reserves a gutter, compact overlays the content
	Appearance string `toml:"appearance"`
	// native, invertX, invertY or invertAll
	Position string `toml:"position"`
	// Where pointer events are sourced from: viewport or scrollbar
	PointerEvents string `toml:"pointer_events"`
	// What a track press does: steps or to
	TrackClickBehavior string `toml:"track_click_behavior"`

	MinThumbSize         float64 `toml:"min_thumb_size"`
	TrackClickDurationMs int     `toml:"track_click_duration_ms"`
	TrackSettleMs        int     `toml:"track_settle_ms"`
	ScrollDurationMs     int     `toml:"scroll_duration_ms"`
	SensorThrottleMs     int     `toml:"sensor_throttle_ms"`
	SensorDisabled       bool    `toml:"sensor_disabled"`

	// ltr or rtl
	Direction string `toml:"direction"`
	// Offset convention the terminal surface emulates for rtl content
	RTLConvention string `toml:"rtl_convention"`
	Easing        string `toml:"easing"`

	UISettings UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ThumbColor      string `toml:"thumb_color"`
	ThumbHoverColor string `toml:"thumb_hover_color"`
	TrackColor      string `toml:"track_color"`
	ShowStatus      bool   `toml:"show_status"`
}

// TrackClickDuration returns the animation length of one track step
func (c Config) TrackClickDuration() time.Duration {
	return time.Duration(c.TrackClickDurationMs) * time.Millisecond
}

// TrackSettle returns the pause between the first track step and the repeats
func (c Config) TrackSettle() time.Duration {
	return time.Duration(c.TrackSettleMs) * time.Millisecond
}

// ScrollDuration returns the default smooth scroll length
func (c Config) ScrollDuration() time.Duration {
	return time.Duration(c.ScrollDurationMs) * time.Millisecond
}

// SensorThrottle returns the minimum interval between size notifications
func (c Config) SensorThrottle() time.Duration {
	return time.Duration(c.SensorThrottleMs) * time.Millisecond
}

var (
	validOrientation = []string{"auto", "vertical", "horizontal"}
	validVisibility  = []string{"native", "always", "hover"}
	validAppearance  = []string{"standard", "compact"}
	validPosition    = []string{"native", "invertX", "invertY", "invertAll"}
	validPointer     = []string{"viewport", "scrollbar"}
	validTrackClick  = []string{"steps", "to"}
	validDirection   = []string{"ltr", "rtl"}
	validConvention  = []string{"normal", "negated", "inverted"}
	validEasing      = []string{"easeInOutQuad", "linear", "easeInOutCubic", "easeOutCubic"}
)

// Validate reports every field holding an unknown value
func (c Config) Validate() error {
	var errs []error
	check := func(field, value string, allowed []string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: unknown value %q (want one of %v)", field, value, allowed))
	}
	check("orientation", c.Orientation, validOrientation)
	check("visibility", c.Visibility, validVisibility)
	check("appearance", c.Appearance, validAppearance)
	check("position", c.Position, validPosition)
	check("pointer_events", c.PointerEvents, validPointer)
	check("track_click_behavior", c.TrackClickBehavior, validTrackClick)
	check("direction", c.Direction, validDirection)
	check("rtl_convention", c.RTLConvention, validConvention)
	check("easing", c.Easing, validEasing)
	if c.MinThumbSize < 0 {
		errs = append(errs, fmt.Errorf("min_thumb_size: must not be negative"))
	}
	if c.TrackClickDurationMs < 0 || c.TrackSettleMs < 0 || c.ScrollDurationMs < 0 || c.SensorThrottleMs < 0 {
		errs = append(errs, fmt.Errorf("durations must not be negative"))
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "scrollgrip", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the user configuration, returning defaults when none exists
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the user configuration
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
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
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: path})
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
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

	cs.publish(eventbus.ConfigSavedEvent{Path: path})
	return nil
}

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:              1,
		Orientation:          "auto",
		Visibility:           "native",
		Appearance:           "standard",
		Position:             "native",
		PointerEvents:        "viewport",
		TrackClickBehavior:   "steps",
		MinThumbSize:         1,
		TrackClickDurationMs: 100,
		TrackSettleMs:        120,
		ScrollDurationMs:     300,
		SensorThrottleMs:     0,
		Direction:            "ltr",
		RTLConvention:        "negated",
		Easing:               "easeInOutQuad",
		UISettings: UISettings{
			ThumbColor:      "245",
			ThumbHoverColor: "252",
			TrackColor:      "237",
			ShowStatus:      true,
		},
	}
}
