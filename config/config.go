package config

import (
	"encoding/json"
	"os"

	"fpscounter/display"
)

// Config holds runtime configuration for the demo window and the overlay.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	WindowWidth  int32 `json:"window_width"`
	WindowHeight int32 `json:"window_height"`
	BarHeight    int32 `json:"bar_height"`

	// Mode is the tick mode the counter subscribes in: default, tracking or common.
	Mode        string `json:"mode"`
	GoodFPS     int    `json:"good_fps"`
	WarningFPS  int    `json:"warning_fps"`
	ShowOnStart bool   `json:"show_on_start"`

	// LoadMillis is synthetic work added to every frame.
	LoadMillis int `json:"load_ms"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		WindowWidth:  500,
		WindowHeight: 500,
		BarHeight:    20,
		Mode:         string(display.ModeCommon),
		GoodFPS:      45,
		WarningFPS:   35,
		ShowOnStart:  true,
		LoadMillis:   0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() {
	if c.WindowWidth <= 0 {
		c.WindowWidth = 500
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = 500
	}
	if c.BarHeight <= 0 || c.BarHeight > c.WindowHeight {
		c.BarHeight = min(20, c.WindowHeight)
	}
	c.Mode = string(display.ParseMode(c.Mode))
	if c.GoodFPS <= 0 {
		c.GoodFPS = 45
	}
	if c.WarningFPS < 0 || c.WarningFPS > c.GoodFPS {
		c.WarningFPS = min(35, c.GoodFPS)
	}
	if c.LoadMillis < 0 {
		c.LoadMillis = 0
	}
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
