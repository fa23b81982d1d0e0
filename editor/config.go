package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/milk9111/siteeditor/site"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DoormatThickness      float64       `yaml:"doormat_thickness"`
	DefaultCabinWidth     float64       `yaml:"default_cabin_width"`
	ReplacePreviousIssues bool          `yaml:"replace_previous_issues"`
	WatchDebounce         time.Duration `yaml:"watch_debounce"`
}

func DefaultConfig() Config {
	return Config{
		DoormatThickness:  site.DefaultDoormatThickness,
		DefaultCabinWidth: site.DefaultCabinWidth,
		WatchDebounce:     100 * time.Millisecond,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("editor: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("editor: unmarshal config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.DoormatThickness <= 0 {
		c.DoormatThickness = def.DoormatThickness
	}
	if c.DefaultCabinWidth <= 0 {
		c.DefaultCabinWidth = def.DefaultCabinWidth
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = def.WatchDebounce
	}
}
