package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the annotator. Fields may be
// loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// LabelsDir, when set, is where annotation files are written and
	// read; empty means next to the image.
	LabelsDir string `json:"labels_dir"`

	// AutosaveOnSwitch writes the current annotations before moving to
	// another image instead of prompting.
	AutosaveOnSwitch bool `json:"autosave_on_switch"`

	// Canvas viewport size the image preview is fitted into.
	PreviewWidth  int `json:"preview_width"`
	PreviewHeight int `json:"preview_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		LabelsDir:        "",
		AutosaveOnSwitch: false,
		PreviewWidth:     960,
		PreviewHeight:    640,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = 960
	}
	if c.PreviewHeight <= 0 {
		c.PreviewHeight = 640
	}
	return nil
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
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
