package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration accepted by the render command.
type Config struct {
	Page struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"page"`
	Margins struct {
		Top    float64 `yaml:"top"`
		Bottom float64 `yaml:"bottom"`
		Left   float64 `yaml:"left"`
		Right  float64 `yaml:"right"`
	} `yaml:"margins"`
	FontSize float64 `yaml:"font_size"`
	BaseDir  string  `yaml:"base_dir"`
	Strict   bool    `yaml:"strict"`
}

// DefaultConfig returns the built-in defaults: US Letter, 50 pt margins.
func DefaultConfig() Config {
	var c Config
	c.Page.Width = 612
	c.Page.Height = 792
	c.Margins.Top = 50
	c.Margins.Bottom = 50
	c.Margins.Left = 50
	c.Margins.Right = 50
	c.FontSize = 12
	return c
}

// LoadConfig reads a YAML config file, applying defaults for absent fields.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return c, fmt.Errorf("config: page size must be positive")
	}
	return c, nil
}
