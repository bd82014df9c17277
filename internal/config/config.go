// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/demo3ds/pkg/formats"
)

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Input    InputConfig    `yaml:"input"`
	Data     DataConfig     `yaml:"data"`
	Loader   LoaderConfig   `yaml:"loader"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Developer enables the developer overlay and verbose GL diagnostics.
	Developer bool `yaml:"developer"`
	// WriteConfig saves the effective configuration on shutdown.
	WriteConfig bool `yaml:"write_config"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	Fullscreen        bool    `yaml:"fullscreen"`
	VSync             bool    `yaml:"vsync"`
	FOV               float32 `yaml:"fov"` // vertical, degrees
	NearClip          float32 `yaml:"near_clip"`
	FarClip           float32 `yaml:"far_clip"`
	TextureAnisotropy float32 `yaml:"texture_anisotropy"` // 0 disables
}

// CameraConfig holds the initial first-person camera state.
type CameraConfig struct {
	Speed    float32    `yaml:"speed"` // world units per millisecond
	Position [3]float32 `yaml:"position"`
	LookAt   [3]float32 `yaml:"look_at"`
}

// InputConfig holds mouse look settings.
type InputConfig struct {
	Mouse       bool    `yaml:"mouse"`
	Sensitivity float32 `yaml:"sensitivity"`
	MouseFilter bool    `yaml:"mouse_filter"`
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
}

// DataConfig holds asset locations.
type DataConfig struct {
	Dir    string        `yaml:"dir"`
	Models []ModelConfig `yaml:"models"`
}

// ModelConfig describes one model placed in the demo scene.
type ModelConfig struct {
	Path   string     `yaml:"path"`
	Name   string     `yaml:"name"`
	Offset [3]float32 `yaml:"offset"`
}

// LoaderConfig holds model loading options.
type LoaderConfig struct {
	Mipmaps      bool   `yaml:"mipmaps"`
	KeepCPUCopy  bool   `yaml:"keep_cpu_copy"`
	NameEncoding string `yaml:"name_encoding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			NearClip:   0.1,
			FarClip:    4000,
		},
		Camera: CameraConfig{
			Speed:  1,
			LookAt: [3]float32{1, 0, 0},
		},
		Input: InputConfig{
			Mouse:       true,
			Sensitivity: 0.5,
			Yaw:         0.022,
			Pitch:       0.022,
		},
		Data: DataConfig{
			Dir: "data",
			Models: []ModelConfig{
				{Path: "bigroom.3DS", Name: "bigroom_mesh", Offset: [3]float32{0, -80, -340}},
			},
		},
		Loader: LoaderConfig{
			Mipmaps: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		WriteConfig: true,
	}
}

// Validate reports settings the demo cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.NearClip <= 0 {
		errs = append(errs, fmt.Errorf("graphics: near_clip must be positive, got %g", c.Graphics.NearClip))
	}
	if c.Graphics.FarClip <= c.Graphics.NearClip {
		errs = append(errs, fmt.Errorf("graphics: far_clip %g must exceed near_clip %g", c.Graphics.FarClip, c.Graphics.NearClip))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov must be in (0, 180), got %g", c.Graphics.FOV))
	}
	if _, err := formats.LookupNameEncoding(c.Loader.NameEncoding); err != nil {
		errs = append(errs, fmt.Errorf("loader: %w", err))
	}
	for i, m := range c.Data.Models {
		if m.Path == "" {
			errs = append(errs, fmt.Errorf("data: model %d has no path", i))
		}
	}
	return errors.Join(errs...)
}
