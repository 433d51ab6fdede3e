// Package config loads extraction settings from an optional config file,
// with sane defaults for every field.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all configurable paths and extraction settings.
type Config struct {
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`
	Workers   int    `mapstructure:"workers"`

	// Preview rendering
	RenderSize  int `mapstructure:"render_size"`
	Supersample int `mapstructure:"supersample"`
	WebPQuality int `mapstructure:"webp_quality"`

	// Pose scan: allowed deviation of a rest-pose scale from 1.0 (16.16
	// fixed point, so 0x8000 is half).
	PoseScaleTolerance int32 `mapstructure:"pose_scale_tolerance"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", ".")
	v.SetDefault("output_dir", "extracted")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("render_size", 256)
	v.SetDefault("supersample", 2)
	v.SetDefault("webp_quality", 90)
	v.SetDefault("pose_scale_tolerance", 0x8000)
}

// Load reads the config file at path, or returns pure defaults when path is
// empty. A missing explicit file is an error; a field missing from the file
// keeps its default.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in settings without touching the filesystem.
func Default() Config {
	cfg, _ := Load("")
	return cfg
}
