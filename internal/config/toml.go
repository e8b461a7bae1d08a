// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Schedule  ScheduleConfig  `toml:"schedule"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Display   DisplayConfig   `toml:"display"`
}

// ScheduleConfig selects the weekly availability template.
type ScheduleConfig struct {
	File *string `toml:"file"`
}

// SchedulerConfig maps suggested session lengths in minutes.
type SchedulerConfig struct {
	ProjectSession  *int `toml:"project-session"`
	StudySession    *int `toml:"study-session"`
	PracticeSession *int `toml:"practice-session"`
}

// DisplayConfig maps rendering settings.
type DisplayConfig struct {
	Dark *bool `toml:"dark"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
