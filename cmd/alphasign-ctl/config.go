package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultDevice = "serial:///dev/ttyUSB0"

// alphasign-ctl config.toml key mapping.
type fileConfig struct {
	Device  string `toml:"device"`
	Verbose bool   `toml:"verbose"`
}

// loadConfig overlays the TOML file, when given, onto built-in defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{Device: defaultDevice}
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fileConfig{}, fmt.Errorf("load config: %w", err)
	}
	if meta.IsDefined("device") {
		cfg.Device = strings.TrimSpace(raw.Device)
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	return cfg, nil
}
