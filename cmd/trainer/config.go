// cmd/trainer/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/mmp/atctrainer/log"
	"github.com/mmp/atctrainer/sim"
)

// CurrentConfigVersion is bumped whenever the meaning of a Config field
// changes so that old config files can be upgraded.
const CurrentConfigVersion = 1

// ScopeRanges are the selectable scope ranges, in nm.
var ScopeRanges = []float64{20, 50}

// Config holds user preferences that persist across runs. Simulation
// state is never saved.
type Config struct {
	Version      int
	ScopeRange   float64
	SimRate      float64
	ScenarioFile string
	ShowHistory  bool
}

func getDefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		ScopeRange:  20,
		SimRate:     1,
		ShowHistory: true,
	}
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}

	dir = filepath.Join(dir, "ATCTrainer")
	err = os.MkdirAll(dir, 0o700)
	if err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return filepath.Join(dir, "config.json")
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(lg *log.Logger) error {
	fn := configFilePath(lg)
	lg.Infof("Saving config to: %s", fn)
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

func LoadOrMakeDefaultConfig(lg *log.Logger) (*Config, error) {
	fn := configFilePath(lg)
	lg.Infof("Loading config from: %s", fn)

	contents, err := os.ReadFile(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return getDefaultConfig(), nil
		}
		return getDefaultConfig(), err
	}

	config, err := decodeConfig(contents)
	if err != nil {
		return getDefaultConfig(), fmt.Errorf("%s: %w", fn, err)
	}
	return config, nil
}

// decodeConfig parses a saved config, replacing any out-of-range values
// with their defaults.
func decodeConfig(contents []byte) (*Config, error) {
	config := getDefaultConfig()
	if err := json.NewDecoder(bytes.NewReader(contents)).Decode(config); err != nil {
		return nil, err
	}

	def := getDefaultConfig()
	if !slices.Contains(ScopeRanges, config.ScopeRange) {
		config.ScopeRange = def.ScopeRange
	}
	if !slices.Contains(sim.SimRates, config.SimRate) {
		config.SimRate = def.SimRate
	}
	config.Version = CurrentConfigVersion

	return config, nil
}
