// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the handful of tunables the embedder sets once at
// startup: recursion depth, default rule-firing policy, and logging
// level. It is deliberately small; most behavior is per-axis/per-cell
// (fireAll, cache) rather than global.
package config

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config is the top-level, YAML-decodable engine configuration.
type Config struct {
	// MaxRecursionDepth is the configured cross-cube recursion limit (§5).
	// Zero means "use the built-in default". No other package reads this
	// field; ncube.Context applies its own built-in limit of 64.
	MaxRecursionDepth int `yaml:"maxRecursionDepth"`

	// DefaultFireAll is the configured default fireAll policy for RULE
	// axes. No other package reads this field; NewAxis leaves FireAll
	// false and callers set Axis.FireAll directly.
	DefaultFireAll bool `yaml:"defaultFireAll"`

	// LogLevel is parsed with logrus.ParseLevel; empty means "info".
	LogLevel string `yaml:"logLevel"`
}

// Default returns the engine's built-in configuration.
func Default() Config {
	return Config{
		MaxRecursionDepth: 64,
		DefaultFireAll:    true,
		LogLevel:          "info",
	}
}

// Load reads and parses a YAML config file, filling unset fields from
// Default.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxRecursionDepth == 0 {
		cfg.MaxRecursionDepth = 64
	}
	return cfg, nil
}

// Logger builds a logrus logger honoring LogLevel, falling back to Info
// on an unparseable level.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
