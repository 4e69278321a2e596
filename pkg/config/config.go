// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultInclude selects every file when a rule names no include globs
const DefaultInclude = "**/*"

// DefaultIgnore keeps hosts out of VCS metadata and installed packages
var DefaultIgnore = []string{"**/.git/**", "**/node_modules/**"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📏 Rule selects files by glob and carries the raw transform options for them
type Rule struct {
	Name    string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Include []string       `json:"include,omitempty" yaml:"include,omitempty" toml:"include,omitempty"`
	Exclude []string       `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	Options map[string]any `json:"options" yaml:"options" toml:"options"`

	transform *TransformConfig
}

// 📚 Config represents the complete configuration
type Config struct {
	Rules []*Rule `json:"rules" yaml:"rules" toml:"rules"`

	location string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("rules", len(cfg.Rules)).Msg("configuration loaded")
	return cfg, nil
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks every rule and resolves its transform options
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	for i, rule := range cfg.Rules {
		if rule == nil {
			return errors.Errorf("rules[%d]: rule is empty", i)
		}
		if rule.Name == "" {
			rule.Name = fmt.Sprintf("rule-%d", i)
		}
		if len(rule.Include) == 0 {
			rule.Include = []string{DefaultInclude}
		}

		for _, pattern := range append(append([]string{}, rule.Include...), rule.Exclude...) {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("rule %q: invalid glob %q", rule.Name, pattern)
			}
		}

		tc, err := ParseTransformConfig(rule.Options)
		if err != nil {
			return errors.Errorf("rule %q: %w", rule.Name, err)
		}
		rule.transform = tc
	}

	return nil
}

// 🔎 Match returns the first rule selecting path, which is relative and slash separated
func (cfg *Config) Match(path string) (*Rule, bool) {
	path = filepath.ToSlash(path)
	for _, rule := range cfg.Rules {
		if rule.Matches(path) {
			return rule, true
		}
	}
	return nil, false
}

// Matches reports whether the rule's globs select path
func (r *Rule) Matches(path string) bool {
	if !MatchAny(r.Include, path) {
		return false
	}
	return !MatchAny(r.Exclude, path)
}

// MatchAny reports whether any glob selects the relative, slash separated path
func MatchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Transform returns the options resolved by Validate
func (r *Rule) Transform() *TransformConfig {
	return r.transform
}

// Fingerprint is a stable digest of the rule's options
func (r *Rule) Fingerprint() string {
	// map keys are sorted by encoding/json, so equal options hash equally
	data, err := json.Marshal(r.Options)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", r.Options))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// 📝 String returns a string representation of the rule
func (r *Rule) String() string {
	s := r.Name + " [" + strings.Join(r.Include, ", ") + "]"
	if len(r.Exclude) > 0 {
		s += " !" + "[" + strings.Join(r.Exclude, ", ") + "]"
	}
	if r.transform != nil {
		s += ": " + r.transform.Search.String() + " -> " + r.transform.Replace.String()
	}
	return s
}
