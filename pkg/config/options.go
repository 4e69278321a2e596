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
	"sort"

	"github.com/walteh/replacerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	OptionSearch  = "search"
	OptionReplace = "replace"
)

// 🔧 TransformConfig is the resolved, validated form of a rule's options
type TransformConfig struct {
	Search  text.Pattern
	Replace text.ReplacementSpec
}

// Replacer returns a text replacer for this config
func (c *TransformConfig) Replacer() *text.Replacer {
	return text.NewReplacer(c.Search, c.Replace)
}

// 🎯 ParseTransformConfig resolves untyped host options into a TransformConfig.
//
// Accepted shapes:
//
//	search:  "text" | {literal: "text"} | {regex: "src", flags: "g"}
//	replace: "template" | {template: "template"} | {literal: "text"}
//
// Anything else, including extra keys, is a *ConfigurationError.
func ParseTransformConfig(opts map[string]any) (*TransformConfig, error) {
	if err := onlyKeys("", opts, OptionSearch, OptionReplace); err != nil {
		return nil, err
	}

	rawSearch, ok := opts[OptionSearch]
	if !ok || rawSearch == nil {
		return nil, optionError(OptionSearch, ErrMissingOption)
	}
	rawReplace, ok := opts[OptionReplace]
	if !ok || rawReplace == nil {
		return nil, optionError(OptionReplace, ErrMissingOption)
	}

	search, err := parseSearch(rawSearch)
	if err != nil {
		return nil, err
	}

	replace, err := parseReplace(rawReplace)
	if err != nil {
		return nil, err
	}

	return &TransformConfig{Search: search, Replace: replace}, nil
}

func parseSearch(raw any) (text.Pattern, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return text.Pattern{}, optionError(OptionSearch, errors.Errorf("%w: must not be empty", ErrInvalidOption))
		}
		return text.Literal(v), nil
	case map[string]any:
		if err := onlyKeys(OptionSearch, v, "literal", "regex", "flags"); err != nil {
			return text.Pattern{}, err
		}

		literal, hasLiteral, err := stringField(OptionSearch, v, "literal")
		if err != nil {
			return text.Pattern{}, err
		}
		source, hasRegex, err := stringField(OptionSearch, v, "regex")
		if err != nil {
			return text.Pattern{}, err
		}
		flags, hasFlags, err := stringField(OptionSearch, v, "flags")
		if err != nil {
			return text.Pattern{}, err
		}

		switch {
		case hasLiteral && hasRegex:
			return text.Pattern{}, optionError(OptionSearch, errors.Errorf("%w: literal and regex are mutually exclusive", ErrInvalidOption))
		case hasLiteral:
			if hasFlags {
				return text.Pattern{}, optionError(OptionSearch+".flags", errors.Errorf("%w: flags require regex", ErrInvalidOption))
			}
			if literal == "" {
				return text.Pattern{}, optionError(OptionSearch+".literal", errors.Errorf("%w: must not be empty", ErrInvalidOption))
			}
			return text.Literal(literal), nil
		case hasRegex:
			p, err := text.Compile(source, flags)
			if err != nil {
				option := OptionSearch + ".regex"
				if errors.Is(err, text.ErrInvalidFlags) {
					option = OptionSearch + ".flags"
				}
				return text.Pattern{}, optionError(option, err)
			}
			return p, nil
		default:
			return text.Pattern{}, optionError(OptionSearch, errors.Errorf("%w: one of literal or regex is required", ErrMissingOption))
		}
	default:
		return text.Pattern{}, optionError(OptionSearch, errors.Errorf("%w: expected string or object, got %T", ErrInvalidOption, raw))
	}
}

func parseReplace(raw any) (text.ReplacementSpec, error) {
	switch v := raw.(type) {
	case string:
		return text.Template(v), nil
	case map[string]any:
		if err := onlyKeys(OptionReplace, v, "literal", "template"); err != nil {
			return text.ReplacementSpec{}, err
		}

		literal, hasLiteral, err := stringField(OptionReplace, v, "literal")
		if err != nil {
			return text.ReplacementSpec{}, err
		}
		tmpl, hasTemplate, err := stringField(OptionReplace, v, "template")
		if err != nil {
			return text.ReplacementSpec{}, err
		}

		switch {
		case hasLiteral && hasTemplate:
			return text.ReplacementSpec{}, optionError(OptionReplace, errors.Errorf("%w: literal and template are mutually exclusive", ErrInvalidOption))
		case hasLiteral:
			return text.Verbatim(literal), nil
		case hasTemplate:
			return text.Template(tmpl), nil
		default:
			return text.ReplacementSpec{}, optionError(OptionReplace, errors.Errorf("%w: one of literal or template is required", ErrMissingOption))
		}
	default:
		return text.ReplacementSpec{}, optionError(OptionReplace, errors.Errorf("%w: expected string or object, got %T", ErrInvalidOption, raw))
	}
}

func onlyKeys(prefix string, m map[string]any, allowed ...string) error {
	var unknown []string
	for k := range m {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	option := unknown[0]
	if prefix != "" {
		option = prefix + "." + option
	}
	return optionError(option, ErrUnknownOption)
}

func stringField(prefix string, m map[string]any, key string) (string, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, optionError(prefix+"."+key, errors.Errorf("%w: expected string, got %T", ErrInvalidOption, raw))
	}
	return s, true, nil
}
