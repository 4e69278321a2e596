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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMissingOption is wrapped when a required option is absent
	ErrMissingOption = errors.New("missing required option")

	// ErrUnknownOption is wrapped when an option is not recognized
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidOption is wrapped when an option has the wrong shape or value
	ErrInvalidOption = errors.New("invalid option")
)

// ❌ ConfigurationError reports a missing or malformed transform option.
// The build should fail for the affected file; it is never retried.
type ConfigurationError struct {
	Resource string // file being transformed, empty when raised at load time
	Option   string // dotted option path, e.g. "search.flags"
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("configuration error: option %q: %v", e.Option, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: option %q: %v", e.Resource, e.Option, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func optionError(option string, err error) *ConfigurationError {
	return &ConfigurationError{Option: option, Err: err}
}

// IsConfigurationError reports whether err carries a ConfigurationError
func IsConfigurationError(err error) bool {
	var cerr *ConfigurationError
	return errors.As(err, &cerr)
}
