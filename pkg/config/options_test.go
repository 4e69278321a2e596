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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/pkg/text"
)

// 🧪 TestParseTransformConfig tests option resolution and validation
func TestParseTransformConfig(t *testing.T) {
	tests := []struct {
		name        string
		opts        map[string]any
		wantSearch  string
		wantRegexp  bool
		wantReplace text.ReplacementSpec
		wantOption  string
		wantErr     error
	}{
		{
			name:        "literal_strings",
			opts:        map[string]any{"search": "world", "replace": "there"},
			wantSearch:  "world",
			wantReplace: text.Template("there"),
		},
		{
			name: "regex_object",
			opts: map[string]any{
				"search":  map[string]any{"regex": `x=(\d)`, "flags": "g"},
				"replace": "y=$1",
			},
			wantSearch:  `/x=(\d)/g`,
			wantRegexp:  true,
			wantReplace: text.Template("y=$1"),
		},
		{
			name: "literal_object_and_verbatim_replace",
			opts: map[string]any{
				"search":  map[string]any{"literal": "$x"},
				"replace": map[string]any{"literal": "$1"},
			},
			wantSearch:  "$x",
			wantReplace: text.Verbatim("$1"),
		},
		{
			name: "template_object",
			opts: map[string]any{
				"search":  map[string]any{"regex": "a"},
				"replace": map[string]any{"template": "[$&]"},
			},
			wantSearch:  "/a/",
			wantRegexp:  true,
			wantReplace: text.Template("[$&]"),
		},
		{
			name:        "empty_replace_is_allowed",
			opts:        map[string]any{"search": "x", "replace": ""},
			wantSearch:  "x",
			wantReplace: text.Template(""),
		},
		{
			name:       "nil_options",
			opts:       nil,
			wantOption: "search",
			wantErr:    ErrMissingOption,
		},
		{
			name:       "missing_search",
			opts:       map[string]any{"replace": "x"},
			wantOption: "search",
			wantErr:    ErrMissingOption,
		},
		{
			name:       "missing_replace",
			opts:       map[string]any{"search": "x"},
			wantOption: "replace",
			wantErr:    ErrMissingOption,
		},
		{
			name:       "unknown_option",
			opts:       map[string]any{"search": "x", "replace": "y", "flags": "g"},
			wantOption: "flags",
			wantErr:    ErrUnknownOption,
		},
		{
			name:       "unknown_search_key",
			opts:       map[string]any{"search": map[string]any{"regex": "x", "global": true}, "replace": "y"},
			wantOption: "search.global",
			wantErr:    ErrUnknownOption,
		},
		{
			name:       "empty_literal_search",
			opts:       map[string]any{"search": "", "replace": "y"},
			wantOption: "search",
			wantErr:    ErrInvalidOption,
		},
		{
			name:       "wrong_search_type",
			opts:       map[string]any{"search": 42, "replace": "y"},
			wantOption: "search",
			wantErr:    ErrInvalidOption,
		},
		{
			name:       "wrong_replace_type",
			opts:       map[string]any{"search": "x", "replace": []any{"y"}},
			wantOption: "replace",
			wantErr:    ErrInvalidOption,
		},
		{
			name:       "literal_and_regex",
			opts:       map[string]any{"search": map[string]any{"regex": "x", "literal": "x"}, "replace": "y"},
			wantOption: "search",
			wantErr:    ErrInvalidOption,
		},
		{
			name:       "flags_without_regex",
			opts:       map[string]any{"search": map[string]any{"literal": "x", "flags": "g"}, "replace": "y"},
			wantOption: "search.flags",
			wantErr:    ErrInvalidOption,
		},
		{
			name:       "invalid_regex",
			opts:       map[string]any{"search": map[string]any{"regex": "(unclosed"}, "replace": "y"},
			wantOption: "search.regex",
			wantErr:    text.ErrInvalidPattern,
		},
		{
			name:       "invalid_flags",
			opts:       map[string]any{"search": map[string]any{"regex": "x", "flags": "gz"}, "replace": "y"},
			wantOption: "search.flags",
			wantErr:    text.ErrInvalidFlags,
		},
		{
			name:       "non_string_flags",
			opts:       map[string]any{"search": map[string]any{"regex": "x", "flags": true}, "replace": "y"},
			wantOption: "search.flags",
			wantErr:    ErrInvalidOption,
		},
		{
			name:       "empty_search_object",
			opts:       map[string]any{"search": map[string]any{}, "replace": "y"},
			wantOption: "search",
			wantErr:    ErrMissingOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := ParseTransformConfig(tt.opts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var cerr *ConfigurationError
				require.True(t, errors.As(err, &cerr), "should be a ConfigurationError")
				assert.Equal(t, tt.wantOption, cerr.Option)
				assert.True(t, IsConfigurationError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSearch, tc.Search.String())
			assert.Equal(t, tt.wantRegexp, tc.Search.IsRegexp())
			assert.Equal(t, tt.wantReplace, tc.Replace)
		})
	}
}

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{Option: "search", Err: ErrMissingOption}
	assert.Equal(t, `configuration error: option "search": missing required option`, err.Error())

	err.Resource = "src/index.js"
	assert.Equal(t, `configuration error in src/index.js: option "search": missing required option`, err.Error())
	assert.ErrorIs(t, err, ErrMissingOption)
}

func TestTransformConfig_Replacer(t *testing.T) {
	tc, err := ParseTransformConfig(map[string]any{
		"search":  map[string]any{"regex": `x=(\d)`, "flags": "g"},
		"replace": "y=$1",
	})
	require.NoError(t, err)

	out, err := tc.Replacer().ReplaceString("x=1;x=2;")
	require.NoError(t, err)
	assert.Equal(t, "y=1;y=2;", out)
}
