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

package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/pkg/config"
)

// 🔧 MockContext is a mock implementation of the loader Context
type MockContext struct {
	mock.Mock
}

func (m *MockContext) ResourcePath() string {
	return m.Called().String(0)
}

func (m *MockContext) Options() map[string]any {
	result := m.Called()
	opts, _ := result.Get(0).(map[string]any)
	return opts
}

func (m *MockContext) Cacheable(flag bool) {
	m.Called(flag)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		opts     map[string]any
		want     string
	}{
		{
			name:     "literal",
			contents: "hello world",
			opts:     map[string]any{"search": "world", "replace": "there"},
			want:     "hello there",
		},
		{
			name:     "global_regex",
			contents: "aaa",
			opts:     map[string]any{"search": map[string]any{"regex": "a", "flags": "g"}, "replace": "b"},
			want:     "bbb",
		},
		{
			name:     "backreference",
			contents: "x=1;x=2;",
			opts:     map[string]any{"search": map[string]any{"regex": `x=(\d)`, "flags": "g"}, "replace": "y=$1"},
			want:     "y=1;y=2;",
		},
		{
			name:     "no_match",
			contents: "no match here",
			opts:     map[string]any{"search": "zzz", "replace": "yyy"},
			want:     "no match here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lctx := &MockContext{}
			lctx.On("Cacheable", true).Once()
			lctx.On("Options").Return(tt.opts).Once()
			lctx.On("ResourcePath").Return("src/index.js").Maybe()

			got, err := Load(lctx, tt.contents)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			lctx.AssertExpectations(t)
		})
	}
}

func TestLoad_ConfigurationError(t *testing.T) {
	tests := []struct {
		name       string
		opts       map[string]any
		wantOption string
	}{
		{
			name:       "missing_search",
			opts:       map[string]any{"replace": "yyy"},
			wantOption: "search",
		},
		{
			name:       "no_options",
			opts:       nil,
			wantOption: "search",
		},
		{
			name:       "invalid_regex",
			opts:       map[string]any{"search": map[string]any{"regex": "[a-"}, "replace": "b"},
			wantOption: "search.regex",
		},
		{
			name:       "unknown_option",
			opts:       map[string]any{"search": "a", "replace": "b", "cacheable": false},
			wantOption: "cacheable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lctx := &MockContext{}
			lctx.On("Cacheable", true).Once()
			lctx.On("Options").Return(tt.opts).Once()
			lctx.On("ResourcePath").Return("src/broken.js")

			got, err := Load(lctx, "some contents")
			require.Error(t, err)
			assert.Empty(t, got)

			var cerr *config.ConfigurationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, "src/broken.js", cerr.Resource)
			assert.Equal(t, tt.wantOption, cerr.Option)
			assert.Contains(t, err.Error(), "src/broken.js")
			lctx.AssertExpectations(t)
		})
	}
}

func TestLoad_Deterministic(t *testing.T) {
	opts := map[string]any{"search": map[string]any{"regex": `(\w+)@(\w+)`, "flags": "g"}, "replace": "$2 at $1"}
	contents := "alice@home bob@work"

	first, err := Load(&StaticContext{Resource: "a.txt", Opts: opts}, contents)
	require.NoError(t, err)
	second, err := Load(&StaticContext{Resource: "a.txt", Opts: opts}, contents)
	require.NoError(t, err)

	assert.Equal(t, "home at alice work at bob", first)
	assert.Equal(t, first, second)
}

func TestStaticContext(t *testing.T) {
	lctx := &StaticContext{Resource: "a.js", Opts: map[string]any{"search": "a", "replace": "b"}}
	assert.False(t, lctx.IsCached)

	_, err := Load(lctx, "a")
	require.NoError(t, err)
	assert.True(t, lctx.IsCached)
}
