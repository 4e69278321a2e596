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

// Package loader is the entry point a build host calls once per matched file.
package loader

import (
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/pkg/config"
	"github.com/walteh/replacerc/pkg/text"
)

// 🔌 Context is the part of the host's loader context the transform uses
type Context interface {
	// ResourcePath is the file being transformed, used in diagnostics
	ResourcePath() string

	// Options returns the raw options configured for this file
	Options() map[string]any

	// Cacheable marks the result as a pure function of the file and its options
	Cacheable(flag bool)
}

// 🔄 Load replaces text in contents using the options the host supplies.
// Options are resolved before any text is touched; a bad option yields a
// *config.ConfigurationError carrying the resource path.
func Load(lctx Context, contents string) (string, error) {
	lctx.Cacheable(true)

	tc, err := config.ParseTransformConfig(lctx.Options())
	if err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			cerr.Resource = lctx.ResourcePath()
			return "", cerr
		}
		return "", errors.Errorf("resolving options for %s: %w", lctx.ResourcePath(), err)
	}

	out, err := text.Replace(contents, tc.Search, tc.Replace)
	if err != nil {
		return "", errors.Errorf("transforming %s: %w", lctx.ResourcePath(), err)
	}
	return out, nil
}

// 📦 StaticContext is a Context backed by fixed values, for hosts without one of their own
type StaticContext struct {
	Resource string
	Opts     map[string]any
	IsCached bool
}

func (c *StaticContext) ResourcePath() string { return c.Resource }

func (c *StaticContext) Options() map[string]any { return c.Opts }

func (c *StaticContext) Cacheable(flag bool) { c.IsCached = flag }

var _ Context = (*StaticContext)(nil)
