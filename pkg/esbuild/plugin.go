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

// Package esbuild runs the replace loader inside esbuild builds.
package esbuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/pkg/cache"
	"github.com/walteh/replacerc/pkg/config"
	"github.com/walteh/replacerc/pkg/loader"
)

// PluginName is the name esbuild reports in messages from this plugin
const PluginName = "replacerc"

var loaders = map[string]api.Loader{
	".js":   api.LoaderJS,
	".mjs":  api.LoaderJS,
	".cjs":  api.LoaderJS,
	".jsx":  api.LoaderJSX,
	".ts":   api.LoaderTS,
	".mts":  api.LoaderTS,
	".cts":  api.LoaderTS,
	".tsx":  api.LoaderTSX,
	".css":  api.LoaderCSS,
	".json": api.LoaderJSON,
	".txt":  api.LoaderText,
}

// textLoaders are the loaders whose input is source text the rules can rewrite
var textLoaders = map[api.Loader]bool{
	api.LoaderJS:        true,
	api.LoaderJSX:       true,
	api.LoaderTS:        true,
	api.LoaderTSX:       true,
	api.LoaderCSS:       true,
	api.LoaderLocalCSS:  true,
	api.LoaderGlobalCSS: true,
	api.LoaderJSON:      true,
	api.LoaderText:      true,
}

// Option configures the plugin
type Option func(*plugin)

// WithRoot sets the directory rule globs are matched against.
// Defaults to the build's working directory.
func WithRoot(root string) Option {
	return func(p *plugin) {
		p.root = root
	}
}

// WithCache shares a result cache between builds
func WithCache(store *cache.Store) Option {
	return func(p *plugin) {
		p.cache = store
	}
}

// WithIgnore replaces the globs skipped before any rule is consulted.
// Defaults to config.DefaultIgnore.
func WithIgnore(globs ...string) Option {
	return func(p *plugin) {
		p.ignore = globs
	}
}

// WithContext sets the context carrying the plugin's logger
func WithContext(ctx context.Context) Option {
	return func(p *plugin) {
		p.ctx = ctx
	}
}

type plugin struct {
	cfg    *config.Config
	root   string
	ignore []string
	cache  *cache.Store
	ctx    context.Context
}

// 🔌 NewPlugin returns an esbuild plugin that transforms every file a rule in cfg selects.
// Files no rule selects, ignored files and files esbuild does not load as text are
// left to esbuild.
func NewPlugin(cfg *config.Config, opts ...Option) api.Plugin {
	p := &plugin{
		cfg:    cfg,
		ignore: config.DefaultIgnore,
		cache:  cache.New(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			root := p.root
			var custom map[string]api.Loader
			if build.InitialOptions != nil {
				if root == "" {
					root = build.InitialOptions.AbsWorkingDir
				}
				custom = build.InitialOptions.Loader
			}
			if root == "" {
				root, _ = os.Getwd()
			}

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "file"}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return p.load(root, custom, args)
			})
		},
	}
}

func (p *plugin) load(root string, custom map[string]api.Loader, args api.OnLoadArgs) (api.OnLoadResult, error) {
	logger := zerolog.Ctx(p.ctx)

	rel, ok := relative(root, args.Path)
	if !ok || config.MatchAny(p.ignore, rel) {
		return api.OnLoadResult{}, nil
	}

	ldr, ok := loaderFor(args.Path, custom)
	if !ok {
		return api.OnLoadResult{}, nil
	}

	rule, ok := p.cfg.Match(rel)
	if !ok {
		return api.OnLoadResult{}, nil
	}

	data, err := os.ReadFile(args.Path)
	if err != nil {
		return api.OnLoadResult{}, errors.Errorf("reading %s: %w", rel, err)
	}

	key := cache.Key(rel, data, rule.Fingerprint())
	out, hit := p.cache.Get(key)
	if !hit {
		lctx := &loader.StaticContext{Resource: rel, Opts: rule.Options}
		out, err = loader.Load(lctx, string(data))
		if err != nil {
			return api.OnLoadResult{}, err
		}
		if lctx.IsCached {
			p.cache.Put(key, out)
		}
	}

	logger.Debug().
		Str("path", rel).
		Str("rule", rule.Name).
		Bool("cached", hit).
		Msg("transformed file")

	return api.OnLoadResult{
		Contents:   &out,
		ResolveDir: filepath.Dir(args.Path),
		Loader:     ldr,
		PluginName: PluginName,
	}, nil
}

// relative returns path relative to root when it lies inside it
func relative(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// loaderFor resolves the loader esbuild would use for path, preferring the build's
// own Loader option. It reports false for files that are not loaded as text.
func loaderFor(path string, custom map[string]api.Loader) (api.Loader, bool) {
	ext := filepath.Ext(path)
	l, ok := custom[ext]
	if !ok {
		l, ok = loaders[strings.ToLower(ext)]
	}
	if !ok || !textLoaders[l] {
		return api.LoaderNone, false
	}
	return l, true
}
