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

package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/replacerc/pkg/config"
)

// 📊 FileStatus is the outcome of transforming one file
type FileStatus int

const (
	StatusUnchanged FileStatus = iota // no replacement changed the contents
	StatusModified                    // contents differ after the transform
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	default:
		return "unchanged"
	}
}

// DefaultIgnore keeps the walk out of VCS metadata and installed packages
var DefaultIgnore = config.DefaultIgnore

// 🔧 Options contains configuration for Apply
type Options struct {
	// Root is the directory rule globs are matched against
	Root string
	// Config holds the rules
	Config *config.Config
	// Write replaces modified files on disk
	Write bool
	// Concurrency bounds the files processed at once, defaults to the CPU count
	Concurrency int
	// Ignore globs are skipped before any rule is consulted, defaults to DefaultIgnore
	Ignore []string
}

// 📄 FileResult describes what happened to one selected file
type FileResult struct {
	Path         string
	Rule         string
	Status       FileStatus
	Replacements int
	Written      bool
}

// IsModified reports whether the transform changed the file
func (r FileResult) IsModified() bool {
	return r.Status == StatusModified
}

type job struct {
	path string
	rule *config.Rule
}

// 🚀 Apply transforms every file under Root that a rule selects.
// Each file uses the first rule that matches it. Results are sorted by path.
func Apply(ctx context.Context, opts Options) ([]FileResult, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}

	jobs, err := collect(os.DirFS(root), opts.Config, ignore)
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	logger.Debug().Str("root", root).Int("files", len(jobs)).Msg("selected files")

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]FileResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, j := range jobs {
		g.Go(func() error {
			res, err := processFile(gctx, root, j, opts.Write)
			if err != nil {
				return errors.Errorf("processing %s: %w", j.path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// collect lists the files a rule selects, sorted by path
func collect(fsys fs.FS, cfg *config.Config, ignore []string) ([]job, error) {
	var jobs []job
	err := doublestar.GlobWalk(fsys, "**", func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if config.MatchAny(ignore, path) {
			return nil
		}
		if rule, ok := cfg.Match(path); ok {
			jobs = append(jobs, job{path: path, rule: rule})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(jobs, func(a, b int) bool {
		return jobs[a].path < jobs[b].path
	})
	return jobs, nil
}

func processFile(ctx context.Context, root string, j job, write bool) (FileResult, error) {
	logger := zerolog.Ctx(ctx)
	abs := filepath.Join(root, filepath.FromSlash(j.path))

	f, err := os.Open(abs)
	if err != nil {
		return FileResult{}, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	res, err := j.rule.Transform().Replacer().ReplaceText(ctx, f)
	if err != nil {
		return FileResult{}, errors.Errorf("replacing text: %w", err)
	}

	out := FileResult{
		Path:         j.path,
		Rule:         j.rule.Name,
		Status:       StatusUnchanged,
		Replacements: res.ReplacementCount,
	}
	if res.WasModified {
		out.Status = StatusModified
	}

	logger.Debug().
		Str("path", j.path).
		Str("rule", j.rule.Name).
		Int("replacements", res.ReplacementCount).
		Bool("modified", res.WasModified).
		Msg("transformed file")

	if write && res.WasModified {
		if err := writeFileAtomic(abs, []byte(res.ModifiedContent)); err != nil {
			return FileResult{}, err
		}
		out.Written = true
	}

	return out, nil
}
