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

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"github.com/walteh/replacerc/pkg/log"
	"github.com/walteh/replacerc/pkg/operation"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var (
		root        string
		write       bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the rules to a directory tree",
		Long: `Apply walks the root directory and runs the first matching rule over each file.
It will:
1. Load and validate the rules file
2. Select files with each rule's include/exclude globs
3. Replace text in every selected file
4. Write modified files back when --write is set`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.FromContext(ctx)

			cfg, err := o.Config(ctx)
			if err != nil {
				return err
			}

			console.Header("applying rules")
			console.StartRun(ctx, log.RunOperation{Root: root, Config: cfg.Location(), Write: write})

			results, err := operation.Apply(ctx, operation.Options{
				Root:        root,
				Config:      cfg,
				Write:       write,
				Concurrency: concurrency,
			})
			if err != nil {
				console.EndRun(ctx)
				return errors.Errorf("applying rules: %w", err)
			}

			for _, r := range results {
				console.LogFileOperation(ctx, log.FileOperation{
					Path:         r.Path,
					Rule:         r.Rule,
					Status:       statusText(r),
					IsModified:   r.IsModified(),
					IsWritten:    r.Written,
					Replacements: r.Replacements,
				})
			}
			modified := console.EndRun(ctx)

			console.LogNewline()
			console.Successf("%d file(s) checked, %d modified", len(results), modified)
			if modified > 0 && !write {
				console.Info("dry run, use --write to save changes")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory rule globs are matched against")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write modified files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "files processed at once (default: number of CPUs)")

	return cmd
}

func statusText(r operation.FileResult) string {
	if !r.IsModified() {
		return "no change"
	}
	return fmt.Sprintf("%d replaced", r.Replacements)
}
