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
	"os"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"github.com/walteh/replacerc/pkg/esbuild"
	"github.com/walteh/replacerc/pkg/log"
)

var formats = map[string]api.Format{
	"esm":  api.FormatESModule,
	"cjs":  api.FormatCommonJS,
	"iife": api.FormatIIFE,
}

// NewBuildCmd creates a new build command
func NewBuildCmd(o *opts.RootOpts) *cobra.Command {
	var (
		outdir  string
		outfile string
		bundle  bool
		minify  bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "build <entry>...",
		Short: "Run esbuild with the rules applied to every loaded file",
		Long: `Build runs esbuild on the entry points. Every file esbuild loads from disk that
a rule selects is transformed before esbuild parses it. Without --outdir or
--outfile the output is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if outdir != "" && outfile != "" {
				return errors.New("--outdir and --outfile are mutually exclusive")
			}
			f, ok := formats[strings.ToLower(format)]
			if !ok {
				return errors.Errorf("unknown format %q (want esm, cjs or iife)", format)
			}

			cfg, err := o.Config(ctx)
			if err != nil {
				return err
			}

			wd, err := os.Getwd()
			if err != nil {
				return errors.Errorf("getting working directory: %w", err)
			}

			write := outdir != "" || outfile != ""
			result := api.Build(api.BuildOptions{
				EntryPoints:       args,
				AbsWorkingDir:     wd,
				Outdir:            outdir,
				Outfile:           outfile,
				Bundle:            bundle,
				Format:            f,
				MinifyWhitespace:  minify,
				MinifyIdentifiers: minify,
				MinifySyntax:      minify,
				Write:             write,
				LogLevel:          api.LogLevelSilent,
				Plugins:           []api.Plugin{esbuild.NewPlugin(cfg, esbuild.WithRoot(wd), esbuild.WithContext(ctx))},
			})

			console := log.FromContext(ctx)
			for _, msg := range api.FormatMessages(result.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage}) {
				console.Warning(strings.TrimSpace(msg))
			}
			if len(result.Errors) > 0 {
				for _, msg := range api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage}) {
					console.Error(strings.TrimSpace(msg))
				}
				return errors.Errorf("esbuild failed with %d error(s)", len(result.Errors))
			}

			if !write {
				for _, file := range result.OutputFiles {
					if _, err := cmd.OutOrStdout().Write(file.Contents); err != nil {
						return errors.Errorf("writing output: %w", err)
					}
				}
				return nil
			}

			for _, file := range result.OutputFiles {
				console.Successf("wrote %s", file.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outdir, "outdir", "", "output directory")
	cmd.Flags().StringVar(&outfile, "outfile", "", "output file")
	cmd.Flags().BoolVar(&bundle, "bundle", false, "bundle imports into the output")
	cmd.Flags().BoolVar(&minify, "minify", false, "minify the output")
	cmd.Flags().StringVar(&format, "format", "esm", "output format: esm, cjs or iife")

	return cmd
}
