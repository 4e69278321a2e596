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

package main

import (
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/cmd/replacerc/commands"
	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"github.com/walteh/replacerc/pkg/log"
)

const (
	defaultConfigFile = ".replacerc.yaml"
	configEnv         = "REPLACERC_CONFIG"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "replacerc",
		Short: "Replace text in source files using search/replace rules",
		Long: `replacerc applies search/replace rules to source files.
Rules pair include/exclude globs with a search pattern (a literal string or a
regular expression with flags) and a replacement. They run over a directory
tree with "apply" or inside an esbuild build with "build".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("config") {
				if env := os.Getenv(configEnv); env != "" {
					rootOpts.ConfigFile = env
				}
			}

			zlog := setupLogging(rootOpts.Debug)
			ctx := zlog.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), zlog).WithErrorOutput(cmd.ErrOrStderr()))
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewCheckCmd(rootOpts),
		commands.NewApplyCmd(rootOpts),
		commands.NewBuildCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", defaultConfigFile, "rules file path (env "+configEnv+")")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the zerolog logger for the flags
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// loadEnv reads .env from the working directory when one exists
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("loading .env: %w", err)
	}
	return nil
}
