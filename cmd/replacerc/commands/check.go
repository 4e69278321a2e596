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
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"github.com/walteh/replacerc/pkg/log"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the rules file",
		Long: `Check loads the rules file, validates every glob and resolves every rule's
search and replace options, then prints the rules in the order they are tried.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.Config(cmd.Context())
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Rule", "Include", "Exclude", "Search", "Replace"}}
			for _, rule := range cfg.Rules {
				tc := rule.Transform()
				data = append(data, []string{
					rule.Name,
					strings.Join(rule.Include, ", "),
					strings.Join(rule.Exclude, ", "),
					tc.Search.String(),
					tc.Replace.String(),
				})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)

			log.FromContext(cmd.Context()).Successf("%d rule(s) valid in %s", len(cfg.Rules), cfg.Location())
			return nil
		},
	}
}
