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
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL.
//
//	rule "version" {
//	  include = ["src/**/*.ts"]
//	  options {
//	    search  = { regex = "__VERSION__", flags = "g" }
//	    replace = "1.2.3"
//	  }
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclOptions struct {
		Body hcl.Body `hcl:",remain"`
	}

	type hclConfig struct {
		Rules []struct {
			Name    string      `hcl:"name,label"`
			Include []string    `hcl:"include,optional"`
			Exclude []string    `hcl:"exclude,optional"`
			Options *hclOptions `hcl:"options,block"`
		} `hcl:"rule,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{}
	for _, r := range hclCfg.Rules {
		rule := &Rule{
			Name:    r.Name,
			Include: r.Include,
			Exclude: r.Exclude,
		}

		if r.Options != nil {
			attrs, diags := r.Options.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, errors.Errorf("decoding HCL rule %q options: %s", r.Name, diags.Error())
			}

			rule.Options = make(map[string]any, len(attrs))
			for name, attr := range attrs {
				val, diags := attr.Expr.Value(evalCtx)
				if diags.HasErrors() {
					return nil, errors.Errorf("evaluating HCL rule %q option %q: %s", r.Name, name, diags.Error())
				}
				v, err := ctyToAny(val)
				if err != nil {
					return nil, errors.Errorf("converting HCL rule %q option %q: %w", r.Name, name, err)
				}
				rule.Options[name] = v
			}
		}

		cfg.Rules = append(cfg.Rules, rule)
	}

	return cfg, nil
}

// ctyToAny converts an evaluated HCL value into the untyped shapes the option parser expects
func ctyToAny(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.Errorf("value is not known")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case t.IsObjectType() || t.IsMapType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			conv, err := ctyToAny(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = conv
		}
		return out, nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var out []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			conv, err := ctyToAny(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported value type %s", t.FriendlyName())
	}
}
