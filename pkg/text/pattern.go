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

package text

import (
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidFlags is returned for unknown or repeated regex flags
	ErrInvalidFlags = errors.New("invalid regular expression flags")

	// ErrInvalidPattern is returned when a regular expression does not compile
	ErrInvalidPattern = errors.New("invalid regular expression")
)

// 🚩 Flags are the ECMAScript-style modifiers of a regex pattern
type Flags struct {
	Indices    bool // d
	Global     bool // g
	IgnoreCase bool // i
	Multiline  bool // m
	DotAll     bool // s
	Unicode    bool // u
	Sticky     bool // y
}

// 🔍 ParseFlags parses a flag string such as "gi"
func ParseFlags(s string) (Flags, error) {
	var f Flags
	seen := map[rune]bool{}
	for _, c := range s {
		if seen[c] {
			return Flags{}, errors.Errorf("%w: duplicate flag %q in %q", ErrInvalidFlags, c, s)
		}
		seen[c] = true

		switch c {
		case 'd':
			f.Indices = true
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		case 'y':
			f.Sticky = true
		default:
			return Flags{}, errors.Errorf("%w: unsupported flag %q in %q", ErrInvalidFlags, c, s)
		}
	}
	return f, nil
}

// String returns the flags in canonical order
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range []struct {
		set bool
		c   byte
	}{
		{f.Indices, 'd'},
		{f.Global, 'g'},
		{f.IgnoreCase, 'i'},
		{f.Multiline, 'm'},
		{f.DotAll, 's'},
		{f.Unicode, 'u'},
		{f.Sticky, 'y'},
	} {
		if fl.set {
			b.WriteByte(fl.c)
		}
	}
	return b.String()
}

func (f Flags) options() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	if f.DotAll {
		opts |= regexp2.Singleline
	}
	if f.Unicode {
		opts |= regexp2.Unicode
	}
	return opts
}

// 🎯 Pattern identifies the text to replace: a literal substring or a compiled regex.
// The zero value is not usable; build one with Literal or Compile.
type Pattern struct {
	literal string
	source  string
	flags   Flags
	re      *regexp2.Regexp
	order   []int
	named   bool
}

// Literal returns a pattern matching s exactly
func Literal(s string) Pattern {
	return Pattern{literal: s}
}

// Compile parses an ECMAScript regular expression with the given flags
func Compile(source, flags string) (Pattern, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return Pattern{}, err
	}

	re, err := regexp2.Compile(source, f.options())
	if err != nil {
		return Pattern{}, errors.Errorf("%w /%s/: %s", ErrInvalidPattern, source, err.Error())
	}

	p := Pattern{source: source, flags: f, re: re}
	p.order, p.named = groupOrder(source, re)
	return p, nil
}

// groupOrder maps each capturing group, numbered by the position of its opening
// parenthesis, to the number regexp2 gave it. regexp2 numbers named groups after
// all unnamed ones. order[0] is the whole match.
func groupOrder(source string, re *regexp2.Regexp) ([]int, bool) {
	order := []int{0}
	named := false
	unnamed := 0
	inClass := false

	for i := 0; i < len(source); i++ {
		switch c := source[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c != '(':
		case !strings.HasPrefix(source[i+1:], "?"):
			unnamed++
			order = append(order, unnamed)
		case strings.HasPrefix(source[i+1:], "?<") &&
			!strings.HasPrefix(source[i+1:], "?<=") &&
			!strings.HasPrefix(source[i+1:], "?<!"):
			end := strings.IndexByte(source[i+3:], '>')
			if end < 0 {
				continue
			}
			named = true
			order = append(order, re.GroupNumberFromName(source[i+3:i+3+end]))
		}
	}
	return order, named
}

// MustCompile is like Compile but panics on error
func MustCompile(source, flags string) Pattern {
	p, err := Compile(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// IsRegexp reports whether the pattern is a regular expression
func (p Pattern) IsRegexp() bool {
	return p.re != nil
}

// Flags returns the regex flags; always zero for literal patterns
func (p Pattern) Flags() Flags {
	return p.flags
}

// String renders the pattern the way it would be written in a build config
func (p Pattern) String() string {
	if p.re == nil {
		return p.literal
	}
	return "/" + p.source + "/" + p.flags.String()
}
