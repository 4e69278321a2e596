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
)

// ✏️ ReplacementSpec is the text inserted in place of each match.
//
// A template expands substitution tokens when the search pattern is a regex:
//
//	$$      a literal "$"
//	$&      the whole match
//	$`      the text before the match
//	$'      the text after the match
//	$n $nn  capture group 1-99; the two digit form wins when that group exists
//	$<name> a named capture group
//
// Groups are numbered by the position of their opening parenthesis, named or not.
// Unmatched groups expand to "". Tokens naming groups the pattern does not have are
// kept as written. With a literal pattern only $$, $&, $` and $' expand. A literal
// spec is inserted verbatim.
type ReplacementSpec struct {
	Text    string
	Literal bool
}

// Template returns a ReplacementSpec that expands substitution tokens
func Template(s string) ReplacementSpec {
	return ReplacementSpec{Text: s}
}

// Verbatim returns a ReplacementSpec inserted without any expansion
func Verbatim(s string) ReplacementSpec {
	return ReplacementSpec{Text: s, Literal: true}
}

func (s ReplacementSpec) String() string {
	return s.Text
}

// groups resolves capture references for one regex match
type groups struct {
	contents string
	offsets  []int
	m        *regexp2.Match
	order    []int // group number by position, order[0] unused
	named    bool
}

// expand writes tmpl for the match spanning contents[start:end]. g is nil for
// literal patterns, which leaves group tokens as written.
func expand(b *strings.Builder, tmpl, contents string, start, end int, g *groups) {
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 == len(tmpl) {
			b.WriteByte(c)
			continue
		}

		next := tmpl[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(contents[start:end])
			i++
		case next == '`':
			b.WriteString(contents[:start])
			i++
		case next == '\'':
			b.WriteString(contents[end:])
			i++
		case g != nil && isDigit(next):
			n, width := groupRef(tmpl[i+1:], len(g.order)-1)
			if width == 0 {
				b.WriteByte('$')
				continue
			}
			g.write(b, g.m.GroupByNumber(g.order[n]))
			i += width
		case g != nil && next == '<' && g.named:
			gt := strings.IndexByte(tmpl[i+2:], '>')
			if gt < 0 {
				b.WriteByte('$')
				continue
			}
			name := tmpl[i+2 : i+2+gt]
			g.write(b, g.m.GroupByName(name))
			i += gt + 2
		default:
			b.WriteByte('$')
		}
	}
}

// groupRef resolves the digits following a "$" to a group position and the number of
// digits consumed. A width of zero means the token stays literal.
func groupRef(s string, count int) (int, int) {
	first := int(s[0] - '0')
	if len(s) > 1 && isDigit(s[1]) {
		if nn := first*10 + int(s[1]-'0'); nn >= 1 && nn <= count {
			return nn, 2
		}
	}
	if first >= 1 && first <= count {
		return first, 1
	}
	return 0, 0
}

func (g *groups) write(b *strings.Builder, grp *regexp2.Group) {
	if grp == nil || len(grp.Captures) == 0 {
		return
	}
	b.WriteString(captureText(g.contents, g.offsets, grp.Capture))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
