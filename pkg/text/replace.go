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
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Replace performs a single find/replace pass over contents.
//
// A literal pattern replaces its first occurrence. A regex replaces its first match,
// or every non-overlapping match when the global flag is set.
func Replace(contents string, search Pattern, with ReplacementSpec) (string, error) {
	out, _, err := replace(contents, search, with)
	return out, err
}

func replace(contents string, search Pattern, spec ReplacementSpec) (string, int, error) {
	if search.re == nil {
		idx := strings.Index(contents, search.literal)
		if idx < 0 {
			return contents, 0, nil
		}
		end := idx + len(search.literal)
		if spec.Literal {
			return contents[:idx] + spec.Text + contents[end:], 1, nil
		}
		var b strings.Builder
		b.WriteString(contents[:idx])
		expand(&b, spec.Text, contents, idx, end, nil)
		b.WriteString(contents[end:])
		return b.String(), 1, nil
	}
	return replaceRegexp(contents, search, spec)
}

func replaceRegexp(contents string, search Pattern, spec ReplacementSpec) (string, int, error) {
	runes := []rune(contents)
	offsets := byteOffsets(contents, len(runes))

	var (
		b     strings.Builder
		last  int // rune index of the first rune not yet copied
		pos   int // rune index where the next search starts
		count int
	)

	for pos <= len(runes) {
		m, err := search.re.FindRunesMatchStartingAt(runes, pos)
		if err != nil {
			return "", 0, errors.Errorf("matching %s: %w", search, err)
		}
		if m == nil {
			break
		}
		if search.flags.Sticky && m.Index != pos {
			break
		}

		if count == 0 {
			b.Grow(len(contents))
		}
		b.WriteString(contents[offsets[last]:offsets[m.Index]])
		if spec.Literal {
			b.WriteString(spec.Text)
		} else {
			g := &groups{contents: contents, offsets: offsets, m: m, order: search.order, named: search.named}
			expand(&b, spec.Text, contents, offsets[m.Index], offsets[m.Index+m.Length], g)
		}
		count++

		last = m.Index + m.Length
		if !search.flags.Global {
			break
		}
		pos = last
		if m.Length == 0 {
			pos++
		}
	}

	if count == 0 {
		return contents, 0, nil
	}
	b.WriteString(contents[offsets[last]:])
	return b.String(), count, nil
}

// byteOffsets maps rune indexes of s to byte offsets; the extra final entry is len(s).
// Invalid UTF-8 bytes decode to one rune each, same as the []rune conversion.
func byteOffsets(s string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(offsets, len(s))
}

func captureText(contents string, offsets []int, c regexp2.Capture) string {
	return contents[offsets[c.Index]:offsets[c.Index+c.Length]]
}

// Replacer applies one search/replace pair to whole documents
type Replacer struct {
	Search  Pattern
	Replace ReplacementSpec
}

// NewReplacer creates a new Replacer
func NewReplacer(search Pattern, replace ReplacementSpec) *Replacer {
	return &Replacer{Search: search, Replace: replace}
}

// ReplaceString implements TextReplacer.ReplaceString
func (r *Replacer) ReplaceString(contents string) (string, error) {
	return Replace(contents, r.Search, r.Replace)
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	out, count, err := replace(string(originalContent), r.Search, r.Replace)
	if err != nil {
		return nil, err
	}

	result.ReplacementCount = count
	if out != string(originalContent) {
		result.WasModified = true
		result.ModifiedContent = []byte(out)
	}
	return result, nil
}
