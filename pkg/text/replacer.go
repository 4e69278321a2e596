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
)

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the output differs from the input
	WasModified bool

	// ReplacementCount is the number of matches substituted
	ReplacementCount int

	// OriginalContent is the content before replacement
	OriginalContent []byte

	// ModifiedContent is the content after replacement
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceString runs one find/replace pass over contents
	ReplaceString(contents string) (string, error)

	// ReplaceText reads content fully and replaces it, reporting what changed
	ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error)
}

var _ TextReplacer = (*Replacer)(nil)
