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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	ruleWidth   = 15 // Width for rule name
	statusWidth = 15 // Width for status text
)

// 🎯 FileOperation represents one transformed file for logging
type FileOperation struct {
	Path         string // File path relative to the root
	Rule         string // Name of the rule that selected the file
	Status       string // Operation status
	IsModified   bool   // Whether the transform changed the contents
	IsWritten    bool   // Whether the change was written to disk
	Replacements int    // Number of replacements made
}

// 📦 RunOperation represents one pass over a tree for logging
type RunOperation struct {
	Root   string // Directory the rules are matched against
	Config string // Rules file in use
	Write  bool   // Whether changes are written back
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	errConsole io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	operations []FileOperation
}

// 🏭 New creates a new logger that prints to console and mirrors every line to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:       zlog,
		console:    console,
		errConsole: console,
		mu:         sync.Mutex{},
	}
}

// WithErrorOutput sends warnings and errors to w instead of the console
func (l *Logger) WithErrorOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errConsole = w
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsWritten:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*s", ruleWidth, op.Rule)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("rule", op.Rule).
		Str("status", op.Status).
		Bool("is_modified", op.IsModified).
		Bool("is_written", op.IsWritten).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 StartRun starts a new pass over a tree
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.operations = nil

	mode := "dry run"
	if op.Write {
		mode = "write"
	}

	fmt.Fprintf(l.console, "[applying %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Config),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("root", op.Root).
		Str("config", op.Config).
		Bool("write", op.Write).
		Msg("starting run")
}

// 📝 EndRun ends the current run and returns how many files were modified
func (l *Logger) EndRun(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return 0
	}

	modified := 0
	for _, op := range l.operations {
		if op.IsModified {
			modified++
		}
	}

	l.zlog.Info().
		Str("root", l.currentRun.Root).
		Int("files", len(l.operations)).
		Int("modified", modified).
		Msg("run complete")

	l.currentRun = nil
	l.operations = nil
	return modified
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("replacerc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}
// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.errConsole, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.errConsole, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
