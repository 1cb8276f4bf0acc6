// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// Both CLI and automation callers consume this interface, allowing seamless
// switching between human-readable output and structured logging.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with structured JSON output.
// It is meant for machine consumers (CI pipelines, log shippers) that parse
// verifier output line by line. It can be silenced entirely so that only the
// verification report reaches stdout.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewJSONLogger creates a new structured logger.
// Pass silent=true to suppress all log output, e.g. when stdout carries the
// machine-readable verification report and logs would corrupt it.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf formats and logs a structured message in JSON format.
// Output is suppressed if silent mode is enabled.
//
// Printf is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) Printf(format string, v ...any) {
	j.emit(fmt.Sprintf(format, v...))
}

// Println logs a structured message in JSON format.
// Output is suppressed if silent mode is enabled.
//
// Println is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) Println(v ...any) {
	j.emit(fmt.Sprint(v...))
}

func (j *JSONLogger) emit(msg string) {
	if j.silent {
		return
	}

	logEntry := map[string]any{
		"level":   "info",
		"message": msg,
	}

	data, _ := json.Marshal(logEntry)

	j.mu.Lock()
	fmt.Fprintln(j.writer, string(data))
	j.mu.Unlock()
}

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}
