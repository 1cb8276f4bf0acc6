// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 certificate
// chain verifier. It implements a Cobra-based CLI that builds a chain from an
// unordered certificate bundle to a configured trust anchor, verifies it at a
// chosen point in time, and renders the outcome as plain text, an ASCII tree,
// a markdown table, or structured JSON. The package handles file I/O,
// JSON/YAML configuration loading, context cancellation, and integrates with
// the logger package for status output and error reporting.
package cli
