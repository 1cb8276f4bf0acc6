// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for the X.509 chain verifier.
// It supplies a human-readable CLI logger and a structured JSON logger so the
// same verification code can serve interactive use and automation pipelines.
package logger
