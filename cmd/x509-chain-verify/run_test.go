// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"testing"

	verpkg "github.com/H0llyW00dzZ/x509-chain-verify/src/version"
	"github.com/stretchr/testify/assert"
)

func TestVersionInit(t *testing.T) {
	// Test that version is initialized
	assert.NotEmpty(t, version, "version should not be empty after init")

	// Test that it matches the version package when not set by ldflags
	// We can't directly test the init logic, but we can verify version is set
	if version != verpkg.Version {
		// If they differ, it means version was set by ldflags, which is also valid
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}
