// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// configSchema is the JSON Schema every JSON configuration file is validated
// against before unmarshaling, so a typoed key fails loudly instead of being
// silently ignored.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "defaults": {
      "type": "object",
      "properties": {
        "format": {
          "type": "string",
          "enum": ["text", "tree", "table", "json"]
        },
        "at": {
          "type": "string"
        },
        "trustFiles": {
          "type": "array",
          "items": {"type": "string"}
        }
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// Config represents the verifier configuration structure.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// --config flag or the X509_VERIFY_CONFIG_FILE environment variable, with
// defaults applied for any missing values. Command-line flags override
// configuration file values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for verification runs
	Defaults struct {
		// Format: Default report format (text, tree, table, or json)
		Format string `json:"format" yaml:"format"`
		// At: Default verification time in RFC 3339 format (empty means current time)
		At string `json:"at,omitempty" yaml:"at,omitempty"`
		// TrustFiles: Trust anchor bundles folded into the store before any -t flags
		TrustFiles []string `json:"trustFiles,omitempty" yaml:"trustFiles,omitempty"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on file
// extension. It uses case-insensitive extension matching for cross-platform
// compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// validateConfigSchema checks raw JSON configuration data against
// configSchema and reports every violation at once.
func validateConfigSchema(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config file: %w", err)
	}

	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("invalid config file: %s", strings.Join(issues, "; "))
	}
	return nil
}

// unmarshalConfig unmarshals configuration data based on the specified
// format. JSON data is schema-validated first; YAML is unmarshaled directly
// because JSON Schema validation applies to JSON documents.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := validateConfigSchema(data); err != nil {
			return err
		}
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads verifier configuration from a JSON or YAML file or applies
// defaults.
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_VERIFY_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Command-line flags override config file values (applied by the caller)
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Defaults.Format = "text"

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv("X509_VERIFY_CONFIG_FILE")
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		if config.Defaults.Format == "" {
			config.Defaults.Format = "text"
		}
	}

	return config, nil
}
