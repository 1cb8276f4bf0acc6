// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-chain-verify is a command-line tool for building and verifying X.509
// certificate chains against an explicit trust store.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-chain-verify/cmd/x509-chain-verify@latest
//
// # Usage
//
//	x509-chain-verify -f INPUT_BUNDLE -t TRUST_BUNDLE [FLAGS]
//
// # Flags
//
//	-f, --file     Input certificate or bundle (PEM, DER, or PKCS#7; repeatable) [required]
//	-t, --trust    Trust anchor bundle in PEM format (repeatable)
//	-o, --output   Destination file for the report (default: stdout)
//	    --at       Verification time in RFC 3339 format (default: current time)
//	    --diagnose Treat the input as an ordered chain and report every finding
//	    --format   Report format: text, tree, table, or json
//	    --config   Configuration file (.json, .yaml, .yml)
//
// # Examples
//
// Verify a server bundle against a root store:
//
//	x509-chain-verify -f chain.pem -t /etc/ssl/certs/ca-certificates.crt
//
// Check what a chain looked like at a past point in time:
//
//	x509-chain-verify -f chain.pem -t roots.pem --at 2025-06-01T00:00:00Z
//
// Collect every finding for a broken chain as JSON:
//
//	x509-chain-verify -f chain.pem -t roots.pem --diagnose --format json
//
// Visualize the verified chain as an ASCII tree:
//
//	x509-chain-verify -f chain.pem -t roots.pem --format tree
package main
