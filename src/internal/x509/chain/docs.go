// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain implements [X.509] certificate chain building and
// verification against a caller-supplied trust store, analogous to the path
// validation of [RFC 5280] §6.1. It provides capabilities to:
//   - Build a candidate chain from an end-entity certificate through a pool
//     of intermediates to a trust anchor, by issuer/subject name traversal.
//   - Verify every structural and cryptographic constraint between adjacent
//     links at a caller-supplied time, collecting all positioned failures
//     instead of stopping at the first.
//   - Enforce DNS name constraints accumulated from ancestor certificates.
//   - Render verification outcomes as ASCII trees, markdown tables, or JSON.
//
// Revocation checking, certificate policy processing, and path length
// enforcement are explicitly not performed; see the Supports* capability
// flags.
//
// [X.509]: https://grokipedia.com/page/X.509
// [RFC 5280]: https://www.rfc-editor.org/rfc/rfc5280
package x509chain
