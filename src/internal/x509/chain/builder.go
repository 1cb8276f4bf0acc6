// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/x509-chain-verify/src/internal/x509/truststore"
)

// SelectEndEntity picks the certificate to verify out of an unordered input
// set: the first certificate that is not a CA, or the first certificate when
// every input is a CA. The builder assumes its input was chosen this way.
func SelectEndEntity(certs []*x509.Certificate) *x509.Certificate {
	if len(certs) == 0 {
		return nil
	}
	for _, cert := range certs {
		if !cert.IsCA {
			return cert
		}
	}
	return certs[0]
}

// Build constructs a candidate chain from endEntity through pool to a trust
// anchor of store, verifies it at the given time, and returns the verified
// Chain.
//
// On failure the returned error is an [Errors] value carrying every
// positioned finding, or a single positionless [KindIncomplete] entry when
// no candidate chain exists at all.
func Build(endEntity *x509.Certificate, pool []*x509.Certificate, store truststore.Store, at time.Time) (*Chain, error) {
	candidate, errs := BuildCandidate(endEntity, pool, store)
	if len(errs) > 0 {
		return nil, errs
	}
	return CheckChain(candidate, at)
}

// BuildCandidate performs the name-based graph traversal from endEntity to a
// trust anchor. It applies no cryptographic or policy checks; the resulting
// sequence satisfies only the selection invariant (adjacent issuer/subject
// names match) and must still be verified by [CheckChain].
//
// Traversal stops successfully when a store anchor is reached, and fails
// with [KindIncomplete] when no issuer candidate exists or when following
// the only candidates would revisit a chain member.
func BuildCandidate(endEntity *x509.Certificate, pool []*x509.Certificate, store truststore.Store) ([]*x509.Certificate, Errors) {
	if endEntity == nil {
		return nil, incompleteErr("no end-entity certificate supplied")
	}

	candidate := []*x509.Certificate{endEntity}
	if store.Contains(endEntity) {
		// A trusted self-signed certificate is a complete chain of one.
		return candidate, nil
	}

	anchors := store.Anchors()
	current := endEntity

	// Chain length is bounded by the number of distinct certificates
	// available; the visited check below enforces it.
	for {
		next := findIssuer(current, candidate, pool, anchors)
		if next == nil {
			return nil, incompleteErr(fmt.Sprintf("no issuer found for %q", current.Subject.CommonName))
		}

		candidate = append(candidate, next)
		if store.Contains(next) {
			return candidate, nil
		}
		current = next
	}
}

// findIssuer locates the best issuer candidate for current among
// pool ∪ anchors, excluding certificates already in the chain.
//
// Matching is by subject name. When the current certificate carries an
// authorityKeyIdentifier, candidates whose subjectKeyIdentifier matches it
// are preferred; the name-only matches are kept as fallback so that an
// impostor sharing a trusted root's name still resolves to the real root and
// is rejected later by the signature check rather than masked as incomplete.
// Trust anchors win over pool certificates so traversal terminates as early
// as possible.
func findIssuer(current *x509.Certificate, chain, pool, anchors []*x509.Certificate) *x509.Certificate {
	inChain := func(cert *x509.Certificate) bool {
		for _, member := range chain {
			if member.Equal(cert) {
				return true
			}
		}
		return false
	}

	var matches []*x509.Certificate
	// Anchors first so a trusted root is preferred over a pool copy.
	for _, candidate := range append(append([]*x509.Certificate(nil), anchors...), pool...) {
		if inChain(candidate) {
			continue
		}
		if !bytes.Equal(current.RawIssuer, candidate.RawSubject) {
			continue
		}
		matches = append(matches, candidate)
	}

	if len(matches) == 0 {
		return nil
	}

	if len(current.AuthorityKeyId) > 0 {
		var narrowed []*x509.Certificate
		for _, candidate := range matches {
			if bytes.Equal(candidate.SubjectKeyId, current.AuthorityKeyId) {
				narrowed = append(narrowed, candidate)
			}
		}
		if len(narrowed) > 0 {
			matches = narrowed
		}
	}

	return matches[0]
}
