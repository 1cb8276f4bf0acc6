// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
)

// Chain is an ordered, fully verified certificate chain.
//
// Index 0 is the end-entity certificate and the last index is the trust
// anchor. A Chain is only handed to callers after every pairwise check
// passed; unverified candidate sequences stay internal as plain slices.
//
// Chain values are immutable and safe for concurrent use.
type Chain struct {
	certs []*x509.Certificate
}

// newChain wraps a verified sequence in a Chain, taking a private copy so
// later mutations of the caller's slice cannot reach the chain.
func newChain(certs []*x509.Certificate) *Chain {
	owned := make([]*x509.Certificate, len(certs))
	copy(owned, certs)
	return &Chain{certs: owned}
}

// Certs returns the certificates of the chain in end-entity-first order.
// The returned slice is a copy.
func (ch *Chain) Certs() []*x509.Certificate {
	certs := make([]*x509.Certificate, len(ch.certs))
	copy(certs, ch.certs)
	return certs
}

// Len returns the number of certificates in the chain.
func (ch *Chain) Len() int { return len(ch.certs) }

// EndEntity returns the leaf certificate the chain was built for.
func (ch *Chain) EndEntity() *x509.Certificate {
	if len(ch.certs) == 0 {
		return nil
	}
	return ch.certs[0]
}

// Root returns the trust anchor the chain terminates at.
func (ch *Chain) Root() *x509.Certificate {
	if len(ch.certs) == 0 {
		return nil
	}
	return ch.certs[len(ch.certs)-1]
}

// Intermediates returns the certificates between the end-entity and the
// root, or nil if the chain has two or fewer certificates.
func (ch *Chain) Intermediates() []*x509.Certificate {
	if len(ch.certs) <= 2 {
		return nil
	}
	intermediates := make([]*x509.Certificate, len(ch.certs)-2)
	copy(intermediates, ch.certs[1:len(ch.certs)-1])
	return intermediates
}
