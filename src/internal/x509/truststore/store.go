// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"crypto/x509"

	x509certs "github.com/H0llyW00dzZ/x509-chain-verify/src/internal/x509/certs"
)

// Store is an immutable collection of trusted root certificates.
//
// Add returns a new Store value instead of mutating the receiver, so a Store
// held by one verification call is never affected by later additions made
// elsewhere. This makes concurrent reads safe without locking.
//
// Anchors are taken at face value: the Store performs no validation of the
// certificates it holds, not even a self-signature check. Only vetted roots
// should be added.
type Store struct {
	anchors []*x509.Certificate
}

// Empty returns the zero-trust store containing no anchors.
func Empty() Store { return Store{} }

// Add returns a new Store containing the receiver's anchors plus cert.
//
// Certificates already present (compared by raw DER identity) are not added
// twice. The receiver is left untouched.
func (s Store) Add(cert *x509.Certificate) Store {
	if cert == nil || s.Contains(cert) {
		return s
	}

	anchors := make([]*x509.Certificate, 0, len(s.anchors)+1)
	anchors = append(anchors, s.anchors...)
	anchors = append(anchors, cert)

	return Store{anchors: anchors}
}

// AddFromPEM returns a new Store extended with every certificate found in a
// PEM or DER encoded bundle.
func (s Store) AddFromPEM(data []byte) (Store, error) {
	certs, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return s, err
	}

	next := s
	for _, cert := range certs {
		next = next.Add(cert)
	}
	return next, nil
}

// AddFromFile returns a new Store extended with every certificate found in
// the bundle file at path.
func (s Store) AddFromFile(path string) (Store, error) {
	certs, err := x509certs.New().DecodeFileMultiple(path)
	if err != nil {
		return s, err
	}

	next := s
	for _, cert := range certs {
		next = next.Add(cert)
	}
	return next, nil
}

// Anchors returns the trust anchors held by the store.
//
// The returned slice is a copy; callers may not reach the store's internal
// state through it.
func (s Store) Anchors() []*x509.Certificate {
	if len(s.anchors) == 0 {
		return nil
	}
	anchors := make([]*x509.Certificate, len(s.anchors))
	copy(anchors, s.anchors)
	return anchors
}

// Contains reports whether cert is a trust anchor of this store.
// Membership is decided by raw DER identity, not by subject name.
func (s Store) Contains(cert *x509.Certificate) bool {
	if cert == nil {
		return false
	}
	for _, anchor := range s.anchors {
		if anchor.Equal(cert) {
			return true
		}
	}
	return false
}

// Len returns the number of trust anchors in the store.
func (s Store) Len() int { return len(s.anchors) }
