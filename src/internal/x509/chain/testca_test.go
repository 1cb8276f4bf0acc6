// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync/atomic"
	"testing"
	"time"
)

// verifyAt is the fixed verification time every test uses; fixtures are
// minted valid around it so results never depend on the wall clock.
var verifyAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var serialCounter int64

func nextSerial() *big.Int {
	return big.NewInt(atomic.AddInt64(&serialCounter, 1))
}

// identity couples a certificate with its private key so it can issue
// further certificates in a test hierarchy.
type identity struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

type certOption func(*x509.Certificate)

func withDNSNames(names ...string) certOption {
	return func(tmpl *x509.Certificate) { tmpl.DNSNames = names }
}

func withValidity(notBefore, notAfter time.Time) certOption {
	return func(tmpl *x509.Certificate) {
		tmpl.NotBefore = notBefore
		tmpl.NotAfter = notAfter
	}
}

func withKeyUsage(usage x509.KeyUsage) certOption {
	return func(tmpl *x509.Certificate) { tmpl.KeyUsage = usage }
}

func withoutCA() certOption {
	return func(tmpl *x509.Certificate) {
		tmpl.IsCA = false
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	}
}

func withNameConstraints(permitted, excluded []string) certOption {
	return func(tmpl *x509.Certificate) {
		tmpl.PermittedDNSDomains = permitted
		tmpl.ExcludedDNSDomains = excluded
		tmpl.PermittedDNSDomainsCritical = true
	}
}

// mint issues a certificate from the template, signed by parent, or
// self-signed when parent is nil.
func mint(t testing.TB, tmpl *x509.Certificate, parent *identity) *identity {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	parentCert, parentKey := tmpl, key
	if parent != nil {
		parentCert, parentKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parentCert, &key.PublicKey, parentKey)
	if err != nil {
		t.Fatalf("creating certificate %q: %v", tmpl.Subject.CommonName, err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parsing certificate %q: %v", tmpl.Subject.CommonName, err)
	}

	return &identity{cert: cert, key: key}
}

func caTemplate(cn string) *x509.Certificate {
	return &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             verifyAt.Add(-24 * time.Hour),
		NotAfter:              verifyAt.AddDate(2, 0, 0),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	}
}

func leafTemplate(cn string) *x509.Certificate {
	return &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             verifyAt.Add(-24 * time.Hour),
		NotAfter:              verifyAt.AddDate(1, 0, 0),
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageDigitalSignature,
	}
}

// newRoot mints a self-signed CA certificate.
func newRoot(t testing.TB, cn string, opts ...certOption) *identity {
	t.Helper()
	tmpl := caTemplate(cn)
	for _, opt := range opts {
		opt(tmpl)
	}
	return mint(t, tmpl, nil)
}

// newIntermediate mints a CA certificate signed by parent.
func newIntermediate(t testing.TB, parent *identity, cn string, opts ...certOption) *identity {
	t.Helper()
	tmpl := caTemplate(cn)
	for _, opt := range opts {
		opt(tmpl)
	}
	return mint(t, tmpl, parent)
}

// newLeaf mints an end-entity certificate signed by parent.
func newLeaf(t testing.TB, parent *identity, cn string, opts ...certOption) *identity {
	t.Helper()
	tmpl := leafTemplate(cn)
	tmpl.DNSNames = []string{cn}
	for _, opt := range opts {
		opt(tmpl)
	}
	return mint(t, tmpl, parent)
}

// threeTier builds the canonical root → intermediate → leaf hierarchy used
// throughout the tests.
func threeTier(t testing.TB, leafCN string) (root, intermediate, leaf *identity) {
	t.Helper()
	root = newRoot(t, "Verify Test Root CA")
	intermediate = newIntermediate(t, root, "Verify Test Intermediate CA")
	leaf = newLeaf(t, intermediate, leafCN)
	return root, intermediate, leaf
}
