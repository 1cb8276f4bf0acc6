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
)

// Capability flags for checks this package deliberately does not perform.
// Callers needing these guarantees must layer them on top; the verifier will
// not silently pass where it does not check.
const (
	// SupportsPathLenConstraint reports whether basicConstraints path length
	// limits are enforced. They are not.
	SupportsPathLenConstraint = false

	// SupportsPolicyConstraints reports whether certificate policy OIDs,
	// policy mapping, and policy inhibition are processed. They are not.
	SupportsPolicyConstraints = false

	// SupportsRevocation reports whether CRL or OCSP revocation status is
	// consulted. It is not.
	SupportsRevocation = false
)

// CheckChain verifies an ordered candidate chain at the given time and
// returns the resulting Chain on success.
//
// On failure the returned error is an [Errors] value with every positioned
// finding collected across the whole chain; there is no partial-trust
// outcome. The input may come from [BuildCandidate] or be assembled by the
// caller.
func CheckChain(certs []*x509.Certificate, at time.Time) (*Chain, error) {
	chain, errs := CheckCandidateChain(certs, at)
	if len(errs) > 0 {
		return nil, errs
	}
	return chain, nil
}

// CheckCandidateChain runs every pairwise check over an ordered candidate
// chain and returns the wrapped sequence together with all findings.
//
// Unlike [CheckChain] it hands back the chain object even when findings
// exist, so diagnostic callers can correlate error positions with the
// certificates they inspected. The returned chain must not be treated as
// trusted unless the findings are empty.
//
// For every adjacent pair (subject at i, issuer at i+1), each finding is
// collected independently and attributed to the issuer's position i+1:
//
//   - the issuer's public key must verify the subject's signature
//   - the subject's issuer name must equal the issuer's subject name
//   - the supplied time must lie within the subject's validity period
//   - the issuer must be a CA and, when it carries a keyUsage extension,
//     assert keyCertSign
//
// Name constraints declared by ancestors are accumulated root-to-leaf and
// checked against the end-entity's names, attributed to position 0.
// Verification is deterministic: only the supplied time is consulted, never
// the wall clock.
func CheckCandidateChain(certs []*x509.Certificate, at time.Time) (*Chain, Errors) {
	if len(certs) == 0 {
		return nil, incompleteErr("empty candidate chain")
	}

	var errs Errors

	for i := 0; i+1 < len(certs); i++ {
		subject, issuer := certs[i], certs[i+1]
		pos := i + 1

		if !bytes.Equal(subject.RawIssuer, issuer.RawSubject) {
			errs = append(errs, CheckError{
				Pos:  pos,
				Kind: KindIssuerNameMismatch,
				Detail: fmt.Sprintf("issuer %q does not match subject %q",
					subject.Issuer.CommonName, issuer.Subject.CommonName),
			})
		}

		// Pure signature verification over the raw TBS bytes. Deliberately
		// not CheckSignatureFrom: that helper also enforces CA and key usage
		// constraints, which are reported separately below.
		if err := issuer.CheckSignature(subject.SignatureAlgorithm, subject.RawTBSCertificate, subject.Signature); err != nil {
			errs = append(errs, CheckError{
				Pos:    pos,
				Kind:   KindBadSignature,
				Detail: err.Error(),
			})
		}

		if at.Before(subject.NotBefore) || at.After(subject.NotAfter) {
			errs = append(errs, CheckError{
				Pos:  pos,
				Kind: KindBadValidityPeriod,
				Detail: fmt.Sprintf("%q not valid at %s (window %s to %s)",
					subject.Subject.CommonName, at.Format(time.RFC3339),
					subject.NotBefore.Format(time.RFC3339), subject.NotAfter.Format(time.RFC3339)),
			})
		}

		if !issuer.IsCA {
			errs = append(errs, CheckError{
				Pos:    pos,
				Kind:   KindIntermediateNotCA,
				Detail: fmt.Sprintf("%q acts as an issuer without the CA flag", issuer.Subject.CommonName),
			})
		}

		// keyUsage is only enforced when the extension is present; absence
		// leaves key usage unrestricted per RFC 5280.
		if issuer.KeyUsage != 0 && issuer.KeyUsage&x509.KeyUsageCertSign == 0 {
			errs = append(errs, CheckError{
				Pos:    pos,
				Kind:   KindIntermediateMissingKeyCertSign,
				Detail: fmt.Sprintf("%q acts as an issuer without keyCertSign", issuer.Subject.CommonName),
			})
		}
	}

	errs = append(errs, checkNameConstraints(certs)...)

	return newChain(certs), errs
}
