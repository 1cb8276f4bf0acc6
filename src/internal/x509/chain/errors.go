// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"fmt"
	"strings"
)

// Kind identifies one class of chain verification failure.
//
// The taxonomy is closed: verification never reports anything outside this
// set, so callers can switch over it exhaustively.
type Kind int

const (
	// KindIncomplete means no path from the end-entity to any trust anchor
	// could be found. It carries no chain position.
	KindIncomplete Kind = iota

	// KindBadSignature means a certificate's signature did not verify under
	// its claimed issuer's public key.
	KindBadSignature

	// KindBadValidityPeriod means a certificate is not valid at the supplied
	// verification time, either not yet valid or expired.
	KindBadValidityPeriod

	// KindIssuerNameMismatch means adjacent certificates' issuer and subject
	// names do not match. The builder rules this out by construction; it is
	// only reachable through diagnostic checks of manually assembled chains.
	KindIssuerNameMismatch

	// KindIntermediateNotCA means a certificate acting as an issuer in the
	// chain lacks the CA flag in basicConstraints.
	KindIntermediateNotCA

	// KindIntermediateMissingKeyCertSign means a certificate acting as an
	// issuer lacks the keyCertSign bit required to sign other certificates.
	KindIntermediateMissingKeyCertSign

	// KindNameConstraintsRejected means the end-entity's alternative names
	// violate name constraints accumulated from one or more ancestors.
	KindNameConstraintsRejected
)

// String returns the stable wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIncomplete:
		return "incomplete"
	case KindBadSignature:
		return "bad-signature"
	case KindBadValidityPeriod:
		return "bad-validity-period"
	case KindIssuerNameMismatch:
		return "issuer-name-mismatch"
	case KindIntermediateNotCA:
		return "intermediate:not-CA"
	case KindIntermediateMissingKeyCertSign:
		return "intermediate:missing-keyCertSign"
	case KindNameConstraintsRejected:
		return "name-constraints:subjectAltName-rejected"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// NoPosition marks a CheckError that cannot be attributed to a chain link,
// e.g. KindIncomplete where no candidate chain exists at all.
const NoPosition = -1

// CheckError is a single positioned verification failure.
//
// Pos is the zero-based chain index the failure is attributed to, counting
// from the end-entity. Pairwise checks attach their findings to the issuer's
// position; name constraint violations attach to the affected certificate.
type CheckError struct {
	Pos    int
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e CheckError) Error() string {
	var b strings.Builder
	if e.Pos == NoPosition {
		b.WriteString(e.Kind.String())
	} else {
		fmt.Fprintf(&b, "position %d: %s", e.Pos, e.Kind)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

// Errors aggregates every failure found during one verification attempt.
//
// Verification collects all applicable failures instead of stopping at the
// first, so an Errors value frequently carries more than one entry. Checks
// overlap on purpose: a single defect can surface as several kinds at once
// (a non-CA intermediate also misses keyCertSign), so callers asserting on a
// specific failure should use Has rather than compare whole sets.
type Errors []CheckError

// Error implements the error interface by joining every entry.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "x509chain: no errors"
	}

	parts := make([]string, len(e))
	for i, ce := range e {
		parts[i] = ce.Error()
	}
	return "x509chain: " + strings.Join(parts, "; ")
}

// Has reports whether the set contains at least one entry with the given
// position and kind, regardless of any other entries present.
func (e Errors) Has(pos int, kind Kind) bool {
	for _, ce := range e {
		if ce.Pos == pos && ce.Kind == kind {
			return true
		}
	}
	return false
}

// HasKind reports whether the set contains at least one entry of the given
// kind at any position.
func (e Errors) HasKind(kind Kind) bool {
	for _, ce := range e {
		if ce.Kind == kind {
			return true
		}
	}
	return false
}

// incompleteErr is the single positionless failure for a missing path.
func incompleteErr(detail string) Errors {
	return Errors{{Pos: NoPosition, Kind: KindIncomplete, Detail: detail}}
}
