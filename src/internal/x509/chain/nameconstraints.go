// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"fmt"
	"strings"
)

// checkNameConstraints verifies the end-entity's names against the DNS name
// constraints accumulated from its ancestors.
//
// Constraints declared by a certificate apply to every certificate below it
// in the chain, never to itself or its own issuer, so the end-entity must
// satisfy the permitted subtrees of every ancestor that declares any and
// must avoid the excluded subtrees of all ancestors. Exclusion always wins
// over a permitted match. Violations are attributed to the end-entity's
// position.
func checkNameConstraints(certs []*x509.Certificate) Errors {
	if len(certs) < 2 {
		return nil
	}

	leaf := certs[0]
	names := leaf.DNSNames
	if len(names) == 0 && leaf.Subject.CommonName != "" {
		// Fall back to the subject CN when no SAN is present, since it then
		// serves as the certificate's identity.
		names = []string{leaf.Subject.CommonName}
	}
	if len(names) == 0 {
		return nil
	}

	var errs Errors
	for _, name := range names {
		for i := 1; i < len(certs); i++ {
			ancestor := certs[i]

			excludedBy := ""
			for _, subtree := range ancestor.ExcludedDNSDomains {
				if matchDNSConstraint(name, subtree) {
					excludedBy = subtree
					break
				}
			}
			if excludedBy != "" {
				errs = append(errs, CheckError{
					Pos:  0,
					Kind: KindNameConstraintsRejected,
					Detail: fmt.Sprintf("name %q excluded by subtree %q declared by %q",
						name, excludedBy, ancestor.Subject.CommonName),
				})
				continue
			}

			if len(ancestor.PermittedDNSDomains) == 0 {
				continue
			}
			permitted := false
			for _, subtree := range ancestor.PermittedDNSDomains {
				if matchDNSConstraint(name, subtree) {
					permitted = true
					break
				}
			}
			if !permitted {
				errs = append(errs, CheckError{
					Pos:  0,
					Kind: KindNameConstraintsRejected,
					Detail: fmt.Sprintf("name %q not in permitted subtrees of %q",
						name, ancestor.Subject.CommonName),
				})
			}
		}
	}

	return errs
}

// matchDNSConstraint reports whether a DNS name falls within a constraint
// subtree using RFC 5280 §4.2.1.10 semantics: the empty constraint matches
// everything, a constraint with a leading dot matches strict subdomains
// only, and a bare domain matches itself and any subdomain. A leading "*."
// on either side is treated as a plain subtree marker, matching how some
// issuers encode wildcard subtrees.
func matchDNSConstraint(name, constraint string) bool {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	constraint = strings.ToLower(strings.TrimSuffix(constraint, "."))

	name = strings.TrimPrefix(name, "*.")
	constraint = strings.TrimPrefix(constraint, "*.")

	if constraint == "" {
		return true
	}

	if strings.HasPrefix(constraint, ".") {
		return strings.HasSuffix(name, constraint)
	}

	if name == constraint {
		return true
	}
	return strings.HasSuffix(name, "."+constraint)
}
