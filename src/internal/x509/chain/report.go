// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the certificate chain as an ASCII tree diagram.
//
// It displays the certificate hierarchy with visual connectors and marks
// each position with the verification findings attributed to it, so a failed
// diagnostic run shows at a glance which link broke.
func (ch *Chain) RenderASCIITree(findings Errors) string {
	if len(ch.certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.certs {
		connector := "├── "
		if i == len(ch.certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		var kinds []string
		for _, finding := range findings {
			if finding.Pos == i {
				statusIcon = "✗"
				kinds = append(kinds, finding.Kind.String())
			}
		}

		certInfo := fmt.Sprintf("[%s] %s (%s)", statusIcon, cert.Subject.CommonName, ch.certificateRole(i))
		if len(kinds) > 0 {
			certInfo += ": " + strings.Join(kinds, ", ")
		}

		result.WriteString(connector + certInfo + "\n")
	}

	return result.String()
}

// RenderTable renders the certificate chain as a formatted markdown table.
//
// It displays certificate details including role, subject, issuer, validity
// dates, key size, and verification status in a tabular format using
// tablewriter.
func (ch *Chain) RenderTable(findings Errors) string {
	if len(ch.certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Status"})

	var rows [][]string
	for i, cert := range ch.certs {
		status := "ok"
		for _, finding := range findings {
			if finding.Pos == i {
				if status == "ok" {
					status = finding.Kind.String()
				} else {
					status += ", " + finding.Kind.String()
				}
			}
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.certificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			describePublicKey(cert.PublicKey),
			status,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToReportJSON converts the verification outcome to structured JSON.
//
// It includes every certificate's details, the signed-by relationships
// between adjacent links, the verification time, and all positioned
// findings, suitable for CI pipelines or visualization tools.
func (ch *Chain) ToReportJSON(at time.Time, findings Errors) ([]byte, error) {
	type certificateReport struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		PublicKey          string    `json:"publicKey"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
		DNSNames           []string  `json:"dnsNames,omitempty"`
	}

	type findingReport struct {
		Position int    `json:"position"`
		Kind     string `json:"kind"`
		Detail   string `json:"detail,omitempty"`
	}

	type relationshipReport struct {
		FromIndex int    `json:"fromIndex"`
		ToIndex   int    `json:"toIndex"`
		Type      string `json:"type"`
	}

	type chainReport struct {
		VerifiedAt    string               `json:"verifiedAt"`
		Trusted       bool                 `json:"trusted"`
		ChainLength   int                  `json:"chainLength"`
		Certificates  []certificateReport  `json:"certificates"`
		Relationships []relationshipReport `json:"relationships"`
		Findings      []findingReport      `json:"findings,omitempty"`
	}

	report := chainReport{
		VerifiedAt:    at.UTC().Format(time.RFC3339),
		Trusted:       len(findings) == 0,
		ChainLength:   len(ch.certs),
		Certificates:  make([]certificateReport, len(ch.certs)),
		Relationships: make([]relationshipReport, 0, len(ch.certs)),
	}

	for i, cert := range ch.certs {
		report.Certificates[i] = certificateReport{
			Index:              i,
			Role:               ch.certificateRole(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKey:          describePublicKey(cert.PublicKey),
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			DNSNames:           cert.DNSNames,
		}
	}

	// Each certificate is signed by the next one in the chain.
	for i := 0; i < len(ch.certs)-1; i++ {
		report.Relationships = append(report.Relationships, relationshipReport{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	for _, finding := range findings {
		report.Findings = append(report.Findings, findingReport{
			Position: finding.Pos,
			Kind:     finding.Kind.String(),
			Detail:   finding.Detail,
		})
	}

	return json.MarshalIndent(report, "", "  ")
}

// certificateRole determines the role of a certificate in the chain.
func (ch *Chain) certificateRole(index int) string {
	total := len(ch.certs)
	switch {
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

// describePublicKey formats a public key's algorithm and size for display.
func describePublicKey(key any) string {
	switch pub := key.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", pub.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", pub.Curve.Params().BitSize)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return "unknown"
	}
}
