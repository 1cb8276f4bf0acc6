// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/x509-chain-verify/src/cli"
	"github.com/H0llyW00dzZ/x509-chain-verify/src/logger"
)

const version = "1.3.3.7-testing"

// verifyAt matches the validity window of the minted fixtures so the tests
// never depend on the wall clock.
var verifyAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type identity struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

var serial int64

func mint(t *testing.T, cn string, isCA bool, parent *identity) *identity {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	serial++
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             verifyAt.Add(-24 * time.Hour),
		NotAfter:              verifyAt.AddDate(1, 0, 0),
		IsCA:                  isCA,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageDigitalSignature,
	}
	if isCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign
	} else {
		tmpl.DNSNames = []string{cn}
	}

	parentCert, parentKey := tmpl, key
	if parent != nil {
		parentCert, parentKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parentCert, &key.PublicKey, parentKey)
	if err != nil {
		t.Fatal(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return &identity{cert: cert, key: key}
}

func writePEM(t *testing.T, path string, certs ...*x509.Certificate) {
	t.Helper()

	var data []byte
	for _, cert := range certs {
		data = append(data, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})...)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

// fixtures writes a three-tier hierarchy to disk and returns the bundle path
// (leaf + intermediate) and the trust anchor path (root).
func fixtures(t *testing.T) (bundlePath, trustPath string) {
	t.Helper()

	root := mint(t, "CLI Test Root CA", true, nil)
	intermediate := mint(t, "CLI Test Intermediate CA", true, root)
	leaf := mint(t, "cli.example.test", false, intermediate)

	dir := t.TempDir()
	bundlePath = filepath.Join(dir, "bundle.pem")
	trustPath = filepath.Join(dir, "roots.pem")
	writePEM(t, bundlePath, leaf.cert, intermediate.cert)
	writePEM(t, trustPath, root.cert)
	return bundlePath, trustPath
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	os.Args = append([]string{"cmd"}, args...)
	return cli.Execute(context.Background(), version, logger.NewCLILogger())
}

func TestExecute_NoInputFile(t *testing.T) {
	err := execute(t)
	if !errors.Is(err, cli.ErrInputFileRequired) {
		t.Errorf("expected ErrInputFileRequired, got %v", err)
	}
}

func TestExecute_NoTrustAnchors(t *testing.T) {
	bundlePath, _ := fixtures(t)

	err := execute(t, "-f", bundlePath)
	if !errors.Is(err, cli.ErrTrustStoreRequired) {
		t.Errorf("expected ErrTrustStoreRequired, got %v", err)
	}
}

func TestExecute_InvalidFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid.cer")
	if err := os.WriteFile(tmpFile, []byte("invalid data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "-f", tmpFile, "-t", tmpFile); err == nil {
		t.Error("expected error for invalid certificate file")
	}
}

func TestExecute_NonExistentFile(t *testing.T) {
	if err := execute(t, "-f", "/tmp/nonexistent-file-12345.cer"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestExecute_UnknownFormat(t *testing.T) {
	bundlePath, trustPath := fixtures(t)

	err := execute(t, "-f", bundlePath, "-t", trustPath, "--format", "xml")
	if !errors.Is(err, cli.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExecute_InvalidVerificationTime(t *testing.T) {
	bundlePath, trustPath := fixtures(t)

	err := execute(t, "-f", bundlePath, "-t", trustPath, "--at", "yesterday")
	if err == nil || !strings.Contains(err.Error(), "invalid verification time") {
		t.Errorf("expected verification time error, got %v", err)
	}
}

func TestExecute_VerifiesChain(t *testing.T) {
	bundlePath, trustPath := fixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	err := execute(t, "-f", bundlePath, "-t", trustPath,
		"--at", verifyAt.Format(time.RFC3339), "--format", "json", "-o", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !cli.OperationPerformed {
		t.Error("expected OperationPerformed to be set after a completed run")
	}

	report, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), `"trusted": true`) {
		t.Errorf("expected trusted report, got:\n%s", report)
	}
	if !strings.Contains(string(report), `"chainLength": 3`) {
		t.Errorf("expected a three-certificate chain, got:\n%s", report)
	}
}

func TestExecute_FailFastOnBrokenChain(t *testing.T) {
	// Bundle without the intermediate: no chain to the root exists.
	root := mint(t, "Broken Root CA", true, nil)
	intermediate := mint(t, "Broken Intermediate CA", true, root)
	leaf := mint(t, "broken.example.test", false, intermediate)

	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "leaf.pem")
	trustPath := filepath.Join(dir, "roots.pem")
	writePEM(t, bundlePath, leaf.cert)
	writePEM(t, trustPath, root.cert)

	err := execute(t, "-f", bundlePath, "-t", trustPath, "--at", verifyAt.Format(time.RFC3339))
	if err == nil || !strings.Contains(err.Error(), "incomplete") {
		t.Errorf("expected incomplete finding as the command error, got %v", err)
	}
}

func TestExecute_DiagnoseRendersFindings(t *testing.T) {
	// Diagnose mode takes the input order as the chain, reports every
	// finding, and does not fail the command or require trust anchors.
	root := mint(t, "Diagnose Root CA", true, nil)
	intermediate := mint(t, "Diagnose Intermediate CA", true, root)
	leaf := mint(t, "diagnose.example.test", false, intermediate)
	unrelated := mint(t, "Unrelated Root CA", true, nil)

	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "ordered.pem")
	writePEM(t, bundlePath, leaf.cert, unrelated.cert)

	outPath := filepath.Join(dir, "report.txt")
	err := execute(t, "-f", bundlePath, "--diagnose",
		"--at", verifyAt.Format(time.RFC3339), "-o", outPath)
	if err != nil {
		t.Fatalf("diagnose mode must not fail the command, got %v", err)
	}

	report, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), "issuer-name-mismatch") {
		t.Errorf("expected issuer-name-mismatch finding in the report, got:\n%s", report)
	}
	if !strings.Contains(string(report), "bad-signature") {
		t.Errorf("expected bad-signature finding in the report, got:\n%s", report)
	}
}

func TestExecute_MultipleInputFiles(t *testing.T) {
	// The leaf and the intermediate arrive in separate files; -f is
	// repeatable and the decoded sets are pooled before building.
	root := mint(t, "Split Root CA", true, nil)
	intermediate := mint(t, "Split Intermediate CA", true, root)
	leaf := mint(t, "split.example.test", false, intermediate)

	dir := t.TempDir()
	leafPath := filepath.Join(dir, "leaf.pem")
	intPath := filepath.Join(dir, "intermediate.pem")
	trustPath := filepath.Join(dir, "roots.pem")
	writePEM(t, leafPath, leaf.cert)
	writePEM(t, intPath, intermediate.cert)
	writePEM(t, trustPath, root.cert)

	outPath := filepath.Join(dir, "report.json")
	err := execute(t, "-f", leafPath, "-f", intPath, "-t", trustPath,
		"--at", verifyAt.Format(time.RFC3339), "--format", "json", "-o", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	report, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), `"chainLength": 3`) {
		t.Errorf("expected a three-certificate chain, got:\n%s", report)
	}
}

func TestExecute_TreeFormat(t *testing.T) {
	bundlePath, trustPath := fixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.txt")

	err := execute(t, "-f", bundlePath, "-t", trustPath,
		"--at", verifyAt.Format(time.RFC3339), "--format", "tree", "-o", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	report, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"└── ", "End-Entity (Server/Leaf) Certificate", "Root CA Certificate"} {
		if !strings.Contains(string(report), want) {
			t.Errorf("tree report missing %q:\n%s", want, report)
		}
	}
}

func TestExecute_ConfigDefaults(t *testing.T) {
	bundlePath, trustPath := fixtures(t)
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.yaml")
	configData := "defaults:\n  format: json\n  at: " + verifyAt.Format(time.RFC3339) +
		"\n  trustFiles:\n    - " + trustPath + "\n"
	if err := os.WriteFile(configPath, []byte(configData), 0644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "report.json")
	err := execute(t, "-f", bundlePath, "--config", configPath, "-o", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	report, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), `"trusted": true`) {
		t.Errorf("expected trusted JSON report driven by config defaults, got:\n%s", report)
	}
}
