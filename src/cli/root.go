// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	x509certs "github.com/H0llyW00dzZ/x509-chain-verify/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-chain-verify/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-chain-verify/src/internal/x509/truststore"
	"github.com/H0llyW00dzZ/x509-chain-verify/src/logger"
)

var (
	inputFiles   []string
	trustFiles   []string
	atFlag       string
	diagnose     bool
	outputFormat string
	outputFile   string
	configFile   string
)

var (
	// ErrInputFileRequired is returned when no input certificate file is provided.
	ErrInputFileRequired = errors.New("input certificate file is required (use -f flag)")
	// ErrTrustStoreRequired is returned when verification is requested without
	// any trust anchors.
	ErrTrustStoreRequired = errors.New("at least one trust anchor bundle is required (use -t flag)")
	// ErrUnknownFormat is returned for an unrecognized --format value.
	ErrUnknownFormat = errors.New("unknown output format (expected text, tree, table, or json)")
)

// OperationPerformed indicates whether a verification run completed during
// the last Execute call. It stays false for help and version output.
var OperationPerformed bool

// Execute runs the root command and returns any error that occurs during
// execution. The context cancels in-flight work when the caller shuts down.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false

	rootCmd := &cobra.Command{
		Use:           "x509-chain-verify",
		Short:         "X.509 certificate chain builder and verifier",
		Long: "Builds a certificate chain from an unordered bundle to a configured trust\n" +
			"anchor and verifies it, reporting every positioned finding instead of\n" +
			"stopping at the first failure.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), log)
		},
	}

	rootCmd.Flags().StringSliceVarP(&inputFiles, "file", "f", nil, "input certificate or bundle (PEM, DER, or PKCS#7; repeatable)")
	rootCmd.Flags().StringSliceVarP(&trustFiles, "trust", "t", nil, "trust anchor bundle in PEM format (repeatable)")
	rootCmd.Flags().StringVar(&atFlag, "at", "", "verification time in RFC 3339 format (default: current time)")
	rootCmd.Flags().BoolVar(&diagnose, "diagnose", false, "treat the input as an ordered chain and report every finding")
	rootCmd.Flags().StringVar(&outputFormat, "format", "", "report format: text, tree, table, or json")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to OUTPUT_FILE (default: stdout)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "configuration file (.json, .yaml, .yml)")

	return rootCmd.ExecuteContext(ctx)
}

// runVerify loads the inputs, builds and checks the chain, and renders the
// report in the selected format.
//
// In the default mode the inputs are an unordered bundle: the end-entity is
// selected, a chain to a trust anchor is built, and any finding fails the
// command. With --diagnose the inputs are taken as an already-ordered chain
// and only the pairwise checks run; every positioned finding lands in the
// report and the command itself succeeds.
func runVerify(ctx context.Context, log logger.Logger) error {
	if len(inputFiles) == 0 {
		return ErrInputFileRequired
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = cfg.Defaults.Format
	}
	switch format {
	case "text", "tree", "table", "json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	at, err := resolveVerifyTime(cfg)
	if err != nil {
		return err
	}

	decoder := x509certs.New()
	var certs []*x509.Certificate
	for _, path := range inputFiles {
		decoded, err := decoder.DecodeFileMultiple(path)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		certs = append(certs, decoded...)
	}
	if len(certs) == 0 {
		return fmt.Errorf("no certificates found in %s", strings.Join(inputFiles, ", "))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var chain *x509chain.Chain
	var findings x509chain.Errors
	if diagnose {
		log.Printf("Inspecting %d certificate(s) as an ordered chain...", len(certs))
		chain, findings = x509chain.CheckCandidateChain(certs, at)
	} else {
		store, err := loadTrustStore(cfg)
		if err != nil {
			return err
		}

		endEntity := x509chain.SelectEndEntity(certs)
		log.Printf("Verifying chain for %q against %d trust anchor(s)...",
			endEntity.Subject.CommonName, store.Len())

		chain, err = x509chain.Build(endEntity, certs, store, at)
		if err != nil {
			// Every finding surfaces as the command error; there is no
			// partial-trust outcome.
			return err
		}
	}

	report, err := renderReport(chain, findings, format, at)
	if err != nil {
		return err
	}

	OperationPerformed = true
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report to %s: %w", outputFile, err)
		}
		log.Printf("Report written to %s", outputFile)
		return nil
	}

	fmt.Print(report)
	if !strings.HasSuffix(report, "\n") {
		fmt.Println()
	}
	return nil
}

// resolveVerifyTime picks the verification time: the --at flag wins over the
// config default, and both fall back to the current time.
func resolveVerifyTime(cfg *Config) (time.Time, error) {
	source := atFlag
	if source == "" {
		source = cfg.Defaults.At
	}
	if source == "" {
		return time.Now(), nil
	}

	at, err := time.Parse(time.RFC3339, source)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid verification time %q: %w", source, err)
	}
	return at, nil
}

// loadTrustStore folds the configured trust bundles and every -t flag into a
// single immutable store snapshot.
func loadTrustStore(cfg *Config) (truststore.Store, error) {
	paths := append(append([]string(nil), cfg.Defaults.TrustFiles...), trustFiles...)
	if len(paths) == 0 {
		return truststore.Store{}, ErrTrustStoreRequired
	}

	store := truststore.Empty()
	for _, path := range paths {
		next, err := store.AddFromFile(path)
		if err != nil {
			return truststore.Store{}, fmt.Errorf("loading trust anchors from %s: %w", path, err)
		}
		store = next
	}
	return store, nil
}

// renderReport formats the verification outcome in the requested format.
func renderReport(chain *x509chain.Chain, findings x509chain.Errors, format string, at time.Time) (string, error) {
	switch format {
	case "tree":
		return chain.RenderASCIITree(findings), nil
	case "table":
		return chain.RenderTable(findings), nil
	case "json":
		data, err := chain.ToReportJSON(at, findings)
		if err != nil {
			return "", fmt.Errorf("encoding report: %w", err)
		}
		return string(data), nil
	default:
		return renderText(chain, findings), nil
	}
}

// renderText produces the plain line-per-finding report.
func renderText(chain *x509chain.Chain, findings x509chain.Errors) string {
	var b strings.Builder
	if len(findings) == 0 {
		fmt.Fprintf(&b, "chain verified: %d certificate(s), trusted\n", chain.Len())
		return b.String()
	}

	fmt.Fprintf(&b, "chain not trusted: %d finding(s)\n", len(findings))
	for _, finding := range findings {
		fmt.Fprintf(&b, "  %s\n", finding.Error())
	}
	return b.String()
}
