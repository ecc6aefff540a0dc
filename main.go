// Package main renders a freight bill from an invoice snapshot.
// It creates up to two files in the configured output directory:
//   - Bill.pdf  (the printable Tax / Retail Invoice)
//   - Bill.xlsx (the Particulars table, when output.xlsx is set)
//
// The PDF can be mailed to the accounts address afterwards.
//
// Usage: freightbill [--version] <invoice.json>
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"freightbill/internal/config"
	"freightbill/internal/document"
	"freightbill/internal/invoice"
	"freightbill/internal/layout"
	"freightbill/internal/logger"
	"freightbill/internal/sheet"
)

const version = "1.0.0"

var errUsage = errors.New("usage: freightbill [--version] <invoice.json>")

// parseArgs returns the snapshot path, or reports that only the version
// was asked for.
func parseArgs(args []string) (path string, showVersion bool, err error) {
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		return "", true, nil
	}
	if len(args) != 1 || args[0] == "" {
		return "", false, errUsage
	}
	return args[0], false, nil
}

func issuerFrom(cfg *config.Config) document.Issuer {
	return document.Issuer{
		Company: cfg.Issuer.Company,
		Bank:    cfg.Issuer.Bank,
		Branch:  cfg.Issuer.Branch,
		Account: cfg.Issuer.Account,
		IFSC:    cfg.Issuer.IFSC,
		PAN:     cfg.Issuer.PAN,
	}
}

// generate loads and normalizes the snapshot at path, renders every output
// in memory and only then writes them to the output directory, so a failed
// build leaves no files behind.
func generate(cfg *config.Config, path string, log zerolog.Logger) (invoice.Invoice, []Attachment, error) {
	form, err := invoice.LoadForm(path)
	if err != nil {
		return invoice.Invoice{}, nil, err
	}
	inv, err := form.Normalize()
	if err != nil {
		return invoice.Invoice{}, nil, err
	}
	log.Info().Str("bill", inv.BillNumber).Int("items", len(inv.Items)).Msg("snapshot loaded")

	composer := document.New(document.DefaultOptions(), issuerFrom(cfg), log)
	pdfData, err := composer.Render(inv)
	if err != nil {
		return invoice.Invoice{}, nil, err
	}
	files := []Attachment{{Filename: document.FileName, Data: pdfData}}

	if cfg.Output.XLSX {
		plan, err := layout.Build(inv, document.DefaultOptions().Columns)
		if err != nil {
			return invoice.Invoice{}, nil, err
		}
		var buf bytes.Buffer
		if err := sheet.Write(&buf, inv, plan); err != nil {
			return invoice.Invoice{}, nil, err
		}
		files = append(files, Attachment{Filename: sheet.FileName, Data: buf.Bytes()})
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return invoice.Invoice{}, nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	for _, f := range files {
		target := filepath.Join(cfg.Output.Dir, f.Filename)
		if err := os.WriteFile(target, f.Data, 0o644); err != nil {
			return invoice.Invoice{}, nil, fmt.Errorf("failed to write %s: %w", f.Filename, err)
		}
		log.Info().Str("file", target).Int("bytes", len(f.Data)).Msg("file written")
	}

	return inv, files, nil
}

func main() {
	path, showVersion, err := parseArgs(os.Args[1:])
	if showVersion {
		fmt.Printf("freightbill v%s\n", version)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	inv, files, err := generate(cfg, path, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Str("snapshot", path).Msg("bill generation failed")
	}

	if !cfg.Email.Enabled {
		return
	}
	// Only the PDF is mailed; the workbook stays local.
	subject := fmt.Sprintf("%s %s", cfg.Email.Subject, inv.BillNumber)
	if err := sendEmail(cfg, newDialer(cfg), subject, files[0]); err != nil {
		log.Fatal().Err(err).Str("to", cfg.Email.To).Msg("sending bill failed")
	}
	log.Info().Str("to", cfg.Email.To).Str("bill", inv.BillNumber).Msg("bill mailed")
}
