package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claritygate/claritygate/internal/dochash"
	"github.com/claritygate/claritygate/internal/model"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sealed(t *testing.T, body string) string {
	t.Helper()
	// Stripping the marker line keeps its newline, so the digest must be
	// computed with the line in place; its value does not matter.
	placeholder := body + "document-sha256: \"" + strings.Repeat("0", 64) + "\"\n"
	digest, err := dochash.Compute(placeholder)
	if err != nil {
		t.Fatal(err)
	}
	return body + "document-sha256: \"" + digest + "\"\n"
}

const docBody = `---
title: API Pricing
status: draft
---

# API Pricing

## Plans

Base price is $99/mo for the standard tier.

## Features

The API supports GraphQL.
`

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestPipeline_ScanFile(t *testing.T) {
	path := writeDoc(t, "pricing.cgd.md", sealed(t, docBody))
	p := NewPipeline(testConfig())

	result, err := p.ScanFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}

	report := result.Report
	if report.Document.Title != "API Pricing" {
		t.Errorf("title = %q", report.Document.Title)
	}
	if report.Summary.Claims < 2 {
		t.Errorf("expected at least 2 claims, got %d", report.Summary.Claims)
	}
	if report.Verification == nil || !report.Verification.Verified {
		t.Errorf("expected passing verification, got %+v", report.Verification)
	}
	if report.LLM != nil {
		t.Error("LLM summary present without a provider")
	}
}

func TestPipeline_ScanFile_NoStoredHash(t *testing.T) {
	path := writeDoc(t, "draft.cgd.md", docBody)
	p := NewPipeline(testConfig())

	result, err := p.ScanFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	// No field present: nothing to verify, not a failure.
	if result.Report.Verification != nil {
		t.Errorf("expected no verification block, got %+v", result.Report.Verification)
	}
}

func TestPipeline_ScanFile_TamperedDocument(t *testing.T) {
	tampered := strings.Replace(sealed(t, docBody), "$99", "$89", 1)
	path := writeDoc(t, "tampered.cgd.md", tampered)
	p := NewPipeline(testConfig())

	result, err := p.ScanFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	v := result.Report.Verification
	if v == nil || v.Verified {
		t.Fatalf("expected failed verification, got %+v", v)
	}
	if v.Failure != model.FailureHashMismatch {
		t.Errorf("failure = %q, want %q", v.Failure, model.FailureHashMismatch)
	}
	if v.Stored == "" || v.Computed == "" || v.Stored == v.Computed {
		t.Errorf("diagnostics incomplete: %+v", v)
	}
}

func TestPipeline_VerifyFile(t *testing.T) {
	path := writeDoc(t, "pricing.cgd.md", sealed(t, docBody))
	p := NewPipeline(testConfig())

	v, err := p.VerifyFile(context.Background(), path)
	if err != nil {
		t.Fatalf("VerifyFile: %v", err)
	}
	if !v.OK || v.FromCache {
		t.Errorf("unexpected result: %+v", v)
	}
	if err := v.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestPipeline_VerifyFile_CacheHit(t *testing.T) {
	path := writeDoc(t, "pricing.cgd.md", sealed(t, docBody))

	cfg := model.DefaultConfig() // cache enabled, memory tier
	p := NewPipeline(cfg)

	first, err := p.VerifyFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Fatal("first verification should not be cached")
	}

	second, err := p.VerifyFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Error("second verification should come from cache")
	}
	if second.OK != first.OK || second.Computed != first.Computed {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestPipeline_VerifyFile_MissingStored(t *testing.T) {
	path := writeDoc(t, "draft.cgd.md", docBody)
	p := NewPipeline(testConfig())

	v, err := p.VerifyFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if v.OK {
		t.Fatal("expected failure")
	}
	if !errors.Is(v.Err(), dochash.ErrMissingStoredHash) {
		t.Errorf("Err() = %v, want ErrMissingStoredHash", v.Err())
	}
}

func TestPipeline_HashFile(t *testing.T) {
	path := writeDoc(t, "doc.cgd.md", docBody)
	p := NewPipeline(testConfig())

	digest, err := p.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	want, err := dochash.Compute(docBody)
	if err != nil {
		t.Fatal(err)
	}
	if digest != want {
		t.Errorf("HashFile = %s, want %s", digest, want)
	}
}

func TestPipeline_ScanFile_HTML(t *testing.T) {
	html := "<html><body><h2>Features</h2><p>The API supports GraphQL.</p></body></html>"
	path := writeDoc(t, "export.html", html)
	p := NewPipeline(testConfig())

	result, err := p.ScanFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if result.Report.Summary.Claims != 1 {
		t.Errorf("claims = %d, want 1", result.Report.Summary.Claims)
	}
	if result.Report.Claims[0].Location != "features/1" {
		t.Errorf("location = %q, want features/1", result.Report.Claims[0].Location)
	}
}

func TestReader_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cgd.md")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(0)
	if _, err := r.Read(path); !errors.Is(err, ErrNotUTF8) {
		t.Errorf("err = %v, want ErrNotUTF8", err)
	}
}

func TestReader_TooLarge(t *testing.T) {
	path := writeDoc(t, "big.cgd.md", strings.Repeat("x", 100))

	r := NewReader(10)
	if _, err := r.Read(path); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestReader_MissingFile(t *testing.T) {
	r := NewReader(0)
	if _, err := r.Read("/nonexistent/doc.cgd.md"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want fs not-exist error to propagate unchanged", err)
	}
}

func TestRenderer_Outputs(t *testing.T) {
	path := writeDoc(t, "pricing.cgd.md", sealed(t, docBody))
	p := NewPipeline(testConfig())

	result, err := p.ScanFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	if err := p.RenderReport(result.Report, jsonPath, mdPath, false); err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(jsonData), "\"claims\"") {
		t.Error("JSON report missing claims field")
	}

	mdData, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	md := string(mdData)
	if !strings.Contains(md, "PASS: document hash verified") {
		t.Errorf("Markdown report missing integrity line:\n%s", md)
	}
	if !strings.Contains(md, "claim-") {
		t.Error("Markdown report missing claim identifiers")
	}
}
