// Package pipeline orchestrates document scanning and verification:
// read, parse, extract claims, check the stored hash, render reports.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/claritygate/claritygate/internal/cache"
	"github.com/claritygate/claritygate/internal/dochash"
	"github.com/claritygate/claritygate/internal/document"
	"github.com/claritygate/claritygate/internal/extract"
	"github.com/claritygate/claritygate/internal/llm"
	"github.com/claritygate/claritygate/internal/model"
)

// Pipeline orchestrates the complete scan and verification process.
type Pipeline struct {
	reader     *Reader
	extractor  *extract.ClaimExtractor
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	store      cache.Cache     // Optional verification cache (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		}
	}

	return &Pipeline{
		reader:     NewReader(cfg.Scan.MaxBytes),
		extractor:  extract.NewClaimExtractor(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		store:      store,
		config:     cfg,
	}
}

// ScanResult contains the complete scan result.
type ScanResult struct {
	Report *model.Report
	Error  error
}

// ScanFile scans a single document and generates a complete report.
func (p *Pipeline) ScanFile(ctx context.Context, path string) (*ScanResult, error) {
	content, err := p.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var sections []model.Section
	var doc *model.Document
	if isHTMLPath(path) {
		sections, err = extract.SectionsFromHTML(content)
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		doc = &model.Document{Path: path, Sections: sections}
		stored, markers := dochash.ExtractStored(dochash.Normalize(content))
		doc.StoredHash, doc.MarkerLines = stored, markers
	} else {
		doc, err = document.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		doc.Path = path
		sections = doc.Sections
	}

	claims, err := p.extractor.Extract(sections)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	report := &model.Report{
		Path:      path,
		ScannedAt: time.Now().UTC(),
		Document:  *doc,
		Claims:    claims,
		Summary: model.Summary{
			Sections: len(sections),
			Claims:   len(claims),
		},
	}

	// A stored hash means the document claims an integrity state; check it.
	if doc.MarkerLines > 0 {
		result, err := dochash.Verify(content)
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		report.Verification = verificationFromResult(result)
	}

	// LLM summary last, after the deterministic result is complete.
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return &ScanResult{Report: report}, nil
}

// FileVerification is the outcome of verifying one document on disk.
type FileVerification struct {
	Path        string
	OK          bool
	Stored      string
	Computed    string
	MarkerLines int
	FromCache   bool
}

// Err mirrors dochash.VerifyResult.Err for a file-level result.
func (v *FileVerification) Err() error {
	return dochash.VerifyResult{
		OK:          v.OK,
		Stored:      v.Stored,
		Computed:    v.Computed,
		MarkerLines: v.MarkerLines,
	}.Err()
}

// VerifyFile verifies the document at path against its stored hash,
// consulting the verification cache when enabled.
func (p *Pipeline) VerifyFile(ctx context.Context, path string) (*FileVerification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key string
	if p.store != nil {
		if info, err := os.Stat(path); err == nil {
			key = cache.FileKey(path, info.Size(), info.ModTime())
			if rec, found := p.store.Get(key); found {
				return &FileVerification{
					Path:        path,
					OK:          rec.OK,
					Stored:      rec.Stored,
					Computed:    rec.Computed,
					MarkerLines: rec.MarkerLines,
					FromCache:   true,
				}, nil
			}
		}
	}

	content, err := p.reader.Read(path)
	if err != nil {
		return nil, err
	}

	result, err := dochash.Verify(content)
	if err != nil {
		return nil, err
	}

	verification := &FileVerification{
		Path:        path,
		OK:          result.OK,
		Stored:      result.Stored,
		Computed:    result.Computed,
		MarkerLines: result.MarkerLines,
	}

	if p.store != nil && key != "" {
		_ = p.store.Set(key, cache.Record{
			Computed:    result.Computed,
			Stored:      result.Stored,
			OK:          result.OK,
			MarkerLines: result.MarkerLines,
		}, 0)
	}

	return verification, nil
}

// HashFile computes the integrity hash of the document at path.
func (p *Pipeline) HashFile(path string) (string, error) {
	content, err := p.reader.Read(path)
	if err != nil {
		return "", err
	}
	return dochash.Compute(content)
}

// RenderReport renders the report to the specified outputs.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmMdPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote LLM Summary: %s\n", llmMdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

func verificationFromResult(r dochash.VerifyResult) *model.Verification {
	v := &model.Verification{
		Verified:    r.OK,
		Stored:      r.Stored,
		Computed:    r.Computed,
		MarkerLines: r.MarkerLines,
	}
	switch {
	case r.OK:
	case r.Stored == "":
		v.Failure = model.FailureMissingStoredHash
	default:
		v.Failure = model.FailureHashMismatch
	}
	return v
}

func isHTMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
