package model

import "time"

// Report represents the complete result of scanning one document.
type Report struct {
	Path      string    `json:"path"`       // Document that was scanned
	ScannedAt time.Time `json:"scanned_at"` // When the scan occurred

	Document Document `json:"document"` // Parsed document structure
	Claims   []Claim  `json:"claims"`   // Extracted claims with stable identifiers

	Verification *Verification `json:"verification,omitempty"` // Stored-hash check, if a field was present
	Summary      Summary       `json:"summary"`                // Totals for quick display

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (advisory, never affects verification)
}

// Verification records the outcome of checking a document against its
// stored document-sha256 field.
type Verification struct {
	Verified    bool   `json:"verified"`
	Stored      string `json:"stored,omitempty"`   // Stored digest, empty when the field is missing
	Computed    string `json:"computed,omitempty"` // Computed digest
	Failure     string `json:"failure,omitempty"`  // "missing stored hash" or "hash mismatch"
	MarkerLines int    `json:"marker_lines,omitempty"`
}

// Verification failure names as rendered in reports and diagnostics.
const (
	FailureMissingStoredHash = "missing stored hash"
	FailureHashMismatch      = "hash mismatch"
)

// Summary holds per-document totals.
type Summary struct {
	Sections int `json:"sections"`
	Claims   int `json:"claims"`
}

// LLMSummary contains an optional LLM-generated summary of the report.
// It is advisory prose over the deterministic result and never feeds back
// into hashing or verification.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"` // openai, ollama
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
