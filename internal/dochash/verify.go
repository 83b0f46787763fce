package dochash

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Verification failure kinds. A document without a recognizable
// stored-hash field is reported distinctly from one whose stored value
// does not match.
var (
	ErrMissingStoredHash = errors.New("no stored document-sha256 found")
	ErrHashMismatch      = errors.New("stored hash does not match computed hash")
)

// VerifyResult reports the outcome of verifying a document against its
// stored hash. Stored and Computed are carried for diagnostic display on
// mismatch.
type VerifyResult struct {
	OK       bool
	Stored   string
	Computed string

	// MarkerLines counts lines beginning with Marker. A well-formed
	// document has exactly one; when there are more, the first
	// parseable value wins and callers may want to warn.
	MarkerLines int
}

// Err returns nil for a successful verification, or the failure as a
// wrapped sentinel (ErrMissingStoredHash or ErrHashMismatch).
func (r VerifyResult) Err() error {
	switch {
	case r.OK:
		return nil
	case r.Stored == "":
		return ErrMissingStoredHash
	default:
		return fmt.Errorf("%w: stored %s, computed %s", ErrHashMismatch, r.Stored, r.Computed)
	}
}

// Verify checks document content against its stored hash field.
//
// The stored value is taken from the first Marker line whose value parses
// as 64 lowercase hex characters, optionally wrapped in single or double
// quotes, with arbitrary whitespace (line breaks included) between the
// marker and the value. The computed value is Compute over the same
// content. Comparison is byte-for-byte; digests are always emitted
// lowercase.
func Verify(content string) (VerifyResult, error) {
	if !utf8.ValidString(content) {
		return VerifyResult{}, fmt.Errorf("verify: %w", ErrNotUTF8)
	}

	stored, markerLines := ExtractStored(Normalize(content))
	result := VerifyResult{Stored: stored, MarkerLines: markerLines}

	if result.Stored == "" {
		return result, nil
	}

	computed, err := Compute(content)
	if err != nil {
		return result, err
	}
	result.Computed = computed
	result.OK = result.Stored == computed
	return result, nil
}

// ExtractStored scans already-normalized content for stored-hash fields.
// It returns the first parseable stored digest (or "") and the count of
// marker lines seen.
func ExtractStored(normalized string) (stored string, markerLines int) {
	for _, start := range markerOffsets(normalized) {
		markerLines++
		if stored == "" {
			if v, ok := parseValue(normalized[start+len(Marker):]); ok {
				stored = v
			}
		}
	}
	return stored, markerLines
}

// markerOffsets returns the byte offsets of every Marker occurrence
// anchored at the start of a line, in document order.
func markerOffsets(content string) []int {
	var offsets []int
	pos := 0
	for {
		idx := strings.Index(content[pos:], Marker)
		if idx < 0 {
			return offsets
		}
		abs := pos + idx
		if abs == 0 || content[abs-1] == '\n' {
			offsets = append(offsets, abs)
		}
		pos = abs + len(Marker)
	}
}

// parseValue reads optional whitespace, an optional quote, and exactly 64
// lowercase hex characters from the head of s.
func parseValue(s string) (string, bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) < 64 {
		return "", false
	}
	for i := 0; i < 64; i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", false
		}
	}
	return s[:64], true
}
