// Package dochash computes and verifies whole-document integrity hashes
// for clarity-gated documents.
//
// The hash is a full SHA-256 hex digest of the document after canonical
// normalization (BOM strip, line endings to LF) and after excluding the
// document's own stored-hash line. Normalization makes the digest stable
// across platforms and editors; the self-reference exclusion makes a
// document able to carry its own hash.
//
// All hashing and verification goes through Normalize: it is the single
// canonicalization choke point, and any change to it changes every digest.
package dochash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Marker is the key token of the stored-hash field. Only lines that
// literally begin with it are recognized, case-sensitive.
const Marker = "document-sha256:"

// ErrNotUTF8 indicates document content that is not valid UTF-8.
var ErrNotUTF8 = errors.New("document is not valid UTF-8")

// Normalize canonicalizes document content for hashing:
//
//  1. one leading U+FEFF byte-order mark is removed,
//  2. every CRLF becomes LF,
//  3. every remaining lone CR becomes LF.
//
// CRLF must collapse as a unit before the lone-CR pass, otherwise a CRLF
// would turn into two LFs.
func Normalize(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return content
}

// stripMarkerLines deletes the content of every line beginning with
// Marker. The line's newline survives, so a stripped line leaves an empty
// line behind. Any tool computing this digest must strip the same bytes.
func stripMarkerLines(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, Marker) {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// Compute returns the integrity hash of content: the lowercase SHA-256 hex
// digest (64 characters, no prefix) of the normalized content with every
// stored-hash line excluded.
func Compute(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", fmt.Errorf("compute hash: %w", ErrNotUTF8)
	}
	normalized := stripMarkerLines(Normalize(content))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), nil
}
