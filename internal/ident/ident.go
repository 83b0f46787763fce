// Package ident computes stable, hash-based claim identifiers for
// human-in-the-loop claim tracking.
//
// An identifier is derived from the claim's wording plus its structural
// location in the document, so the same claim keeps the same identifier
// across cosmetic reformatting.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Prefix is the literal prefix of every claim identifier.
const Prefix = "claim-"

// ErrNotUTF8 indicates that an input string is not valid UTF-8.
// Hashing invalid input would produce a silently wrong identifier,
// so the call fails instead.
var ErrNotUTF8 = errors.New("input is not valid UTF-8")

// NormalizeText normalizes claim text for consistent hashing:
// outer whitespace is stripped and every internal run of whitespace
// (spaces, tabs, newlines) collapses to a single ASCII space.
//
// "Price is  $99" (two spaces) hashes the same as "Price is $99".
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeLocation strips outer whitespace from a location address.
// Internal whitespace is preserved: locations are structured
// ("heading-slug/ordinal"), not prose.
func NormalizeLocation(location string) string {
	return strings.TrimSpace(location)
}

// Generate computes the stable claim identifier for the given claim text
// and location address.
//
// The payload is "<normalized text>|<normalized location>"; the identifier
// is "claim-" plus the first 8 hex characters of the payload's SHA-256.
// The pipe is a fixed, unescaped delimiter: a text or location that itself
// contains "|" can collide with another pair. Known limitation, kept so
// identifiers match the published vectors.
func Generate(text, location string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("claim text: %w", ErrNotUTF8)
	}
	if !utf8.ValidString(location) {
		return "", fmt.Errorf("claim location: %w", ErrNotUTF8)
	}

	payload := NormalizeText(text) + "|" + NormalizeLocation(location)
	sum := sha256.Sum256([]byte(payload))
	return Prefix + hex.EncodeToString(sum[:])[:8], nil
}
