// Package extract finds assertion-bearing sentences in document sections
// and assigns each one a stable claim identifier.
package extract

import (
	"fmt"
	"strings"

	"github.com/claritygate/claritygate/internal/ident"
	"github.com/claritygate/claritygate/internal/model"
)

// ClaimExtractor extracts candidate claims from parsed document sections.
type ClaimExtractor struct {
	keywords []string
}

// NewClaimExtractor creates a new claim extractor with the default
// assertion keywords.
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		keywords: []string{
			"is", "are", "was", "were", "supports", "requires",
			"must", "shall", "will", "provides", "costs", "includes",
			"according to", "is defined as", "guarantees", "depends on",
		},
	}
}

// Extract scans each section's sentences for assertion keywords and
// returns the matching sentences as claims. Locations are
// "<section-slug>/<ordinal>" with ordinals 1-based per section, so a
// claim keeps its address when other sections are edited.
func (e *ClaimExtractor) Extract(sections []model.Section) ([]model.Claim, error) {
	var claims []model.Claim

	for _, section := range sections {
		ordinal := 0
		for i, sentence := range splitSentences(section.Text) {
			keyword, ok := e.match(sentence)
			if !ok {
				continue
			}
			ordinal++
			location := fmt.Sprintf("%s/%d", section.Slug, ordinal)
			id, err := ident.Generate(sentence, location)
			if err != nil {
				return nil, fmt.Errorf("fingerprint claim at %s: %w", location, err)
			}
			claims = append(claims, model.Claim{
				ID:        id,
				Text:      strings.TrimSpace(sentence),
				Location:  location,
				Type:      classify(keyword),
				Heuristic: "keyword:" + keyword,
				Sentence:  i,
			})
		}
	}

	return dedupeClaims(claims), nil
}

// classify maps the matched keyword to a rough claim category.
func classify(keyword string) model.ClaimType {
	switch keyword {
	case "must", "shall", "requires":
		return model.ClaimTypeNormative
	case "according to":
		return model.ClaimTypeAttribution
	case "is defined as":
		return model.ClaimTypeDefinition
	default:
		return model.ClaimTypeFactual
	}
}

// match reports the first keyword found in the sentence as a whole word.
func (e *ClaimExtractor) match(sentence string) (string, bool) {
	lower := strings.ToLower(sentence)
	for _, keyword := range e.keywords {
		if containsWord(lower, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// containsWord checks for keyword bounded by non-letters, so "is" does
// not match inside "fish".
func containsWord(s, keyword string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], keyword)
		if idx < 0 {
			return false
		}
		abs := start + idx
		end := abs + len(keyword)
		beforeOK := abs == 0 || !isLetter(s[abs-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		start = abs + 1
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitSentences splits section text into sentences (simple heuristic).
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 12 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				flush()
			}
		}
	}
	if current.Len() > 0 {
		flush()
	}

	return sentences
}

// dedupeClaims removes claims whose identifiers collide (identical
// normalized text at the same location).
func dedupeClaims(claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim

	for _, claim := range claims {
		if !seen[claim.ID] {
			seen[claim.ID] = true
			unique = append(unique, claim)
		}
	}

	return unique
}
