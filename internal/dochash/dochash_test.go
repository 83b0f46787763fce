package dochash

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func mustCompute(t *testing.T, content string) string {
	t.Helper()
	digest, err := Compute(content)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return digest
}

func TestCompute_OutputFormat(t *testing.T) {
	format := regexp.MustCompile(`^[0-9a-f]{64}$`)
	for _, content := range []string{"", "# Doc\n\nBody.\n", "no trailing newline"} {
		if got := mustCompute(t, content); !format.MatchString(got) {
			t.Errorf("Compute(%q) = %q, does not match [0-9a-f]{64}", content, got)
		}
	}
}

func TestCompute_LineEndingInvariance(t *testing.T) {
	lf := "# Title\n\nline one\nline two\n"
	crlf := strings.ReplaceAll(lf, "\n", "\r\n")
	cr := strings.ReplaceAll(lf, "\n", "\r")

	want := mustCompute(t, lf)
	if got := mustCompute(t, crlf); got != want {
		t.Errorf("CRLF digest %s != LF digest %s", got, want)
	}
	if got := mustCompute(t, cr); got != want {
		t.Errorf("CR digest %s != LF digest %s", got, want)
	}
}

func TestCompute_CRLFNotDoubleConverted(t *testing.T) {
	// A CRLF collapses to one LF, never two.
	if mustCompute(t, "a\r\nb") != mustCompute(t, "a\nb") {
		t.Error("CRLF did not normalize to a single LF")
	}
	if mustCompute(t, "a\r\nb") == mustCompute(t, "a\n\nb") {
		t.Error("CRLF was converted to two LFs")
	}
}

func TestCompute_BOMInvariance(t *testing.T) {
	content := "# Doc\n\nBody.\n"
	if mustCompute(t, "\uFEFF"+content) != mustCompute(t, content) {
		t.Error("leading BOM changed the digest")
	}

	// Only a leading BOM is stripped; one mid-content is content.
	mid := "# Doc\n\uFEFFBody.\n"
	if mustCompute(t, mid) == mustCompute(t, "# Doc\nBody.\n") {
		t.Error("mid-content BOM was stripped")
	}
}

func TestCompute_SelfReferenceExcluded(t *testing.T) {
	body := "# Doc\n\nThe API supports GraphQL.\n"
	withField := body + "document-sha256: \"" + strings.Repeat("ab", 32) + "\"\n"
	withOtherField := body + "document-sha256: \"" + strings.Repeat("cd", 32) + "\"\n"

	if mustCompute(t, withField) != mustCompute(t, withOtherField) {
		t.Error("changing the stored hash value changed the computed hash")
	}

	// The marker is anchored to line start: an indented or mid-line
	// occurrence is ordinary content.
	indented := body + "  document-sha256: \"" + strings.Repeat("ab", 32) + "\"\n"
	if mustCompute(t, indented) == mustCompute(t, body+"\n") {
		t.Error("indented marker was stripped")
	}
}

func TestCompute_MarkerLineLeavesEmptyLine(t *testing.T) {
	// Stripping deletes the line content but keeps its newline.
	content := "a\ndocument-sha256: x\nb\n"
	want := mustCompute(t, "a\n\nb\n")
	if got := mustCompute(t, content); got != want {
		t.Errorf("marker strip produced %s, want digest of %q", got, "a\n\nb\n")
	}
}

// seal appends a stored-hash line whose value verifies. The digest is
// computed with the marker line already in place, since stripping keeps
// the line's newline.
func seal(t *testing.T, content string) string {
	t.Helper()
	digest := mustCompute(t, content+"document-sha256: \""+strings.Repeat("0", 64)+"\"\n")
	return content + "document-sha256: \"" + digest + "\"\n"
}

func TestVerify_RoundTrip(t *testing.T) {
	content := "# Pricing\n\nBase price is $99/mo.\n"
	sealed := seal(t, content)
	digest := mustCompute(t, sealed)

	result, err := Verify(sealed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.OK {
		t.Fatalf("round-trip verification failed: %+v", result)
	}
	if result.Stored != digest || result.Computed != digest {
		t.Errorf("stored=%s computed=%s, want both %s", result.Stored, result.Computed, digest)
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestVerify_Mismatch(t *testing.T) {
	sealed := seal(t, "# Pricing\n\nBase price is $99/mo.\n")
	digest := mustCompute(t, sealed)

	// Mutating any other character must fail with a mismatch.
	mutated := strings.Replace(sealed, "$99", "$98", 1)
	result, err := Verify(mutated)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.OK {
		t.Fatal("verification passed for mutated content")
	}
	if result.Stored != digest {
		t.Errorf("stored = %s, want %s", result.Stored, digest)
	}
	if result.Computed == "" || result.Computed == digest {
		t.Errorf("computed = %q, want a different digest", result.Computed)
	}
	if err := result.Err(); !strings.Contains(err.Error(), "stored") {
		t.Errorf("Err() = %v, want diagnostic with stored and computed values", err)
	}
}

func TestVerify_MissingStoredHash(t *testing.T) {
	result, err := Verify("# Doc\n\nNo field here.\n")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.OK || result.Stored != "" {
		t.Fatalf("expected missing-stored-hash failure, got %+v", result)
	}
	if result.Err() != ErrMissingStoredHash {
		t.Errorf("Err() = %v, want ErrMissingStoredHash", result.Err())
	}
}

func TestVerify_ValueFormats(t *testing.T) {
	content := "body\n"
	// All variants strip to the same bytes: body, then an empty line.
	digest := mustCompute(t, content+"\n")

	cases := []string{
		"document-sha256: \"" + digest + "\"",
		"document-sha256: '" + digest + "'",
		"document-sha256: " + digest,
		"document-sha256:" + digest,
		"document-sha256:    " + digest,
	}

	for _, line := range cases {
		sealed := content + line + "\n"
		result, err := Verify(sealed)
		if err != nil {
			t.Fatalf("Verify(%q): %v", line, err)
		}
		// Adding the marker line must not change the computed hash.
		if result.Computed != digest {
			t.Errorf("%q: computed %s, want %s", line, result.Computed, digest)
		}
		if !result.OK {
			t.Errorf("%q: verification failed: %+v", line, result)
		}
	}
}

func TestVerify_ShortValueIsMissing(t *testing.T) {
	result, err := Verify("body\ndocument-sha256: \"abc123\"\n")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Stored != "" {
		t.Errorf("stored = %q, want empty for a short value", result.Stored)
	}
	if result.MarkerLines != 1 {
		t.Errorf("MarkerLines = %d, want 1", result.MarkerLines)
	}
}

func TestVerify_UppercaseValueRejected(t *testing.T) {
	// Digests are always emitted lowercase; comparison is case-sensitive.
	upper := strings.ToUpper(strings.Repeat("ab", 32))
	result, err := Verify("body\ndocument-sha256: " + upper + "\n")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Stored != "" {
		t.Errorf("stored = %q, want empty for uppercase value", result.Stored)
	}
}

func TestVerify_DuplicateMarkers_FirstWins(t *testing.T) {
	content := "body\n"
	digest := mustCompute(t, content+"\n\n") // two marker lines stripped to two empty lines

	sealed := content + "document-sha256: " + digest + "\ndocument-sha256: " + strings.Repeat("00", 32) + "\n"
	result, err := Verify(sealed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.MarkerLines != 2 {
		t.Errorf("MarkerLines = %d, want 2", result.MarkerLines)
	}
	if result.Stored != digest {
		t.Errorf("stored = %s, want first value %s", result.Stored, digest)
	}
	if !result.OK {
		t.Errorf("verification failed: %+v", result)
	}
}

func TestVerify_CRLFDocument(t *testing.T) {
	content := "# Doc\r\n\r\nBody line.\r\n"
	digest := mustCompute(t, content+"document-sha256: x\r\n")

	// Seal with CRLF line endings too; normalization makes them agree.
	sealed := content + "document-sha256: \"" + digest + "\"\r\n"
	result, err := Verify(sealed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.OK {
		t.Fatalf("CRLF round trip failed: %+v", result)
	}
}

func TestVerify_InvalidUTF8(t *testing.T) {
	if _, err := Verify("body\n" + string([]byte{0xff, 0xfe})); err == nil {
		t.Error("expected encoding error for invalid UTF-8")
	}
}

func TestCompute_InvalidUTF8(t *testing.T) {
	if _, err := Compute(string([]byte{0xff, 0xfe})); err == nil {
		t.Error("expected encoding error for invalid UTF-8")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\uFEFF# Test", "# Test"},
		{"line1\r\nline2\r\n", "line1\nline2\n"},
		{"line1\rline2\r", "line1\nline2\n"},
		{"mixed\r\nand\rand\n", "mixed\nand\nand\n"},
		{"plain\n", "plain\n"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelfTest(t *testing.T) {
	var buf bytes.Buffer
	if !SelfTest(&buf) {
		t.Fatalf("self test failed:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "PASS: All normalization tests passed") {
		t.Errorf("missing final PASS line:\n%s", buf.String())
	}
}
