package dochash

import (
	"fmt"
	"io"
)

// SelfTest runs the fixed normalization checks (BOM removal, CRLF to LF,
// lone CR to LF), writing a PASS/FAIL line per check to w. It reports
// whether every check passed.
func SelfTest(w io.Writer) bool {
	fmt.Fprintln(w, "=== Normalization Tests ===")

	checks := []struct {
		name string
		in   string
		want string
	}{
		{"BOM removal", "\uFEFF# Test", "# Test"},
		{"CRLF -> LF", "line1\r\nline2\r\n", "line1\nline2\n"},
		{"CR -> LF", "line1\rline2\r", "line1\nline2\n"},
	}

	allPass := true
	for _, c := range checks {
		if got := Normalize(c.in); got != c.want {
			allPass = false
			fmt.Fprintf(w, "FAIL: %s (got %q, want %q)\n", c.name, got, c.want)
			continue
		}
		fmt.Fprintf(w, "PASS: %s\n", c.name)
	}

	if allPass {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PASS: All normalization tests passed")
	}
	return allPass
}
