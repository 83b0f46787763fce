package ident

import (
	"fmt"
	"io"
)

// vector is a published (text, location, identifier) test vector.
type vector struct {
	Text     string
	Location string
	Expected string
}

// Vectors are the published claim identifier test vectors. Any
// reimplementation of Generate must reproduce them exactly.
var Vectors = []vector{
	{"Base price is $99/mo", "api-pricing/1", "claim-75fb137a"},
	{"The API supports GraphQL", "features/1", "claim-eb357742"},
}

// equivalence cases: every pair must yield the same identifier as the first.
var equivalences = [][2]string{
	{"Price is $99", "loc/1"},
	{"Price is  $99", "loc/1"},    // double space
	{"  Price is $99  ", "loc/1"}, // outer spaces
	{"Price is $99", "  loc/1  "}, // location spaces
}

// SelfTest runs the published vectors and the normalization-equivalence
// cases, writing a PASS/FAIL line per case to w. It reports whether every
// case passed.
func SelfTest(w io.Writer) bool {
	allPass := true

	fmt.Fprintln(w, "=== Test Vectors ===")
	for _, v := range Vectors {
		got, err := Generate(v.Text, v.Location)
		status := "PASS"
		if err != nil || got != v.Expected {
			status = "FAIL"
			allPass = false
		}
		fmt.Fprintf(w, "%s generate(%q, %q)\n", status, v.Text, v.Location)
		fmt.Fprintf(w, "    Expected: %s\n", v.Expected)
		fmt.Fprintf(w, "    Got:      %s\n", got)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Normalization Tests ===")
	base, err := Generate(equivalences[0][0], equivalences[0][1])
	if err != nil {
		fmt.Fprintf(w, "FAIL base case: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "Base: %s\n", base)
	for _, c := range equivalences[1:] {
		got, err := Generate(c[0], c[1])
		status := "PASS"
		if err != nil || got != base {
			status = "FAIL"
			allPass = false
		}
		fmt.Fprintf(w, "%s generate(%q, %q) == base\n", status, c[0], c[1])
	}

	return allPass
}
