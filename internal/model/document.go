package model

// Document represents a parsed clarity-gated document (.cgd.md).
type Document struct {
	Path        string            `json:"path,omitempty"`         // Source path, if read from disk
	Title       string            `json:"title,omitempty"`        // From front matter, or first heading
	Status      string            `json:"status,omitempty"`       // From front matter (e.g., "draft", "sealed")
	FrontMatter map[string]string `json:"front_matter,omitempty"` // Remaining front matter fields
	Sections    []Section         `json:"sections,omitempty"`     // Body sections in document order

	StoredHash  string `json:"stored_hash,omitempty"` // Value of the document-sha256 field, if present
	MarkerLines int    `json:"marker_lines,omitempty"`
}

// Section is a heading-delimited slice of the document body. Claims are
// addressed as "<Slug>/<ordinal>" with ordinals 1-based per section.
type Section struct {
	Slug  string `json:"slug"`           // Heading slug (lowercase, hyphen-joined)
	Title string `json:"title"`          // Heading text as written
	Level int    `json:"level"`          // Heading level (## = 2)
	Text  string `json:"text,omitempty"` // Body text under the heading
}
