// Package document parses clarity-gated documents (.cgd.md): optional
// YAML front matter between --- fences, a Markdown body split into
// heading-delimited sections, and at most one document-sha256 field.
package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claritygate/claritygate/internal/dochash"
	"github.com/claritygate/claritygate/internal/model"
)

// Parse parses document content into its structural model. Content is
// normalized (BOM, line endings) before parsing so section text and claim
// ordinals are platform-independent, same as hashing.
func Parse(content string) (*model.Document, error) {
	normalized := dochash.Normalize(content)

	doc := &model.Document{}
	doc.StoredHash, doc.MarkerLines = dochash.ExtractStored(normalized)

	body := normalized
	if fm, rest, ok := splitFrontMatter(normalized); ok {
		if err := parseFrontMatter(fm, doc); err != nil {
			return nil, err
		}
		body = rest
	}

	doc.Sections = splitSections(body)
	if doc.Title == "" {
		for _, s := range doc.Sections {
			if s.Level == 1 {
				doc.Title = s.Title
				break
			}
		}
	}

	return doc, nil
}

// splitFrontMatter detaches a leading YAML front matter block. The block
// must start at the first line with exactly "---" and end at the next
// line that is "---" or "...".
func splitFrontMatter(content string) (fm, rest string, ok bool) {
	if !strings.HasPrefix(content, "---\n") {
		return "", "", false
	}
	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] == "---" || lines[i] == "..." {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", "", false
}

// parseFrontMatter decodes YAML front matter into the document, lifting
// the well-known fields and keeping the rest as strings.
func parseFrontMatter(fm string, doc *model.Document) error {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal([]byte(fm), &raw); err != nil {
		return fmt.Errorf("parse front matter: %w", err)
	}

	for k, v := range raw {
		val := fmt.Sprintf("%v", v)
		switch k {
		case "title":
			doc.Title = val
		case "status":
			doc.Status = val
		case "document-sha256":
			// Already extracted via the marker-line scan; the front
			// matter copy is informational only.
		default:
			if doc.FrontMatter == nil {
				doc.FrontMatter = make(map[string]string)
			}
			doc.FrontMatter[k] = val
		}
	}
	return nil
}

// splitSections cuts the body at Markdown headings. Text before the first
// heading lands in an unnamed preamble section with slug "preamble".
func splitSections(body string) []model.Section {
	var sections []model.Section
	var current *model.Section
	var text strings.Builder

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(text.String())
			sections = append(sections, *current)
		}
		text.Reset()
	}

	for _, line := range strings.Split(body, "\n") {
		if level, title, ok := parseHeading(line); ok {
			flush()
			current = &model.Section{
				Slug:  Slugify(title),
				Title: title,
				Level: level,
			}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			current = &model.Section{Slug: "preamble", Title: "", Level: 0}
		}
		text.WriteString(line)
		text.WriteString("\n")
	}
	flush()

	return sections
}

// parseHeading recognizes ATX headings (# .. ######) with at least one
// space after the hashes.
func parseHeading(line string) (level int, title string, ok bool) {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i > 6 || i >= len(line) || line[i] != ' ' {
		return 0, "", false
	}
	title = strings.TrimSpace(line[i:])
	if title == "" {
		return 0, "", false
	}
	return i, title, true
}

// Slugify turns heading text into a location slug: lowercase alphanumeric
// runs joined by single hyphens ("API Pricing" -> "api-pricing").
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
