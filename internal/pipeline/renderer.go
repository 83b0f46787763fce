package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/claritygate/claritygate/internal/model"
)

// Renderer writes scan reports as JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	title := report.Document.Title
	if title == "" {
		title = report.Path
	}
	fmt.Fprintf(&b, "# Clarity Gate Report: %s\n\n", title)
	fmt.Fprintf(&b, "- **Document**: %s\n", report.Path)
	fmt.Fprintf(&b, "- **Scanned**: %s\n", report.ScannedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Sections**: %d\n", report.Summary.Sections)
	fmt.Fprintf(&b, "- **Claims**: %d\n", report.Summary.Claims)
	if report.Document.Status != "" {
		fmt.Fprintf(&b, "- **Status**: %s\n", report.Document.Status)
	}
	b.WriteString("\n")

	if v := report.Verification; v != nil {
		b.WriteString("## Integrity\n\n")
		if v.Verified {
			fmt.Fprintf(&b, "PASS: document hash verified: `%s`\n\n", v.Computed)
		} else {
			fmt.Fprintf(&b, "FAIL: %s\n\n", v.Failure)
			if v.Stored != "" {
				fmt.Fprintf(&b, "- Stored:   `%s`\n", v.Stored)
				fmt.Fprintf(&b, "- Computed: `%s`\n\n", v.Computed)
			}
		}
		if v.MarkerLines > 1 {
			fmt.Fprintf(&b, "Warning: %d document-sha256 lines present; the first parseable value was used.\n\n", v.MarkerLines)
		}
	}

	if len(report.Claims) > 0 {
		b.WriteString("## Claims\n\n")
		b.WriteString("| ID | Location | Text |\n")
		b.WriteString("|----|----------|------|\n")
		for _, c := range report.Claims {
			fmt.Fprintf(&b, "| `%s` | `%s` | %s |\n", c.ID, c.Location, escapeCell(c.Text))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by claritygate. Identifiers are deterministic: the same wording at the same location always yields the same ID.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes the LLM summary to its own file, kept apart
// from the deterministic report.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write LLM summary: %w", err)
	}
	return nil
}

// RenderSummary prints a short result summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("Document: %s\n", report.Path)
	fmt.Printf("Sections: %d  Claims: %d\n", report.Summary.Sections, report.Summary.Claims)
	if v := report.Verification; v != nil {
		if v.Verified {
			fmt.Printf("Integrity: PASS (%s)\n", v.Computed)
		} else {
			fmt.Printf("Integrity: FAIL (%s)\n", v.Failure)
		}
	}
}

// escapeCell makes claim text safe inside a Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
