package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/claritygate/claritygate/internal/model"
)

// Summarizer wraps a provider and turns scan reports into LLMSummary
// values for embedding in reports.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. A nil provider
// (empty Provider name) yields a disabled summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the LLM summary for a report. The summary is
// generated after the deterministic result is complete and is returned
// separately; callers attach it without modifying the rest of the report.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}

	// A summary that asserts truth defeats the purpose; flag it.
	lower := strings.ToLower(resp.Summary)
	for _, phrase := range []string{"this is true", "this is false", "the claim is correct", "the claim is wrong"} {
		if strings.Contains(lower, phrase) {
			summary.Warnings = append(summary.Warnings, "summary contains a truth judgment: "+phrase)
		}
	}

	return summary, nil
}

// RenderSeparateMarkdown renders the LLM summary as its own Markdown
// document, clearly separated from the deterministic report.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	var b strings.Builder

	b.WriteString("# LLM Summary (advisory)\n\n")
	fmt.Fprintf(&b, "Generated by %s/%s. This summary is prose over the scan report; ", summary.Provider, summary.Model)
	b.WriteString("identifiers and verification results come only from the deterministic pipeline.\n\n")
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
