// Package llm generates optional natural-language summaries of scan
// reports. Summaries are advisory prose: they never feed back into
// hashing, identifiers, or verification.
package llm

import (
	"context"
	"fmt"

	"github.com/claritygate/claritygate/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the scan report to summarize
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama's OpenAI-compatible API)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The prompt
// constrains the model to describe the report, not to judge the claims.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing a claritygate document scan report. The tool tracks claims by stable identifier and checks document integrity - it NEVER judges whether claims are true.

CRITICAL RULES:
1. Describe only what the report contains: claim counts, locations, integrity status.
2. Do not assess, endorse, or dispute any claim's content.
3. If integrity verification failed, state the failure kind exactly as reported.

Report Summary:
- Document: %s
- Sections: %d
- Claims identified: %d
`, report.Path, report.Summary.Sections, report.Summary.Claims)

	if v := report.Verification; v != nil {
		if v.Verified {
			prompt += "- Integrity: PASS\n"
		} else {
			prompt += fmt.Sprintf("- Integrity: FAIL (%s)\n", v.Failure)
		}
	} else {
		prompt += "- Integrity: no stored hash field present\n"
	}

	if len(report.Claims) > 0 {
		prompt += "\nClaims:\n"
		for i, c := range report.Claims {
			if i >= 20 { // Limit to first 20 to avoid token bloat
				prompt += fmt.Sprintf("... and %d more claims\n", len(report.Claims)-20)
				break
			}
			prompt += fmt.Sprintf("- %s at %s: %s\n", c.ID, c.Location, c.Text)
		}
	}

	prompt += "\nProvide a 3-4 sentence summary of the document's claim inventory and integrity status."

	return prompt
}
