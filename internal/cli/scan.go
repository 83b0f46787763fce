package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/internal/model"
	"github.com/claritygate/claritygate/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	scanTimeout time.Duration
	maxBytes    int64
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a document: extract claims and check integrity",
	Long: `Scan parses a clarity-gated document (.cgd.md, or an HTML export) to:
- Split the body into heading-delimited sections
- Extract assertion-bearing sentences as claims
- Assign each claim its stable identifier and location
- Verify the stored document-sha256 field when present
- Generate JSON and Markdown reports

Example:
  claritygate scan pricing.cgd.md
  claritygate scan pricing.cgd.md --json report.json --md report.md
  claritygate scan pricing.cgd.md --llm --llm-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Input flags
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 10_000_000, "max document bytes to read")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", path)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Scan.MaxBytes = maxBytes
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	// Create pipeline
	p := pipeline.NewPipeline(cfg)

	result, err := p.ScanFile(ctx, path)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Parsed %d sections\n", result.Report.Summary.Sections)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", result.Report.Summary.Claims)
		if v := result.Report.Verification; v != nil {
			fmt.Fprintf(os.Stderr, "✓ Checked stored hash: verified=%v\n", v.Verified)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(result.Report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	// A failed integrity check is a scan-level failure for callers.
	if v := result.Report.Verification; v != nil && !v.Verified {
		return Exit(1)
	}

	return nil
}
