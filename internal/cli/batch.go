package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/internal/model"
	"github.com/claritygate/claritygate/internal/pipeline"
	"github.com/claritygate/claritygate/internal/worker"
)

var (
	concurrency    int
	batchTimeout   time.Duration
	batchGlob      string
	batchList      bool
	noCache        bool
	cacheDir       string
	filesPerSecond float64
	burstSize      int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Verify many documents in parallel",
	Long: `Batch verifies documents concurrently:
- Each path may be a document, or a directory walked for matching files
- With --list, each path is a file of document paths (one per line)
- Unchanged files re-verify from cache
- Exit code is 1 if any document fails verification

Example:
  claritygate batch docs/
  claritygate batch docs/ specs/ --concurrency 8
  claritygate batch --list manifests.txt --max-files-per-sec 50`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchGlob, "glob", "*.cgd.md", "file pattern for directory walks")
	batchCmd.Flags().BoolVar(&batchList, "list", false, "treat arguments as list files of document paths")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the verification cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the verification cache to this directory")
	batchCmd.Flags().Float64Var(&filesPerSecond, "max-files-per-sec", 0, "throttle file processing per directory (0 = unlimited)")
	batchCmd.Flags().IntVar(&burstSize, "burst", 16, "rate limiter burst size")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.Workers = concurrency
	cfg.RateLimiting.FilesPerSecond = filesPerSecond
	cfg.RateLimiting.BurstSize = burstSize
	cfg.Scan.DocumentGlob = batchGlob
	cfg.Output.Verbose = verbose

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency, filesPerSecond, burstSize)

	outcomes, err := runBatchArgs(ctx, processor, args)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Verified %d documents with %d workers\n\n", len(outcomes), concurrency)
	}

	passCount := 0
	failCount := 0
	errCount := 0

	for _, outcome := range outcomes {
		switch {
		case outcome.Error != nil:
			errCount++
			fmt.Printf("ERROR %s: %v\n", outcome.Path, outcome.Error)
		case outcome.Verification.OK:
			passCount++
			note := ""
			if outcome.Verification.FromCache {
				note = " (cached)"
			}
			fmt.Printf("PASS  %s%s\n", outcome.Path, note)
		case outcome.Verification.Stored == "":
			failCount++
			fmt.Printf("FAIL  %s: %s\n", outcome.Path, model.FailureMissingStoredHash)
		default:
			failCount++
			fmt.Printf("FAIL  %s: %s\n", outcome.Path, model.FailureHashMismatch)
			fmt.Printf("      stored:   %s\n", outcome.Verification.Stored)
			fmt.Printf("      computed: %s\n", outcome.Verification.Computed)
		}
	}

	fmt.Println()
	fmt.Printf("Total: %d  Pass: %d  Fail: %d  Errors: %d\n", len(outcomes), passCount, failCount, errCount)

	if failCount > 0 || errCount > 0 {
		return Exit(1)
	}
	return nil
}

// runBatchArgs dispatches each argument to the processor: list files via
// ProcessList, directories via ProcessTree, plain files batched into one
// ProcessPaths call at the end.
func runBatchArgs(ctx context.Context, processor *worker.BatchProcessor, args []string) ([]*worker.VerifyOutcome, error) {
	var outcomes []*worker.VerifyOutcome
	var files []string

	for _, arg := range args {
		if batchList {
			listed, err := processor.ProcessList(ctx, arg)
			if err != nil {
				return nil, err
			}
			outcomes = append(outcomes, listed...)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			walked, err := processor.ProcessTree(ctx, arg, batchGlob)
			if err != nil {
				return nil, err
			}
			outcomes = append(outcomes, walked...)
			continue
		}
		files = append(files, arg)
	}

	if len(files) > 0 {
		outcomes = append(outcomes, processor.ProcessPaths(ctx, files)...)
	}

	if len(outcomes) == 0 {
		return nil, errors.New("no documents found")
	}
	return outcomes, nil
}
