package worker

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claritygate/claritygate/internal/pipeline"
)

// Verifier defines the interface for verifying one document file.
type Verifier interface {
	VerifyFile(ctx context.Context, path string) (*pipeline.FileVerification, error)
}

// VerifyJob represents one document verification job.
type VerifyJob struct {
	Path     string
	Root     string // Tree root the path came from, for rate limiting
	Verifier Verifier
	Limiter  *Limiter
}

// Execute executes the verification job.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Root); err != nil {
			return &VerifyOutcome{Path: j.Path, Error: err}
		}
	}

	verification, err := j.Verifier.VerifyFile(ctx, j.Path)
	if err != nil {
		return &VerifyOutcome{Path: j.Path, Error: err}
	}
	return &VerifyOutcome{Path: j.Path, Verification: verification}
}

// VerifyOutcome is the result of one verification job.
type VerifyOutcome struct {
	Path         string
	Verification *pipeline.FileVerification
	Error        error
}

// GetError returns the job-level error (I/O, encoding, cancellation).
// A hash mismatch is not a job error; it lives in Verification.
func (o *VerifyOutcome) GetError() error {
	return o.Error
}

// BatchProcessor verifies many documents concurrently.
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. filesPerSecond <= 0
// disables throttling.
func NewBatchProcessor(verifier Verifier, concurrency int, filesPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
		limiter:     NewLimiter(filesPerSecond, burst),
	}
}

// ProcessPaths verifies the given document paths concurrently. Jobs run
// under ctx: when it is cancelled, unfinished paths come back as error
// outcomes instead of silently vanishing. Results are returned sorted by
// path for stable output.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*VerifyOutcome {
	if len(paths) == 0 {
		return []*VerifyOutcome{}
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)

	for _, path := range paths {
		pool.Submit(&VerifyJob{
			Path:     path,
			Root:     rootOf(path),
			Verifier: b.verifier,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	outcomes := make([]*VerifyOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*VerifyOutcome)
	}

	if err := ctx.Err(); err != nil {
		seen := make(map[string]bool, len(outcomes))
		for _, o := range outcomes {
			seen[o.Path] = true
		}
		for _, path := range paths {
			if !seen[path] {
				seen[path] = true
				outcomes = append(outcomes, &VerifyOutcome{Path: path, Error: err})
			}
		}
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Path < outcomes[j].Path })

	return outcomes
}

// ProcessList reads document paths from a list file and verifies them.
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*VerifyOutcome, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ProcessTree walks root and verifies every file matching glob
// (e.g. "*.cgd.md").
func (b *BatchProcessor) ProcessTree(ctx context.Context, root, glob string) ([]*VerifyOutcome, error) {
	paths, err := CollectDocuments(root, glob)
	if err != nil {
		return nil, fmt.Errorf("collect documents: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Empty lines and #-comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// CollectDocuments walks root and returns every regular file whose base
// name matches glob, in walk order.
func CollectDocuments(root, glob string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(glob, d.Name())
		if err != nil {
			return fmt.Errorf("bad glob %q: %w", glob, err)
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// rootOf picks the limiter key for a path: its directory.
func rootOf(path string) string {
	return filepath.Dir(path)
}
