package pipeline

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrTooLarge indicates a document beyond the configured size cap.
// Documents are hashed in memory, so the cap bounds allocation.
var ErrTooLarge = errors.New("document exceeds size limit")

// ErrNotUTF8 indicates a document that is not valid UTF-8. Hashing
// invalid bytes would produce a digest no other tool can reproduce, so
// reading fails instead.
var ErrNotUTF8 = errors.New("document is not valid UTF-8")

// Reader reads documents from disk with a size cap and UTF-8 validation.
type Reader struct {
	maxBytes int64
}

// NewReader creates a Reader with the given size cap (0 = unlimited).
func NewReader(maxBytes int64) *Reader {
	return &Reader{maxBytes: maxBytes}
}

// Read returns the document content at path. I/O errors propagate
// unchanged; there are no retries, since re-reading the same bytes is
// never meaningful for a deterministic computation.
func (r *Reader) Read(path string) (string, error) {
	if r.maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if info.Size() > r.maxBytes {
			return "", fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, info.Size(), r.maxBytes)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}

	return string(data), nil
}
