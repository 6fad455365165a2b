package chunk

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// DefaultSize is the segment length in characters used for cookbook ingestion.
const DefaultSize = 2000

// Split cuts text into consecutive non-overlapping segments of exactly size
// characters (Unicode code points); the last segment may be shorter.
// Splitting ignores word and sentence boundaries.
func Split(text string, size int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, size)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	runes := []rune(text)
	segments := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		segments = append(segments, string(runes[start:end]))
	}
	return segments, nil
}
