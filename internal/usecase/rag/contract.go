package rag

import (
	"context"

	"github.com/kailas-cloud/homechef/internal/domain/vector"
)

// Extractor pulls raw text out of an uploaded file.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Embedder vectorizes segments and queries.
type Embedder interface {
	EmbedSegments(ctx context.Context, segments []string) (vector.Matrix, error)
	EmbedQuery(ctx context.Context, text string) (vector.Matrix, error)
}
