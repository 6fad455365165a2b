package session

import (
	"context"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/usecase/rag"
)

// Describer answers a prompt about an image.
type Describer interface {
	Describe(ctx context.Context, prompt string, image domain.Image) (string, error)
}

// Retriever ingests cookbooks and answers questions grounded in them.
type Retriever interface {
	Ingest(ctx context.Context, cache *rag.Cache, doc document.Document) (document.Ingested, bool, error)
	Answer(ctx context.Context, query string, doc document.Ingested) (string, error)
}
