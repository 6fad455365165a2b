package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/vector"
)

type embedder interface {
	domain.Embedder
	domain.BatchEmbedder
}

// Service turns text into vector matrices for retrieval.
type Service struct {
	emb embedder
}

// NewService creates an embedding service over the decorated embedder chain.
func NewService(emb embedder) *Service {
	return &Service{emb: emb}
}

// EmbedSegments returns one row per segment, in input order.
func (s *Service) EmbedSegments(ctx context.Context, segments []string) (vector.Matrix, error) {
	if len(segments) == 0 {
		return vector.Matrix{}, fmt.Errorf("%w: no segments to embed", domain.ErrEmptyInput)
	}

	res, err := s.emb.BatchEmbed(ctx, segments)
	if err != nil {
		return vector.Matrix{}, wrapEmbeddingErr(err)
	}
	if len(res.Embeddings) != len(segments) {
		return vector.Matrix{}, fmt.Errorf("%w: got %d vectors for %d segments",
			domain.ErrEmbeddingService, len(res.Embeddings), len(segments))
	}

	m, err := vector.NewMatrix(res.Embeddings)
	if err != nil {
		return vector.Matrix{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}
	return m, nil
}

// EmbedQuery returns a 1×D matrix for a single query.
func (s *Service) EmbedQuery(ctx context.Context, text string) (vector.Matrix, error) {
	res, err := s.emb.Embed(ctx, text)
	if err != nil {
		return vector.Matrix{}, wrapEmbeddingErr(err)
	}

	m, err := vector.NewMatrix([][]float32{res.Embedding})
	if err != nil {
		return vector.Matrix{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}
	return m, nil
}

func wrapEmbeddingErr(err error) error {
	if errors.Is(err, domain.ErrEmbeddingService) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
}
