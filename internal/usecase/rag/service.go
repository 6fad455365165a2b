package rag

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/chunk"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/domain/vector"
	"github.com/kailas-cloud/homechef/internal/metrics"
)

// Defaults for segmenting and retrieval.
const (
	DefaultChunkSize = chunk.DefaultSize
	DefaultTopK      = 3
)

// Service runs cookbook ingestion and grounded question answering.
type Service struct {
	extractor Extractor
	embed     Embedder
	gen       domain.Generator
	chunkSize int
	topK      int
	logger    *zap.Logger
}

// New creates a RAG service. Non-positive chunkSize or topK fall back to the defaults.
func New(
	extractor Extractor, embed Embedder, gen domain.Generator,
	chunkSize, topK int, logger *zap.Logger,
) *Service {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		extractor: extractor,
		embed:     embed,
		gen:       gen,
		chunkSize: chunkSize,
		topK:      topK,
		logger:    logger,
	}
}

// Ingest turns a document into segments plus matrix. A cache hit by name skips
// all work. On failure the cache is left as it was and an empty result is returned.
func (s *Service) Ingest(
	ctx context.Context, cache *Cache, doc document.Document,
) (document.Ingested, bool, error) {
	if cached, ok := cache.Get(doc.Name); ok {
		metrics.IngestionsTotal.WithLabelValues("cached").Inc()
		return cached, true, nil
	}

	res, err := s.ingest(ctx, doc)
	if err != nil {
		metrics.IngestionsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Document ingestion failed",
			zap.String("document", doc.Name),
			zap.Int("bytes", len(doc.Data)),
			zap.Error(err),
		)
		return document.Ingested{}, false, err
	}

	cache.Put(res)
	metrics.IngestionsTotal.WithLabelValues("ok").Inc()
	metrics.IngestionSegments.Observe(float64(res.Len()))
	s.logger.Info("Document ingested",
		zap.String("document", doc.Name),
		zap.Int("segments", res.Len()),
		zap.Int("dimensions", res.Matrix().Dim()),
	)
	return res, false, nil
}

func (s *Service) ingest(ctx context.Context, doc document.Document) (document.Ingested, error) {
	text, err := s.extractor.Extract(ctx, doc.Data)
	if err != nil {
		if errors.Is(err, domain.ErrExtraction) {
			return document.Ingested{}, err
		}
		return document.Ingested{}, fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}

	segments, err := chunk.Split(text, s.chunkSize)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			return document.Ingested{}, fmt.Errorf("%w: %w", domain.ErrExtraction, err)
		}
		return document.Ingested{}, fmt.Errorf("chunk: %w", err)
	}

	m, err := s.embed.EmbedSegments(ctx, segments)
	if err != nil {
		return document.Ingested{}, fmt.Errorf("embed segments: %w", err)
	}
	if m.Rows() != len(segments) {
		return document.Ingested{}, fmt.Errorf("%w: %d rows for %d segments",
			domain.ErrEmbeddingService, m.Rows(), len(segments))
	}

	return document.NewIngested(doc.Name, segments, m), nil
}

// Answer retrieves the most similar segments for query and asks the model to answer from them.
func (s *Service) Answer(ctx context.Context, query string, doc document.Ingested) (string, error) {
	if doc.IsEmpty() {
		return "", domain.ErrDocumentNotReady
	}

	q, err := s.embed.EmbedQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	idx, err := vector.TopK(q, doc.Matrix(), s.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}

	retrieved := make([]string, len(idx))
	for i, j := range idx {
		retrieved[i] = doc.Segment(j)
	}

	res, err := s.gen.Generate(ctx, buildPrompt(query, buildContext(retrieved)))
	if err != nil {
		if errors.Is(err, domain.ErrGeneration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	s.logger.Debug("Document answer generated",
		zap.String("document", doc.Name()),
		zap.Ints("segments", idx),
	)
	return res.Text, nil
}
