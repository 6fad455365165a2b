package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.calls = append(s.calls, text)
	if s.err != nil {
		return EmbeddingResult{}, s.err
	}
	return EmbeddingResult{Embedding: s.vectors[text], PromptTokens: 2, TotalTokens: 3}, nil
}

func TestBatchFallback_PreservesOrder(t *testing.T) {
	inner := &stubEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
		"c": {1, 1},
	}}

	res, err := BatchFallback(context.Background(), inner, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 3 {
		t.Fatalf("expected 3 embeddings, got %d", len(res.Embeddings))
	}
	if res.Embeddings[0][0] != 1 || res.Embeddings[0][1] != 1 {
		t.Errorf("expected first vector to belong to %q, got %v", "c", res.Embeddings[0])
	}
	if res.Embeddings[2][1] != 1 || res.Embeddings[2][0] != 0 {
		t.Errorf("expected last vector to belong to %q, got %v", "b", res.Embeddings[2])
	}
	if res.PromptTokens != 6 || res.TotalTokens != 9 {
		t.Errorf("expected summed usage 6/9, got %d/%d", res.PromptTokens, res.TotalTokens)
	}
}

func TestBatchFallback_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	inner := &stubEmbedder{err: innerErr}

	_, err := BatchFallback(context.Background(), inner, []string{"a", "b"})
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
	if len(inner.calls) != 1 {
		t.Errorf("expected to stop after first failure, got %d calls", len(inner.calls))
	}
}

func TestTokenUsage(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())

	UsageFromContext(ctx).AddEmbeddingTokens(10)
	UsageFromContext(ctx).AddGenerationTokens(32)

	if !u.Used {
		t.Error("expected Used=true")
	}
	if u.Total() != 42 {
		t.Errorf("expected total 42, got %d", u.Total())
	}
}

func TestTokenUsage_NilSafe(t *testing.T) {
	u := UsageFromContext(context.Background())
	if u != nil {
		t.Fatal("expected nil usage without collector")
	}
	u.AddEmbeddingTokens(5)
	u.AddGenerationTokens(5)
	if u.Total() != 0 {
		t.Errorf("expected 0 for nil usage, got %d", u.Total())
	}
}
