package domain

import "context"

type tokenUsageKey struct{}

// TokenUsage collects model token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// model decorators write after each call; the handler reads it for response headers.
type TokenUsage struct {
	EmbeddingTokens  int
	GenerationTokens int
	Used             bool // true if the model was called, even on a cache hit with 0 tokens
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *TokenUsage) {
	u := &TokenUsage{}
	return context.WithValue(ctx, tokenUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *TokenUsage {
	u, _ := ctx.Value(tokenUsageKey{}).(*TokenUsage)
	return u
}

// AddEmbeddingTokens records tokens consumed by embedding calls.
func (u *TokenUsage) AddEmbeddingTokens(n int) {
	if u != nil {
		u.EmbeddingTokens += n
		u.Used = true
	}
}

// AddGenerationTokens records tokens consumed by generation calls.
func (u *TokenUsage) AddGenerationTokens(n int) {
	if u != nil {
		u.GenerationTokens += n
		u.Used = true
	}
}

// Total returns all tokens recorded so far.
func (u *TokenUsage) Total() int {
	if u == nil {
		return 0
	}
	return u.EmbeddingTokens + u.GenerationTokens
}
