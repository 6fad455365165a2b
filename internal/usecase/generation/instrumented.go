package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/metrics"
	"github.com/kailas-cloud/homechef/internal/usecase/budget"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(kind budget.Kind, tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

type generator interface {
	domain.Generator
	domain.VisionGenerator
	domain.ChatCompleter
}

// InstrumentedGenerator wraps a generation provider with budget enforcement and logging.
// Every error it returns wraps domain.ErrGeneration, quota rejections included.
type InstrumentedGenerator struct {
	inner    generator
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedGenerator wraps a generator with budget and observability.
func NewInstrumentedGenerator(
	inner generator, provider, model string,
	b BudgetChecker, logger *zap.Logger,
) *InstrumentedGenerator {
	return &InstrumentedGenerator{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   b,
		logger:   logger,
	}
}

// Generate implements domain.Generator.
func (g *InstrumentedGenerator) Generate(ctx context.Context, prompt string) (domain.GenerationResult, error) {
	return g.call(ctx, "text", func() (domain.GenerationResult, error) {
		return g.inner.Generate(ctx, prompt)
	})
}

// GenerateWithImage implements domain.VisionGenerator.
func (g *InstrumentedGenerator) GenerateWithImage(
	ctx context.Context, prompt string, image domain.Image,
) (domain.GenerationResult, error) {
	return g.call(ctx, "vision", func() (domain.GenerationResult, error) {
		return g.inner.GenerateWithImage(ctx, prompt, image)
	})
}

// CompleteChat implements domain.ChatCompleter.
func (g *InstrumentedGenerator) CompleteChat(
	ctx context.Context, systemInstruction string, history []domain.Message,
) (domain.GenerationResult, error) {
	return g.call(ctx, "chat", func() (domain.GenerationResult, error) {
		return g.inner.CompleteChat(ctx, systemInstruction, history)
	})
}

func (g *InstrumentedGenerator) call(
	ctx context.Context, kind string, fn func() (domain.GenerationResult, error),
) (domain.GenerationResult, error) {
	if g.budget != nil {
		if err := g.budget.Check(ctx); err != nil {
			g.logger.Error("Budget exceeded",
				zap.String("provider", g.provider),
				zap.String("model", g.model),
				zap.String("kind", kind),
				zap.Error(err),
			)
			return domain.GenerationResult{}, fmt.Errorf("%w: budget check: %w", domain.ErrGeneration, err)
		}
	}

	start := time.Now()
	result, err := fn()
	duration := time.Since(start)

	if err != nil {
		g.logger.Error("Generation request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.String("kind", kind),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if errors.Is(err, domain.ErrGeneration) {
			return domain.GenerationResult{}, err
		}
		return domain.GenerationResult{}, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	domain.UsageFromContext(ctx).AddGenerationTokens(result.TotalTokens)
	if g.budget != nil {
		g.budget.Record(budget.KindGeneration, int64(result.TotalTokens))
		remaining := metrics.BudgetTokensRemaining
		remaining.WithLabelValues(g.provider, "daily").Set(float64(g.budget.RemainingDaily()))
		remaining.WithLabelValues(g.provider, "monthly").Set(float64(g.budget.RemainingMonthly()))
	}

	g.logger.Debug("Generation request completed",
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.String("kind", kind),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
	)

	return result, nil
}
