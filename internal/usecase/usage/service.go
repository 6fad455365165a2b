package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/homechef/internal/domain/usage"
	"github.com/kailas-cloud/homechef/internal/domain/usage/budget"
	"github.com/kailas-cloud/homechef/internal/domain/usage/metrics"
	budgetuc "github.com/kailas-cloud/homechef/internal/usecase/budget"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader) *Service {
	return &Service{br: br, now: func() time.Time { return time.Now().UTC() }}
}

// GetReport builds a usage report for the given period.
// Request counts are process-local; token counts survive restarts when the budget is persisted.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now()
	var start, end int64
	var limit, remaining int64
	var used budgetuc.Usage

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		if s.br != nil {
			limit = s.br.DailyLimit()
			remaining = s.br.RemainingDaily()
			used = s.br.Daily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			remaining = s.br.RemainingMonthly()
			used = s.br.Monthly()
		}
	default:
		// total: no period boundaries, budget shown against the monthly cap
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			remaining = s.br.RemainingMonthly()
			used = s.br.Total()
		}
	}

	b := budget.New(int(limit), int(remaining), end)
	m := metrics.New(int(used.EmbeddingRequests), int(used.GenerationRequests), int(used.Tokens))

	return domusage.NewReport(period, start, end, m, b)
}
