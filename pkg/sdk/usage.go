package homechef

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/homechef/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport contains model usage for a time period.
// PeriodStart and PeriodEnd are zero for PeriodTotal.
type UsageReport struct {
	Period      UsagePeriod
	PeriodStart time.Time
	PeriodEnd   time.Time
	Metrics     UsageMetrics
	Budget      BudgetStatus
}

// UsageMetrics counts model calls and tokens.
type UsageMetrics struct {
	EmbeddingRequests  int
	GenerationRequests int
	Tokens             int
}

// BudgetStatus tracks token quota state. TokensRemaining is -1 when unlimited.
type BudgetStatus struct {
	TokensLimit     int
	TokensRemaining int
	IsExhausted     bool
	Unlimited       bool
	ResetsAt        time.Time
}

// Usage returns a model usage report for the given period.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) (_ UsageReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, err) }()

	p, err := domusage.ParsePeriod(string(period))
	if err != nil {
		return UsageReport{}, err
	}

	report := c.usageSvc.GetReport(ctx, p)
	m := report.Metrics()
	b := report.Budget()

	out := UsageReport{
		Period: UsagePeriod(report.Period()),
		Metrics: UsageMetrics{
			EmbeddingRequests:  m.EmbeddingRequests(),
			GenerationRequests: m.GenerationRequests(),
			Tokens:             m.Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     b.TokensLimit(),
			TokensRemaining: b.TokensRemaining(),
			IsExhausted:     b.IsExhausted(),
			Unlimited:       b.Unlimited(),
		},
	}
	if report.PeriodStart() > 0 {
		out.PeriodStart = time.UnixMilli(report.PeriodStart()).UTC()
		out.PeriodEnd = time.UnixMilli(report.PeriodEnd()).UTC()
	}
	if b.ResetsAt() > 0 {
		out.Budget.ResetsAt = time.UnixMilli(b.ResetsAt()).UTC()
	}
	return out, nil
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
