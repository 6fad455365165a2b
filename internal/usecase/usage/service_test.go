package usage

import (
	"context"
	"testing"
	"time"

	domusage "github.com/kailas-cloud/homechef/internal/domain/usage"
	"github.com/kailas-cloud/homechef/internal/usecase/budget"
)

// --- Mock ---

type mockBudgetReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	remainingDaily   int64
	remainingMonthly int64
	daily            budget.Usage
	monthly          budget.Usage
	total            budget.Usage
}

func (m *mockBudgetReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockBudgetReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockBudgetReader) RemainingMonthly() int64 { return m.remainingMonthly }
func (m *mockBudgetReader) Daily() budget.Usage     { return m.daily }
func (m *mockBudgetReader) Monthly() budget.Usage   { return m.monthly }
func (m *mockBudgetReader) Total() budget.Usage     { return m.total }

var fixedNow = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func newService(br BudgetReader) *Service {
	s := New(br)
	s.now = func() time.Time { return fixedNow }
	return s
}

// --- Tests ---

func TestGetReport_DailyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       10000,
		remainingDaily:   7000,
		daily:            budget.Usage{Tokens: 3000, EmbeddingRequests: 4, GenerationRequests: 2},
		monthlyLimit:     100000,
		remainingMonthly: 50000,
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodDay)

	if r.Period() != domusage.PeriodDay {
		t.Errorf("expected period %q, got %q", domusage.PeriodDay, r.Period())
	}
	dayStart := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != dayStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", dayStart.UnixMilli(), r.PeriodStart())
	}
	if r.PeriodEnd() != dayStart.Add(24*time.Hour).UnixMilli() {
		t.Errorf("unexpected period end %d", r.PeriodEnd())
	}
	if r.Budget().TokensLimit() != 10000 || r.Budget().TokensRemaining() != 7000 {
		t.Errorf("unexpected budget %+v", r.Budget())
	}
	if r.Budget().IsExhausted() {
		t.Error("budget should not be exhausted")
	}
	if r.Budget().ResetsAt() != r.PeriodEnd() {
		t.Error("daily budget resets at period end")
	}
	if r.Metrics().Tokens() != 3000 || r.Metrics().EmbeddingRequests() != 4 || r.Metrics().GenerationRequests() != 2 {
		t.Errorf("unexpected metrics %+v", r.Metrics())
	}
}

func TestGetReport_MonthlyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		remainingMonthly: 20000,
		monthly:          budget.Usage{Tokens: 80000},
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodMonth)

	monthStart := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != monthStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", monthStart.UnixMilli(), r.PeriodStart())
	}
	if r.PeriodEnd() != time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC).UnixMilli() {
		t.Errorf("unexpected period end %d", r.PeriodEnd())
	}
	if r.Budget().TokensLimit() != 100000 {
		t.Errorf("expected limit 100000, got %d", r.Budget().TokensLimit())
	}
	if r.Metrics().Tokens() != 80000 {
		t.Errorf("expected tokens 80000, got %d", r.Metrics().Tokens())
	}
}

func TestGetReport_TotalPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		remainingMonthly: 0,
		monthly:          budget.Usage{Tokens: 100000},
		total:            budget.Usage{Tokens: 250000, GenerationRequests: 9},
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodTotal)

	if r.PeriodStart() != 0 || r.PeriodEnd() != 0 {
		t.Errorf("expected no boundaries for total, got %d..%d", r.PeriodStart(), r.PeriodEnd())
	}
	if r.Metrics().Tokens() != 250000 || r.Metrics().GenerationRequests() != 9 {
		t.Errorf("expected lifetime totals, got %+v", r.Metrics())
	}
	if !r.Budget().IsExhausted() {
		t.Error("monthly cap reached, budget should be exhausted")
	}
}

func TestGetReport_NilBudgetReader(t *testing.T) {
	r := newService(nil).GetReport(context.Background(), domusage.PeriodDay)

	if r.Budget().TokensLimit() != 0 || r.Budget().TokensRemaining() != 0 {
		t.Errorf("expected zero budget, got %+v", r.Budget())
	}
	if r.Budget().IsExhausted() {
		t.Error("nil budget reader should not be exhausted")
	}
}

func TestGetReport_Unlimited(t *testing.T) {
	br := &mockBudgetReader{remainingDaily: -1, remainingMonthly: -1}
	r := newService(br).GetReport(context.Background(), domusage.PeriodDay)

	if r.Budget().IsExhausted() {
		t.Error("unlimited budget should not be exhausted")
	}
	if r.Budget().TokensRemaining() != -1 {
		t.Errorf("expected -1 remaining, got %d", r.Budget().TokensRemaining())
	}
}

func TestGetReport_Exhausted(t *testing.T) {
	br := &mockBudgetReader{dailyLimit: 5000, remainingDaily: 0}
	r := newService(br).GetReport(context.Background(), domusage.PeriodDay)

	if !r.Budget().IsExhausted() {
		t.Error("budget should be exhausted when remaining is 0")
	}
}
