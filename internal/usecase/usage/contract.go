package usage

import "github.com/kailas-cloud/homechef/internal/usecase/budget"

// BudgetReader provides read-only access to token budget state.
type BudgetReader interface {
	DailyLimit() int64
	MonthlyLimit() int64
	RemainingDaily() int64
	RemainingMonthly() int64
	Daily() budget.Usage
	Monthly() budget.Usage
	Total() budget.Usage
}
