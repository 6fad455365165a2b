// Package budget describes the token allowance shared by embedding and generation calls.
package budget

// Budget is a point-in-time view of one budget period. A zero limit is unlimited.
type Budget struct {
	limit     int
	remaining int
	resetsAt  int64 // unix millis
}

// New builds a snapshot. remaining is clamped at zero for capped budgets;
// unlimited budgets keep whatever the tracker reports (conventionally -1).
func New(limit, remaining int, resetsAt int64) Budget {
	if limit > 0 && remaining < 0 {
		remaining = 0
	}
	return Budget{limit: limit, remaining: remaining, resetsAt: resetsAt}
}

// TokensLimit returns the token cap. Zero means unlimited.
func (b Budget) TokensLimit() int { return b.limit }

// TokensRemaining returns tokens left in the period.
func (b Budget) TokensRemaining() int { return b.remaining }

// Unlimited reports whether no cap is configured for the period.
func (b Budget) Unlimited() bool { return b.limit <= 0 }

// IsExhausted reports whether a capped budget has nothing left.
func (b Budget) IsExhausted() bool { return !b.Unlimited() && b.remaining == 0 }

// Spent returns tokens consumed against the cap, 0 when unlimited.
func (b Budget) Spent() int {
	if b.Unlimited() {
		return 0
	}
	return b.limit - b.remaining
}

// ResetsAt returns the end of the period (unix millis), or 0 when it never resets.
func (b Budget) ResetsAt() int64 { return b.resetsAt }
