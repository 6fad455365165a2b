package chi

import (
	"time"

	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	domusage "github.com/kailas-cloud/homechef/internal/domain/usage"
	"github.com/kailas-cloud/homechef/internal/usecase/session"
)

// MessageRequest is the body of chat and document questions.
type MessageRequest struct {
	Message string `json:"message"`
}

// SessionResponse describes a session.
type SessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// TurnResponse is one conversation turn. Image bytes are never echoed back.
type TurnResponse struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	ErrorKind string    `json:"error_kind,omitempty"`
	ImageType string    `json:"image_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists the turns of one mode.
type HistoryResponse struct {
	Mode  string         `json:"mode"`
	Items []TurnResponse `json:"items"`
}

// UploadResponse reports the outcome of a cookbook upload.
type UploadResponse struct {
	Name     string       `json:"name"`
	Segments int          `json:"segments"`
	Cached   bool         `json:"cached"`
	Turn     TurnResponse `json:"turn"`
}

// UsageResponse is the body of GET /usage.
type UsageResponse struct {
	Period        string       `json:"period"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// UsageMetrics counts model calls and tokens.
type UsageMetrics struct {
	EmbeddingRequests  int `json:"embedding_requests"`
	GenerationRequests int `json:"generation_requests"`
	Tokens             int `json:"tokens"`
}

// BudgetStatus is the token budget state. A remaining value of -1 means unlimited.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	Unlimited       bool       `json:"unlimited"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func sessionToResponse(info session.Info) SessionResponse {
	return SessionResponse{ID: info.ID, CreatedAt: info.CreatedAt}
}

func turnToResponse(t conversation.Turn) TurnResponse {
	resp := TurnResponse{
		Role:      string(t.Role),
		Text:      t.Text,
		ErrorKind: string(t.ErrorKind),
		CreatedAt: t.CreatedAt.UTC(),
	}
	if t.Image != nil {
		resp.ImageType = t.Image.MIMEType
	}
	return resp
}

func turnsToResponse(turns []conversation.Turn) []TurnResponse {
	out := make([]TurnResponse, len(turns))
	for i, t := range turns {
		out[i] = turnToResponse(t)
	}
	return out
}

func usageToResponse(report domusage.Report) UsageResponse {
	resp := UsageResponse{
		Period: string(report.Period()),
		Usage: UsageMetrics{
			EmbeddingRequests:  report.Metrics().EmbeddingRequests(),
			GenerationRequests: report.Metrics().GenerationRequests(),
			Tokens:             report.Metrics().Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
			Unlimited:       report.Budget().Unlimited(),
		},
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	return resp
}
