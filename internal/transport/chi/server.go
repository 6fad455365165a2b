package chi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	domusage "github.com/kailas-cloud/homechef/internal/domain/usage"
	healthuc "github.com/kailas-cloud/homechef/internal/usecase/health"
	"github.com/kailas-cloud/homechef/internal/usecase/session"
)

// DefaultMaxUploadBytes caps multipart bodies when no limit is configured.
const DefaultMaxUploadBytes = 32 << 20

// multipartMemory is how much of a multipart body is held in memory before spilling to disk.
const multipartMemory = 8 << 20

// SessionService is the per-user conversation API.
type SessionService interface {
	Create() (session.Info, error)
	Get(id string) (session.Info, error)
	Delete(id string) error
	SendGeneral(ctx context.Context, id, text string) (conversation.Turn, error)
	SendVision(ctx context.Context, id, text string, image domain.Image) (conversation.Turn, error)
	UploadDocument(ctx context.Context, id string, doc document.Document) (session.UploadResult, error)
	AskDocument(ctx context.Context, id, text string) (conversation.Turn, error)
	Reset(id string, mode conversation.Mode) error
	History(id string, mode conversation.Mode) ([]conversation.Turn, error)
}

// UsageReporter builds usage reports.
type UsageReporter interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the Home Chef HTTP API.
type Server struct {
	sessions       SessionService
	usage          UsageReporter
	health         HealthChecker
	maxUploadBytes int64
	logger         *zap.Logger
	errorHandlers  []errorHandler
	metrics        http.Handler
}

// NewServer creates an HTTP API server. Non-positive maxUploadBytes uses DefaultMaxUploadBytes.
func NewServer(
	sessions SessionService,
	usage UsageReporter,
	health HealthChecker,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{
		sessions:       sessions,
		usage:          usage,
		health:         health,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
		errorHandlers:  defaultErrorHandlers(),
		metrics:        promhttp.Handler(),
	}
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/usage", s.GetUsage)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{session}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/modes/{mode}/messages", s.ListMessages)
			r.Post("/modes/{mode}/reset", s.ResetMode)
			r.Post("/chat", s.Chat)
			r.Post("/vision", s.Vision)
			r.Post("/documents", s.UploadDocument)
			r.Post("/documents/messages", s.AskDocument)
		})
	})
}

// Handler returns a bare router with all routes, for embedding and tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period, err := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, usageToResponse(report))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// withUsage attaches a token collector to the request context.
func withUsage(r *http.Request) (*http.Request, *domain.TokenUsage) {
	ctx, usage := domain.NewContextWithUsage(r.Context())
	return r.WithContext(ctx), usage
}

// setUsageHeaders reports model tokens spent on this request.
func setUsageHeaders(w http.ResponseWriter, usage *domain.TokenUsage) {
	if usage == nil || !usage.Used {
		return
	}
	w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.EmbeddingTokens))
	w.Header().Set("X-Generation-Tokens", strconv.Itoa(usage.GenerationTokens))
}
