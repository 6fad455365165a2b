package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// ErrorCode is the machine-readable error identifier in every error body.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeEmptyInput       ErrorCode = "empty_input"
	CodeInvalidMode      ErrorCode = "invalid_mode"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeSessionNotFound  ErrorCode = "session_not_found"
	CodeDocumentNotReady ErrorCode = "document_not_ready"
	CodeUnsupportedMedia ErrorCode = "unsupported_media"
	CodePayloadTooLarge  ErrorCode = "payload_too_large"
	CodeExtraction       ErrorCode = "extraction_failed"
	CodeQuotaExceeded    ErrorCode = "quota_exceeded"
	CodeEmbeddingError   ErrorCode = "embedding_provider_error"
	CodeGenerationError  ErrorCode = "generation_error"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// defaultErrorHandlers is ordered: quota is checked before the provider errors that wrap it.
func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusPaymentRequired, CodeQuotaExceeded),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound),
		sentinelHandler(domain.ErrInvalidMode, http.StatusBadRequest, CodeInvalidMode),
		sentinelHandler(domain.ErrEmptyInput, http.StatusBadRequest, CodeEmptyInput),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrDocumentNotReady, http.StatusConflict, CodeDocumentNotReady),
		sentinelHandler(domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType, CodeUnsupportedMedia),
		sentinelHandler(domain.ErrExtraction, http.StatusUnprocessableEntity, CodeExtraction),
		sentinelHandler(domain.ErrEmbeddingService, http.StatusBadGateway, CodeEmbeddingError),
		sentinelHandler(domain.ErrGeneration, http.StatusBadGateway, CodeGenerationError),
	}
}

// exposedSentinels are safe to echo back to clients, most specific first.
var exposedSentinels = []error{
	domain.ErrQuotaExceeded,
	domain.ErrSessionNotFound,
	domain.ErrInvalidMode,
	domain.ErrEmptyInput,
	domain.ErrInvalidInput,
	domain.ErrDocumentNotReady,
	domain.ErrUnsupportedMedia,
	domain.ErrExtraction,
	domain.ErrEmbeddingService,
	domain.ErrGeneration,
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range exposedSentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		WriteError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	WriteError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the JSON error body used by every endpoint.
func WriteError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
