package homechef

import "github.com/kailas-cloud/homechef/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSessionNotFound   = domain.ErrSessionNotFound
	ErrDocumentNotReady  = domain.ErrDocumentNotReady
	ErrEmptyInput        = domain.ErrEmptyInput
	ErrInvalidInput      = domain.ErrInvalidInput
	ErrInvalidMode       = domain.ErrInvalidMode
	ErrUnsupportedMedia  = domain.ErrUnsupportedMedia
	ErrExtraction        = domain.ErrExtraction
	ErrEmbeddingService  = domain.ErrEmbeddingService
	ErrGeneration        = domain.ErrGeneration
	ErrQuotaExceeded     = domain.ErrQuotaExceeded
	ErrVectorDimMismatch = domain.ErrVectorDimMismatch
)
