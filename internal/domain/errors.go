package domain

import "errors"

var (
	// ErrEmptyInput signals text with no content to split; the user must supply another file.
	ErrEmptyInput = errors.New("empty input")
	// ErrExtraction signals a document with no parseable text.
	ErrExtraction = errors.New("no extractable text")
	// ErrEmbeddingService signals an embedding provider failure.
	ErrEmbeddingService = errors.New("embedding service error")
	// ErrGeneration signals a generative model failure.
	ErrGeneration = errors.New("generation error")
	// ErrVectorDimMismatch signals vectors of different lengths.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrQuotaExceeded signals an exhausted token budget.
	ErrQuotaExceeded = errors.New("token quota exceeded")

	// ErrSessionNotFound signals an unknown or expired session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrDocumentNotReady signals a document question before a successful ingestion.
	ErrDocumentNotReady = errors.New("no document ingested")
	// ErrUnsupportedMedia signals an upload in a format the mode does not accept.
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrInvalidMode signals an unknown conversation mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidInput signals a malformed request value.
	ErrInvalidInput = errors.New("invalid input")
)
