package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// parseAPIError extracts a human-readable error from the API response and wraps
// it with the given domain sentinel so the caller can classify it. Rate limiting
// additionally carries domain.ErrQuotaExceeded.
func parseAPIError(err error, what string, wrap error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("%s API error %d: %s: %w", what, reqErr.HTTPStatusCode, detail, withQuota(wrap, reqErr.HTTPStatusCode))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s API error %d: %s: %w", what, apiErr.HTTPStatusCode, apiErr.Message, withQuota(wrap, apiErr.HTTPStatusCode))
	}

	return fmt.Errorf("%s request failed: %v: %w", what, err, wrap)
}

func withQuota(wrap error, status int) error {
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", wrap, domain.ErrQuotaExceeded)
	}
	return wrap
}

// errorBody covers the error envelopes seen from OpenAI-compatible gateways.
type errorBody struct {
	Detail string `json:"detail"`
	Error  struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// extractDetail pulls the message out of a JSON error body. Gemini wraps the
// object in a one-element array; other gateways return it bare or use "detail".
func extractDetail(body []byte) string {
	var list []errorBody
	if json.Unmarshal(body, &list) == nil && len(list) > 0 {
		return list[0].message()
	}
	var single errorBody
	if json.Unmarshal(body, &single) == nil {
		return single.message()
	}
	return ""
}

func (b errorBody) message() string {
	if b.Error.Message != "" {
		return b.Error.Message
	}
	return b.Detail
}
