package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// chatRequest mirrors the parts of a chat completion request the tests inspect.
type chatRequest struct {
	Model    string            `json:"model"`
	Messages []json.RawMessage `json:"messages"`
}

func writeCompletion(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gemini-2.5-flash",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": text},
		}},
		"usage": map[string]any{"prompt_tokens": 11, "completion_tokens": 7, "total_tokens": 18},
	})
}

func newTestGenerator(url string) *Generator {
	return NewGenerator(&Config{
		APIKey:    "test-key",
		BaseURL:   url,
		ChatModel: "gemini-2.5-flash",
		Provider:  "test",
		Logger:    zap.NewNop(),
	})
}

func decodeChat(t *testing.T, r *http.Request) (chatRequest, []map[string]any) {
	t.Helper()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	msgs := make([]map[string]any, len(req.Messages))
	for i, raw := range req.Messages {
		if err := json.Unmarshal(raw, &msgs[i]); err != nil {
			t.Fatalf("decode message %d: %v", i, err)
		}
	}
	return req, msgs
}

func TestGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		req, msgs := decodeChat(t, r)
		if req.Model != "gemini-2.5-flash" {
			t.Errorf("unexpected model: %s", req.Model)
		}
		if len(msgs) != 1 || msgs[0]["role"] != "user" || msgs[0]["content"] != "resep soto?" {
			t.Errorf("unexpected messages: %v", msgs)
		}
		writeCompletion(w, "Soto Ayam")
	}))
	defer server.Close()

	res, err := newTestGenerator(server.URL).Generate(context.Background(), "resep soto?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Text != "Soto Ayam" {
		t.Errorf("Text = %q", res.Text)
	}
	if res.PromptTokens != 11 || res.CompletionTokens != 7 || res.TotalTokens != 18 {
		t.Errorf("unexpected usage: %+v", res)
	}
}

func TestGenerator_GenerateWithImage(t *testing.T) {
	img := domain.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, msgs := decodeChat(t, r)
		if len(msgs) != 1 {
			t.Fatalf("expected 1 message, got %d", len(msgs))
		}
		parts, ok := msgs[0]["content"].([]any)
		if !ok || len(parts) != 2 {
			t.Fatalf("expected 2 content parts, got %v", msgs[0]["content"])
		}
		text := parts[0].(map[string]any)
		if text["type"] != "text" || text["text"] != "apa ini?" {
			t.Errorf("unexpected text part: %v", text)
		}
		image := parts[1].(map[string]any)
		url := image["image_url"].(map[string]any)["url"].(string)
		if !strings.HasPrefix(url, "data:image/png;base64,") {
			t.Errorf("unexpected image url: %s", url)
		}
		writeCompletion(w, "Nasi goreng")
	}))
	defer server.Close()

	res, err := newTestGenerator(server.URL).GenerateWithImage(context.Background(), "apa ini?", img)
	if err != nil {
		t.Fatalf("GenerateWithImage failed: %v", err)
	}
	if res.Text != "Nasi goreng" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestGenerator_CompleteChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, msgs := decodeChat(t, r)
		wantRoles := []string{"system", "user", "assistant", "user"}
		if len(msgs) != len(wantRoles) {
			t.Fatalf("expected %d messages, got %d", len(wantRoles), len(msgs))
		}
		for i, role := range wantRoles {
			if msgs[i]["role"] != role {
				t.Errorf("message %d role = %v, want %s", i, msgs[i]["role"], role)
			}
		}
		if msgs[0]["content"] != "persona" {
			t.Errorf("unexpected system content: %v", msgs[0]["content"])
		}
		writeCompletion(w, "Coba tumis kangkung")
	}))
	defer server.Close()

	history := []domain.Message{
		{Role: domain.RoleUser, Text: "ada kangkung"},
		{Role: domain.RoleAssistant, Text: "mau dimasak apa?"},
		{Role: domain.RoleUser, Text: "yang cepat"},
	}
	res, err := newTestGenerator(server.URL).CompleteChat(context.Background(), "persona", history)
	if err != nil {
		t.Fatalf("CompleteChat failed: %v", err)
	}
	if res.Text != "Coba tumis kangkung" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestGenerator_GeminiErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}]`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "halo")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("expected provider message in error, got %v", err)
	}
}

func TestGenerator_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`[{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}]`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "halo")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestGenerator_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "halo")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerator_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestGenerator(url).Generate(context.Background(), "halo")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"gemini array", `[{"error":{"message":"quota","status":"RESOURCE_EXHAUSTED"}}]`, "quota"},
		{"openai object", `{"error":{"message":"bad key"}}`, "bad key"},
		{"detail", `{"detail":"model not found"}`, "model not found"},
		{"not json", `<html>502</html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDetail([]byte(tt.body)); got != tt.want {
				t.Errorf("extractDetail = %q, want %q", got, tt.want)
			}
		})
	}
}
