package homechef

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "memory" or "redis"
	addrs    []string
	password string
	cacheTTL time.Duration

	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	requestTimeout time.Duration

	chunkSize int
	topK      int
	batchSize int

	dailyLimit   int64
	monthlyLimit int64
	reject       bool

	sessionTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		driver:         "memory",
		cacheTTL:       7 * 24 * time.Hour,
		baseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
		chatModel:      "gemini-2.5-flash",
		embeddingModel: "text-embedding-004",
		requestTimeout: 2 * time.Minute,
	}
}

// WithGemini sets the API key for the hosted Gemini models.
func WithGemini(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
	})
}

// WithBaseURL points the model clients at another OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = url
	})
}

// WithModels overrides the chat and embedding model names. Empty values keep the defaults.
func WithModels(chat, embedding string) Option {
	return optionFunc(func(c *clientConfig) {
		if chat != "" {
			c.chatModel = chat
		}
		if embedding != "" {
			c.embeddingModel = embedding
		}
	})
}

// WithRequestTimeout bounds each model HTTP call.
func WithRequestTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.requestTimeout = d
	})
}

// WithRedis keeps cached embeddings and budget counters in Redis or Valkey
// instead of process memory.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets how long cached segment embeddings live.
func WithCacheTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = d
	})
}

// WithRetrieval sets the segment size in characters and the number of segments
// used as context per question. Non-positive values keep the defaults (2000, 3).
func WithRetrieval(chunkSize, topK int) Option {
	return optionFunc(func(c *clientConfig) {
		c.chunkSize = chunkSize
		c.topK = topK
	})
}

// WithEmbedBatchSize sets how many segments go into one embedding call. Default: 50.
func WithEmbedBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = n
	})
}

// WithBudget limits model tokens per day and month (0 = unlimited).
// With reject set, calls over budget fail with ErrQuotaExceeded; otherwise they are only logged.
func WithBudget(daily, monthly int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyLimit = daily
		c.monthlyLimit = monthly
		c.reject = reject
	})
}

// WithSessionTTL sets how long an idle session is kept. Default: 2h.
func WithSessionTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionTTL = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
