package homechef

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/db"
	"github.com/kailas-cloud/homechef/internal/db/memory"
	dbRedis "github.com/kailas-cloud/homechef/internal/db/redis"
	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/loader"
	"github.com/kailas-cloud/homechef/internal/metrics"
	budgetrepo "github.com/kailas-cloud/homechef/internal/repository/budget"
	"github.com/kailas-cloud/homechef/internal/repository/embcache"
	openaiTransport "github.com/kailas-cloud/homechef/internal/transport/openai"
	budgetuc "github.com/kailas-cloud/homechef/internal/usecase/budget"
	embeddinguc "github.com/kailas-cloud/homechef/internal/usecase/embedding"
	generationuc "github.com/kailas-cloud/homechef/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/homechef/internal/usecase/health"
	raguc "github.com/kailas-cloud/homechef/internal/usecase/rag"
	sessionuc "github.com/kailas-cloud/homechef/internal/usecase/session"
	usageuc "github.com/kailas-cloud/homechef/internal/usecase/usage"
	visionuc "github.com/kailas-cloud/homechef/internal/usecase/vision"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type sessionUseCase interface {
	Create() (sessionuc.Info, error)
	Get(id string) (sessionuc.Info, error)
	Delete(id string) error
	SendGeneral(ctx context.Context, id, text string) (conversation.Turn, error)
	SendVision(ctx context.Context, id, text string, image domain.Image) (conversation.Turn, error)
	UploadDocument(ctx context.Context, id string, doc document.Document) (sessionuc.UploadResult, error)
	AskDocument(ctx context.Context, id, text string) (conversation.Turn, error)
	Reset(id string, mode conversation.Mode) error
	History(id string, mode conversation.Mode) ([]conversation.Turn, error)
}

// Client is the Home Chef entry point.
type Client struct {
	store     db.Store
	sessions  sessionUseCase
	healthSvc healthUseCase
	usageSvc  usageUseCase
	obs       *observer
}

// New creates a Client. The provided context is used for the cache readiness check
// and for loading persisted budget counters.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.apiKey == "" {
		return nil, errors.New("homechef: model api key required (use WithGemini)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("homechef: cache not ready: %w", err)
	}

	return wireClient(ctx, store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return memory.NewStore(10 * time.Minute), nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("homechef: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("homechef: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) *Client {
	// Internal components log through zap; the public surface reports through slog.
	log := zap.NewNop()

	action := budgetuc.ActionWarn
	if cfg.reject {
		action = budgetuc.ActionReject
	}
	tracker := budgetuc.NewTracker("gemini", cfg.dailyLimit, cfg.monthlyLimit, action, log).
		WithStore(ctx, budgetrepo.New(store, budgetrepo.DefaultRetention))

	modelCfg := &openaiTransport.Config{
		APIKey:         cfg.apiKey,
		BaseURL:        cfg.baseURL,
		EmbeddingModel: cfg.embeddingModel,
		ChatModel:      cfg.chatModel,
		Provider:       "gemini",
		Timeout:        cfg.requestTimeout,
		Logger:         log,
	}

	cached := embcache.New(
		openaiTransport.NewEmbedder(modelCfg), store, cfg.embeddingModel, cfg.cacheTTL,
		metrics.EmbeddingCacheTotal, log,
	)
	var embOpts []embeddinguc.Option
	if cfg.batchSize > 0 {
		embOpts = append(embOpts, embeddinguc.WithBatchSize(cfg.batchSize))
	}
	embedder := embeddinguc.NewInstrumentedEmbedder(cached, "gemini", cfg.embeddingModel, tracker, log, embOpts...)

	baseGenerator := openaiTransport.NewGenerator(modelCfg)
	generator := generationuc.NewInstrumentedGenerator(baseGenerator, "gemini", cfg.chatModel, tracker, log)

	ragSvc := raguc.New(loader.NewPDF(), embeddinguc.NewService(embedder), generator, cfg.chunkSize, cfg.topK, log)
	sessions := sessionuc.New(
		sessionuc.Config{IdleTTL: cfg.sessionTTL},
		generator, visionuc.New(generator), ragSvc, log,
	)

	return &Client{
		store:     store,
		sessions:  sessions,
		healthSvc: healthuc.New(store, cached, baseGenerator),
		usageSvc:  usageuc.New(tracker),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// NewSession starts an empty session.
func (c *Client) NewSession() (_ *Session, err error) {
	start := time.Now()
	defer func() { c.obs.observe("session.create", start, err) }()

	info, err := c.sessions.Create()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return c.session(info), nil
}

// Session reopens a live session by id. Expired or deleted ids return ErrSessionNotFound.
func (c *Client) Session(id string) (_ *Session, err error) {
	start := time.Now()
	defer func() { c.obs.observe("session.get", start, err) }()

	info, err := c.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return c.session(info), nil
}

func (c *Client) session(info sessionuc.Info) *Session {
	return &Session{id: info.ID, createdAt: info.CreatedAt, svc: c.sessions, obs: c.obs}
}
