package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/logger"
	"github.com/kailas-cloud/homechef/internal/metrics"
	"github.com/kailas-cloud/homechef/internal/usecase/chat"
	"github.com/kailas-cloud/homechef/internal/usecase/rag"
)

// Default lifetimes.
const (
	DefaultIdleTTL         = 2 * time.Hour
	DefaultCleanupInterval = 10 * time.Minute
)

// Config controls session lifetime.
type Config struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
}

// Manager owns every live session. Sessions expire after IdleTTL without use.
type Manager struct {
	registry *gocache.Cache
	ttl      time.Duration
	llm      domain.ChatCompleter
	vision   Describer
	rag      Retriever
	logger   *zap.Logger
}

// New creates a session manager.
func New(
	cfg Config, llm domain.ChatCompleter, vision Describer, retriever Retriever, log *zap.Logger,
) *Manager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	m := &Manager{
		registry: gocache.New(cfg.IdleTTL, cfg.CleanupInterval),
		ttl:      cfg.IdleTTL,
		llm:      llm,
		vision:   vision,
		rag:      retriever,
		logger:   log,
	}
	m.registry.OnEvicted(func(id string, _ any) {
		metrics.SessionsActive.Dec()
		m.logger.Debug("Session evicted", zap.String("session_id", id))
	})
	return m
}

// Create starts an empty session.
func (m *Manager) Create() (Info, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Info{}, fmt.Errorf("generate session id: %w", err)
	}

	s := &Session{
		id:        id.String(),
		createdAt: time.Now().UTC(),
		convs:     conversation.NewSet(),
		chat:      chat.NewSession(m.llm),
		ingest:    &rag.Cache{},
	}
	m.registry.SetDefault(s.id, s)
	metrics.SessionsActive.Inc()

	m.logger.Info("Session created", zap.String("session_id", s.id))
	return s.info(), nil
}

// Get returns session info and refreshes its idle timer.
func (m *Manager) Get(id string) (Info, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Info{}, err
	}
	return s.info(), nil
}

// Delete ends a session immediately.
func (m *Manager) Delete(id string) error {
	if _, err := m.lookup(id); err != nil {
		return err
	}
	m.registry.Delete(id)
	return nil
}

// Len returns the number of live sessions, including expired ones not yet swept.
func (m *Manager) Len() int { return m.registry.ItemCount() }

func (m *Manager) lookup(id string) (*Session, error) {
	v, ok := m.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s := v.(*Session)
	// Replace fails if a concurrent Delete removed the key since Get.
	if err := m.registry.Replace(id, s, gocache.DefaultExpiration); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// withSession runs fn while holding the session lock.
func (m *Manager) withSession(id string, fn func(s *Session) error) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// SendGeneral sends a message to the general recipe chat. The first message of a
// conversation is preceded by the greeting.
func (m *Manager) SendGeneral(ctx context.Context, id, text string) (conversation.Turn, error) {
	if strings.TrimSpace(text) == "" {
		return conversation.Turn{}, fmt.Errorf("%w: message is empty", domain.ErrEmptyInput)
	}

	var reply conversation.Turn
	err := m.withSession(id, func(s *Session) error {
		if s.chat.Start() {
			s.convs.Append(conversation.General, conversation.AssistantTurn(chat.Greeting))
		}
		s.convs.Append(conversation.General, conversation.UserTurn(text, nil))

		answer, err := s.chat.Send(ctx, text)
		reply = m.replyTurn(ctx, s, conversation.General, answer, msgChatError, err)
		return nil
	})
	return reply, err
}

// SendVision asks for a recipe based on a photo. Only JPEG and PNG are accepted.
func (m *Manager) SendVision(
	ctx context.Context, id, text string, image domain.Image,
) (conversation.Turn, error) {
	if strings.TrimSpace(text) == "" {
		return conversation.Turn{}, fmt.Errorf("%w: prompt is empty", domain.ErrEmptyInput)
	}
	if len(image.Data) == 0 {
		return conversation.Turn{}, fmt.Errorf("%w: image is required", domain.ErrUnsupportedMedia)
	}
	if image.MIMEType != "image/jpeg" && image.MIMEType != "image/png" {
		return conversation.Turn{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, image.MIMEType)
	}

	var reply conversation.Turn
	err := m.withSession(id, func(s *Session) error {
		img := image
		s.convs.Append(conversation.Vision, conversation.UserTurn(text, &img))

		answer, err := m.vision.Describe(ctx, text, image)
		reply = m.replyTurn(ctx, s, conversation.Vision, answer, msgVisionError, err)
		return nil
	})
	return reply, err
}

// UploadDocument ingests a cookbook. Uploading the name that is already loaded
// reuses the cached result; a new name replaces the document conversation on success.
func (m *Manager) UploadDocument(
	ctx context.Context, id string, doc document.Document,
) (UploadResult, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return UploadResult{}, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}

	var out UploadResult
	err := m.withSession(id, func(s *Session) error {
		res, cached, err := m.rag.Ingest(ctx, s.ingest, doc)
		if err != nil {
			turn := ingestFailureTurn(err)
			s.convs.Append(conversation.Document, turn)
			m.countTurn(conversation.Document, turn)
			logger.FromContext(ctx, m.logger).Warn("Document upload failed",
				zap.String("session_id", s.id),
				zap.String("document", doc.Name),
				zap.String("error_kind", string(turn.ErrorKind)),
				zap.Error(err),
			)
			out = UploadResult{Name: doc.Name, Turn: turn}
			return nil
		}

		out = UploadResult{Name: res.Name(), Segments: res.Len(), Cached: cached}
		if cached && s.ready() && s.doc.Name() == res.Name() {
			s.seedDocumentConversation()
			out.Turn = documentReadyTurn(res.Name())
			return nil
		}

		s.doc = res
		out.Turn = documentReadyTurn(res.Name())
		s.convs.Replace(conversation.Document, out.Turn)
		m.countTurn(conversation.Document, out.Turn)
		return nil
	})
	return out, err
}

// AskDocument answers a question from the loaded cookbook.
func (m *Manager) AskDocument(ctx context.Context, id, text string) (conversation.Turn, error) {
	if strings.TrimSpace(text) == "" {
		return conversation.Turn{}, fmt.Errorf("%w: message is empty", domain.ErrEmptyInput)
	}

	var reply conversation.Turn
	err := m.withSession(id, func(s *Session) error {
		if !s.ready() {
			return domain.ErrDocumentNotReady
		}
		s.seedDocumentConversation()
		s.convs.Append(conversation.Document, conversation.UserTurn(text, nil))

		answer, err := m.rag.Answer(ctx, text, s.doc)
		reply = m.replyTurn(ctx, s, conversation.Document, answer, msgChatError, err)
		return nil
	})
	return reply, err
}

// Reset clears the conversation of one mode. Resetting general mode also drops
// the chat handle; the loaded cookbook survives a document reset.
func (m *Manager) Reset(id string, mode conversation.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	return m.withSession(id, func(s *Session) error {
		s.convs.Reset(mode)
		if mode == conversation.General {
			s.chat.Reset()
		}
		return nil
	})
}

// History returns the turns of one mode in order.
func (m *Manager) History(id string, mode conversation.Mode) ([]conversation.Turn, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	var turns []conversation.Turn
	err := m.withSession(id, func(s *Session) error {
		if mode == conversation.Document {
			s.seedDocumentConversation()
		}
		turns = s.convs.Turns(mode)
		return nil
	})
	return turns, err
}

// replyTurn appends the assistant answer, or an error turn carrying the failure.
func (m *Manager) replyTurn(
	ctx context.Context, s *Session, mode conversation.Mode,
	answer, errFormat string, err error,
) conversation.Turn {
	turn := conversation.AssistantTurn(answer)
	if err != nil {
		turn = failureTurn(errFormat, err)
		logger.FromContext(ctx, m.logger).Warn("Assistant turn failed",
			zap.String("session_id", s.id),
			zap.String("mode", string(mode)),
			zap.String("error_kind", string(turn.ErrorKind)),
			zap.Error(err),
		)
	}
	s.convs.Append(mode, turn)
	m.countTurn(mode, turn)
	return turn
}

func (m *Manager) countTurn(mode conversation.Mode, turn conversation.Turn) {
	kind := string(turn.ErrorKind)
	if kind == "" {
		kind = "none"
	}
	metrics.TurnsTotal.WithLabelValues(string(mode), kind).Inc()
}
