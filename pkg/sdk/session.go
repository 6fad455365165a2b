package homechef

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/usecase/vision"
)

// Session is a handle to one user's conversations. It is safe for concurrent use;
// calls on the same session are serialized.
type Session struct {
	id        string
	createdAt time.Time
	svc       sessionUseCase
	obs       *observer
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Chat sends a message to the general recipe conversation.
func (s *Session) Chat(ctx context.Context, message string) (_ Turn, err error) {
	start := time.Now()
	defer func() { s.obs.observe("chat", start, err) }()

	turn, err := s.svc.SendGeneral(ctx, s.id, message)
	if err != nil {
		return Turn{}, fmt.Errorf("chat: %w", err)
	}
	out := turnFromDomain(turn)
	s.obs.observeTurn("chat", out)
	return out, nil
}

// Describe asks about a dish photo. The image must be JPEG or PNG.
func (s *Session) Describe(ctx context.Context, prompt string, image []byte) (_ Turn, err error) {
	start := time.Now()
	defer func() { s.obs.observe("vision", start, err) }()

	img, err := vision.DetectImage(image)
	if err != nil {
		return Turn{}, fmt.Errorf("vision: %w", err)
	}

	turn, err := s.svc.SendVision(ctx, s.id, prompt, img)
	if err != nil {
		return Turn{}, fmt.Errorf("vision: %w", err)
	}
	out := turnFromDomain(turn)
	s.obs.observeTurn("vision", out)
	return out, nil
}

// Upload loads a PDF cookbook for document questions. An ingestion failure is
// reported in the result's Turn and keeps the previously loaded cookbook.
func (s *Session) Upload(ctx context.Context, name string, pdf []byte) (_ UploadResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("upload", start, err) }()

	res, err := s.svc.UploadDocument(ctx, s.id, document.Document{Name: name, Data: pdf})
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload: %w", err)
	}
	out := uploadFromDomain(res)
	s.obs.observeTurn("upload", out.Turn)
	return out, nil
}

// Ask answers a question from the loaded cookbook.
func (s *Session) Ask(ctx context.Context, question string) (_ Turn, err error) {
	start := time.Now()
	defer func() { s.obs.observe("ask", start, err) }()

	turn, err := s.svc.AskDocument(ctx, s.id, question)
	if err != nil {
		return Turn{}, fmt.Errorf("ask: %w", err)
	}
	out := turnFromDomain(turn)
	s.obs.observeTurn("ask", out)
	return out, nil
}

// History returns the turns of one conversation, oldest first.
func (s *Session) History(mode Mode) ([]Turn, error) {
	m, err := conversation.ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	turns, err := s.svc.History(s.id, m)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return turnsFromDomain(turns), nil
}

// Reset clears one conversation. A loaded cookbook stays loaded.
func (s *Session) Reset(mode Mode) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("reset", start, err) }()

	m, err := conversation.ParseMode(string(mode))
	if err != nil {
		return err
	}
	if err = s.svc.Reset(s.id, m); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Close ends the session and drops its state.
func (s *Session) Close() error {
	if err := s.svc.Delete(s.id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
