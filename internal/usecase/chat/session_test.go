package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/homechef/internal/domain"
)

type mockCompleter struct {
	replies []string
	err     error
	system  string
	seen    [][]domain.Message
}

func (m *mockCompleter) CompleteChat(
	_ context.Context, system string, history []domain.Message,
) (domain.GenerationResult, error) {
	m.system = system
	m.seen = append(m.seen, history)
	if m.err != nil {
		return domain.GenerationResult{}, m.err
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return domain.GenerationResult{Text: reply}, nil
}

func TestSession_StartOnce(t *testing.T) {
	s := NewSession(&mockCompleter{})

	if s.Active() {
		t.Fatal("new session must be uninitialized")
	}
	if !s.Start() {
		t.Fatal("first Start must create the handle")
	}
	if s.Start() {
		t.Error("second Start must be a no-op")
	}
	if !s.Active() {
		t.Error("expected active session")
	}
}

func TestSession_SendCarriesHistory(t *testing.T) {
	llm := &mockCompleter{replies: []string{"Coba telur dadar", "Tambahkan daun bawang"}}
	s := NewSession(llm)

	if _, err := s.Send(context.Background(), "Saya punya telur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reply, err := s.Send(context.Background(), "Ada tambahan?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Tambahkan daun bawang" {
		t.Errorf("unexpected reply %q", reply)
	}

	if llm.system != SystemInstruction {
		t.Error("system instruction not passed")
	}
	second := llm.seen[1]
	if len(second) != 3 {
		t.Fatalf("expected 3 prior messages on second call, got %d", len(second))
	}
	if second[1].Role != domain.RoleAssistant || second[1].Text != "Coba telur dadar" {
		t.Errorf("unexpected history entry: %+v", second[1])
	}
	if got := len(s.History()); got != 4 {
		t.Errorf("expected 4 messages in history, got %d", got)
	}
}

func TestSession_FailedSendRollsBack(t *testing.T) {
	llm := &mockCompleter{replies: []string{"Halo"}}
	s := NewSession(llm)
	if _, err := s.Send(context.Background(), "hai"); err != nil {
		t.Fatal(err)
	}

	llm.err = errors.New("deadline exceeded")
	_, err := s.Send(context.Background(), "resep rendang")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !s.Active() {
		t.Error("session must stay active after a failure")
	}
	if got := len(s.History()); got != 2 {
		t.Errorf("failed message must not linger, history has %d entries", got)
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession(&mockCompleter{replies: []string{"ok"}})
	if _, err := s.Send(context.Background(), "hai"); err != nil {
		t.Fatal(err)
	}

	s.Reset()

	if s.Active() {
		t.Error("reset must return to uninitialized")
	}
	if s.History() != nil {
		t.Error("reset must clear history")
	}
	if !s.Start() {
		t.Error("Start after reset must create a new handle")
	}
}
