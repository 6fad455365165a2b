// Package chat holds the general-mode conversation bound to the recipe persona.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// Greeting is the first assistant turn of every new general conversation.
const Greeting = "Hai! Masukkan bahan-bahan apa saja yang Anda miliki. " +
	"Saya akan bantu carikan resep terbaik dari pengetahuan kuliner saya!"

// SystemInstruction fixes the persona and answer structure for general chat.
const SystemInstruction = "Anda adalah Asisten Resep Profesional yang ramah dan membantu. " +
	"Tugas Anda adalah memandu pengguna dalam mencari resep masakan dalam Bahasa Indonesia " +
	"berdasarkan bahan yang mereka miliki dari pengetahuan umum Anda. " +
	"Jaga percakapan agar tetap menyenangkan. Ketika diminta resep, berikan resep lengkap dengan struktur: " +
	"1. Judul Resep, 2. Deskripsi Singkat, 3. Bahan-Bahan Diperlukan, dan 4. Langkah-Langkah Memasak. " +
	"Selalu gunakan format Markdown yang rapi."

// handle is the model-side history of one chat. The greeting is a UI turn and never part of it.
type handle struct {
	history []domain.Message
}

// Session is either uninitialized (no handle) or active.
// Not safe for concurrent use; the owning user session serializes access.
type Session struct {
	llm    domain.ChatCompleter
	handle *handle
}

// NewSession creates an uninitialized chat session.
func NewSession(llm domain.ChatCompleter) *Session {
	return &Session{llm: llm}
}

// Active reports whether a handle exists.
func (s *Session) Active() bool { return s.handle != nil }

// Start creates the handle if there is none. It reports whether one was created,
// in which case the caller shows Greeting.
func (s *Session) Start() bool {
	if s.handle != nil {
		return false
	}
	s.handle = &handle{}
	return true
}

// Send sends text with the full prior history and returns the reply.
// A failed call leaves the history exactly as it was before Send.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.Start()
	h := s.handle

	prior := len(h.history)
	h.history = append(h.history, domain.Message{Role: domain.RoleUser, Text: text})

	res, err := s.llm.CompleteChat(ctx, SystemInstruction, append([]domain.Message(nil), h.history...))
	if err != nil {
		h.history = h.history[:prior]
		if errors.Is(err, domain.ErrGeneration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	h.history = append(h.history, domain.Message{Role: domain.RoleAssistant, Text: res.Text})
	return res.Text, nil
}

// Reset drops the handle. The next Send starts a fresh conversation.
func (s *Session) Reset() { s.handle = nil }

// History returns a copy of the model-side history.
func (s *Session) History() []domain.Message {
	if s.handle == nil {
		return nil
	}
	return append([]domain.Message(nil), s.handle.history...)
}
