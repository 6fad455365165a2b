package session

import (
	"sync"
	"time"

	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/usecase/chat"
	"github.com/kailas-cloud/homechef/internal/usecase/rag"
)

// Session is everything one user accumulates: a conversation per mode, the
// general chat handle and the current cookbook. mu serializes all access.
type Session struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time
	convs     *conversation.Set
	chat      *chat.Session
	ingest    *rag.Cache
	doc       document.Ingested
}

// Info describes a session without exposing its state.
type Info struct {
	ID        string
	CreatedAt time.Time
}

// UploadResult is the outcome of a document upload. A failed ingestion is
// reported through Turn, never as an error.
type UploadResult struct {
	Name     string
	Segments int
	Cached   bool
	Turn     conversation.Turn
}

func (s *Session) info() Info {
	return Info{ID: s.id, CreatedAt: s.createdAt}
}

// ready reports whether a document has been ingested.
func (s *Session) ready() bool { return !s.doc.IsEmpty() }

// seedDocumentConversation restores the ready turn after a reset of document mode.
func (s *Session) seedDocumentConversation() {
	if s.ready() && s.convs.Len(conversation.Document) == 0 {
		s.convs.Append(conversation.Document, documentReadyTurn(s.doc.Name()))
	}
}
