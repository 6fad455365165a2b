package homechef

import (
	"time"

	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/usecase/session"
)

// Mode selects one of a session's conversations.
type Mode string

// Conversation modes.
const (
	ModeGeneral  Mode = "general"
	ModeVision   Mode = "vision"
	ModeDocument Mode = "document"
)

// ErrorKind classifies a failed assistant turn. Empty means success.
type ErrorKind string

// Error kinds carried by failed turns.
const (
	ErrorNone       ErrorKind = ""
	ErrorGeneration ErrorKind = "generation"
	ErrorEmbedding  ErrorKind = "embedding"
	ErrorExtraction ErrorKind = "extraction"
	ErrorEmptyInput ErrorKind = "empty_input"
	ErrorQuota      ErrorKind = "quota"
	ErrorInternal   ErrorKind = "internal"
)

// Turn is one message of a conversation.
type Turn struct {
	Role      string // "user" or "assistant"
	Text      string
	ImageType string // MIME type of an attached photo, empty if none
	ErrorKind ErrorKind
	CreatedAt time.Time
}

// Failed reports whether the turn describes a failure.
func (t Turn) Failed() bool { return t.ErrorKind != ErrorNone }

// UploadResult is the outcome of a cookbook upload.
type UploadResult struct {
	Name     string
	Segments int
	Cached   bool // the same cookbook was already loaded; nothing was re-embedded
	Turn     Turn
}

func turnFromDomain(t conversation.Turn) Turn {
	out := Turn{
		Role:      string(t.Role),
		Text:      t.Text,
		ErrorKind: ErrorKind(t.ErrorKind),
		CreatedAt: t.CreatedAt,
	}
	if t.Image != nil {
		out.ImageType = t.Image.MIMEType
	}
	return out
}

func turnsFromDomain(turns []conversation.Turn) []Turn {
	out := make([]Turn, len(turns))
	for i, t := range turns {
		out[i] = turnFromDomain(t)
	}
	return out
}

func uploadFromDomain(r session.UploadResult) UploadResult {
	return UploadResult{
		Name:     r.Name,
		Segments: r.Segments,
		Cached:   r.Cached,
		Turn:     turnFromDomain(r.Turn),
	}
}
