package conversation

import (
	"time"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// ErrorKind classifies a failed assistant turn. Empty means the turn succeeded.
type ErrorKind string

// Error kinds attached to assistant turns that report a failure.
const (
	ErrorNone       ErrorKind = ""
	ErrorGeneration ErrorKind = "generation"
	ErrorEmbedding  ErrorKind = "embedding"
	ErrorExtraction ErrorKind = "extraction"
	ErrorEmptyInput ErrorKind = "empty_input"
	ErrorQuota      ErrorKind = "quota"
	ErrorInternal   ErrorKind = "internal"
)

// Turn is one message in a conversation.
type Turn struct {
	Role      domain.Role
	Text      string
	Image     *domain.Image
	ErrorKind ErrorKind
	CreatedAt time.Time
}

// UserTurn builds a user message.
func UserTurn(text string, image *domain.Image) Turn {
	return Turn{Role: domain.RoleUser, Text: text, Image: image, CreatedAt: time.Now()}
}

// AssistantTurn builds a successful assistant message.
func AssistantTurn(text string) Turn {
	return Turn{Role: domain.RoleAssistant, Text: text, CreatedAt: time.Now()}
}

// ErrorTurn builds an assistant message that reports a failure to the user.
func ErrorTurn(kind ErrorKind, text string) Turn {
	return Turn{Role: domain.RoleAssistant, Text: text, ErrorKind: kind, CreatedAt: time.Now()}
}

// Failed reports whether the turn carries an error.
func (t Turn) Failed() bool { return t.ErrorKind != ErrorNone }
