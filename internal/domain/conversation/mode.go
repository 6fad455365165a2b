package conversation

import (
	"fmt"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// Mode selects which conversation a user is interacting with.
type Mode string

// Conversation mode constants.
const (
	// General is free-form recipe chat with the model's own knowledge.
	General  Mode = "general"
	Vision   Mode = "vision"
	Document Mode = "document"
)

// Modes lists every mode in display order.
var Modes = []Mode{General, Vision, Document}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == General || m == Vision || m == Document
}

// ParseMode converts a raw string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidMode, s)
	}
	return m, nil
}
