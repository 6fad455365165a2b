package domain

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser is a message written by the person using Home Chef.
	RoleUser Role = "user"
	// RoleAssistant is a message produced by the model.
	RoleAssistant Role = "assistant"
)

// Image is an uploaded picture sent alongside a prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Message is a single chat history entry exchanged with the model.
type Message struct {
	Role Role
	Text string
}

// GenerationResult carries generated text and token usage.
type GenerationResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Generator produces text from a single stateless prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (GenerationResult, error)
}

// VisionGenerator produces text from a prompt and an image.
type VisionGenerator interface {
	GenerateWithImage(ctx context.Context, prompt string, image Image) (GenerationResult, error)
}

// ChatCompleter answers the next turn of a conversation bound to a system instruction.
// history holds prior turns in order; the last entry is the new user message.
type ChatCompleter interface {
	CompleteChat(ctx context.Context, systemInstruction string, history []Message) (GenerationResult, error)
}
