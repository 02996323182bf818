// Package generation talks to the remote text-generation backend.
package generation

import "context"

const (
	// ResponseTypeText asks the backend for plain text.
	ResponseTypeText = "text"

	// EventTypeChat names the backend event that runs a prompt.
	EventTypeChat = "chatgpt_request"
)

type Request struct {
	Prompt       string `json:"prompt"`
	ResponseType string `json:"response_type"`
}

// Generator runs one prompt and returns the generated text unmodified.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
