package llm

import "context"

// ChatRequest is a single system+user exchange sent to a chat-completion model.
type ChatRequest struct {
	Model       string
	System      string // optional
	User        string
	MaxTokens   int
	Temperature float64
}

// Completer sends one chat request and returns the model's text reply.
// Implementations must not retry on their own; the Invoker owns retry.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Call describes one logical LLM invocation. Zero values take the Invoker defaults.
type Call struct {
	Name        string // caller label used in logs, e.g. "metadata"
	Prompt      string
	System      string
	Model       string
	MaxTokens   int
	Temperature float64
	Retries     int
}
